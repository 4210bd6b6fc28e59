package payroll

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// payslipLines renders the stored slip values; nothing is recomputed.
func payslipLines(slip SalarySlip, employeeName string) []string {
	lines := []string{
		"Salary Slip " + slip.SlipReference,
		"Employee: " + employeeName,
		"Period: " + slip.SalaryPeriod,
		"Status: " + slip.Status,
		"",
		"Basic salary: " + money(slip.BasicSalary),
	}

	sections := []struct {
		title string
		items []BreakdownLine
	}{
		{"Benefits", slip.Benefits},
		{"Incentives", slip.Incentives},
		{"Bonuses", slip.Bonuses},
		{"Overtime", slip.Overtime},
		{"Employer contributions", slip.Contributions},
		{"Deductions", slip.Deductions},
		{"Salary advances", slip.Advances},
	}
	for _, sec := range sections {
		if len(sec.items) == 0 {
			continue
		}
		lines = append(lines, sec.title+":")
		for _, item := range sec.items {
			lines = append(lines, fmt.Sprintf("  %s: %s", item.Label, money(item.ComputedAmount)))
		}
	}

	lines = append(lines,
		"Tax: "+money(slip.TaxAmount),
		"",
		"Total earnings: "+money(slip.TotalEarnings),
		"Total deductions: "+money(slip.TotalDeductions),
		"Net payable: "+money(slip.NetPayable),
	)
	if slip.PaidAt != nil {
		lines = append(lines, "Paid at: "+slip.PaidAt.Format(dateLayout))
	}
	return lines
}

func money(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func buildSimplePayslipPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
