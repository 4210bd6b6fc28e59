package main

import (
	"fmt"
	"os"

	"go-payroll/internal/payroll"

	"github.com/spf13/cobra"
)

func newBulkCmd(rt *runtime) *cobra.Command {
	var companyID, actorID, period, reportPath string
	var employeeIDs []string

	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Generate salary slips for many employees",
		Long: `Generate salary slips for the given employees, or for every active
employee of the company when --employee is omitted. Employees that already
have a slip for the period are skipped. A failing employee never stops the run.`,
		Example: `  payrollctl bulk --company <uuid> --actor <uuid> --period 2026-03
  payrollctl bulk --company <uuid> --actor <uuid> --period 2026-03 --report run.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeFn, err := rt.modules()
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := m.Payroll.BulkGenerate(commandContext(cmd), companyID, actorID, payroll.BulkGenerateRequest{
				SalaryPeriod: period,
				EmployeeIDs:  employeeIDs,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "period %s: requested=%d generated=%d skipped=%d failed=%d\n",
				result.SalaryPeriod, result.Requested, result.GeneratedCount, result.SkippedCount, len(result.Errors))
			for _, e := range result.Errors {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", e.EmployeeID, e.Error)
			}

			if reportPath == "" {
				return nil
			}
			f, err := os.Create(reportPath)
			if err != nil {
				return fmt.Errorf("create report: %w", err)
			}
			defer f.Close()
			if err := payroll.WriteBulkReport(f, result); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", reportPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "company id")
	cmd.Flags().StringVar(&actorID, "actor", "", "id recorded as generated_by")
	cmd.Flags().StringVar(&period, "period", "", "salary period, YYYY-MM")
	cmd.Flags().StringSliceVar(&employeeIDs, "employee", nil, "employee ids (repeatable); default all active employees")
	cmd.Flags().StringVar(&reportPath, "report", "", "write a per-employee CSV report to this file")
	for _, f := range []string{"company", "actor", "period"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
