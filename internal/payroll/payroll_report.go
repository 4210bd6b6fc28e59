package payroll

import (
	"io"

	"github.com/gocarina/gocsv"
)

// WriteBulkReport writes one CSV row per employee of a bulk run.
func WriteBulkReport(w io.Writer, result BulkResult) error {
	rows := sortedOutcomes(result.Outcomes)
	return gocsv.Marshal(&rows, w)
}
