package main

import (
	"encoding/json"

	"go-payroll/internal/payroll"

	"github.com/spf13/cobra"
)

func newGenerateCmd(rt *runtime) *cobra.Command {
	var companyID, actorID, employeeID, period string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one salary slip",
		Example: `  payrollctl generate --company <uuid> --actor <uuid> --employee <uuid> --period 2026-03`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeFn, err := rt.modules()
			if err != nil {
				return err
			}
			defer closeFn()

			slip, err := m.Payroll.Generate(commandContext(cmd), companyID, actorID, payroll.GenerateSlipRequest{
				EmployeeID:   employeeID,
				SalaryPeriod: period,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(slip)
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "company id")
	cmd.Flags().StringVar(&actorID, "actor", "", "id recorded as generated_by")
	cmd.Flags().StringVar(&employeeID, "employee", "", "employee id")
	cmd.Flags().StringVar(&period, "period", "", "salary period, YYYY-MM")
	for _, f := range []string{"company", "actor", "employee", "period"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
