package main

import (
	"fmt"

	"go-payroll/internal/app"

	"github.com/spf13/cobra"
)

func newMigrateCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the payroll schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, _, _, closeFn, err := rt.open()
			if err != nil {
				return err
			}
			defer closeFn()

			if err := app.Migrate(gormDB); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}
