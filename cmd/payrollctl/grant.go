package main

import (
	"fmt"
	"strings"

	"go-payroll/internal/rbac"

	"github.com/spf13/cobra"
)

func newGrantCmd(rt *runtime) *cobra.Command {
	var companyID, subjectID, role string
	var permissions []string

	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Grant a payroll role to a user or employee",
		Example: `  payrollctl grant --company <uuid> --subject <uuid> --role payroll_admin --permission '*'
  payrollctl grant --company <uuid> --subject <uuid> --role payroll_viewer --permission salary_slip:read`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeFn, err := rt.modules()
			if err != nil {
				return err
			}
			defer closeFn()

			resp, err := m.RBAC.GrantRole(commandContext(cmd), companyID, rbac.GrantRoleRequest{
				SubjectID:   subjectID,
				RoleName:    role,
				Permissions: permissions,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "role %s (%s) granted to %s: %s\n",
				resp.RoleName, resp.RoleID, resp.SubjectID, strings.Join(resp.Permissions, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "company id")
	cmd.Flags().StringVar(&subjectID, "subject", "", "user or employee id carried in the JWT")
	cmd.Flags().StringVar(&role, "role", "payroll_admin", "role name")
	cmd.Flags().StringSliceVar(&permissions, "permission", []string{"*"}, "resource:action, or * for the whole payroll catalog")
	for _, f := range []string{"company", "subject"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
