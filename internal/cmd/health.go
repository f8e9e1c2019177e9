package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/rail-dss/internal/web/dashboard_web"
)

func NewHealthCmd(app *DssCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Inspect health of the dashboard and its backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := app.fetch(cmd.Context(), "/health", nil)
			var statusErr *StatusError
			if err != nil && !errors.As(err, &statusErr) {
				return err
			}

			var response dashboard_web.HealthResponse
			if err := decodeJSON(body, &response); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Status:      %s\n", response.Status)
			fmt.Fprintf(out, "Audit trail: %s\n", response.AuditTrail)
			fmt.Fprintf(out, "Sessions:    %s\n", response.Sessions)

			if response.Status != "ok" {
				return fmt.Errorf("dashboard is %s", response.Status)
			}
			return nil
		},
	}

	return cmd
}
