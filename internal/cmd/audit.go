package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/rail-dss/internal/dashboard"
	"tarediiran-industries.com/rail-dss/internal/web/dashboard_web"
)

func NewAuditCmd(app *DssCtlApp) *cobra.Command {
	var user, event string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the operational audit trail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if user != "" {
				query.Set("user", user)
			}
			if event != "" {
				query.Set("event", event)
			}

			var response dashboard_web.AuditResponse
			if err := app.getJSON(cmd.Context(), "/api/audit", query, &response); err != nil {
				return err
			}

			table := newTable(cmd.OutOrStdout(), "TIMESTAMP", "USER", "EVENT TYPE", "DETAILS")
			for _, entry := range response.Entries {
				table.Append([]string{
					entry.Timestamp.Format(dashboard.AuditTimestampLayout), entry.User, entry.EventType, entry.Details,
				})
			}
			table.Render()

			fmt.Fprintf(cmd.OutOrStdout(), "\n%d entries (user=%s, event=%s)\n",
				response.Count, response.Filter.User, response.Filter.EventType)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", `Filter by user ("All" or empty for everyone)`)
	cmd.Flags().StringVar(&event, "event", "", `Filter by event type ("All" or empty for every type)`)

	return cmd
}
