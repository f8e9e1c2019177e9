package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/rail-dss/internal/web/dashboard_web"
)

func NewTrainsCmd(app *DssCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trains",
		Short: "List trains currently in the section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var response dashboard_web.TrainsResponse
			if err := app.getJSON(cmd.Context(), "/api/trains", nil, &response); err != nil {
				return err
			}

			table := newTable(cmd.OutOrStdout(), "ID", "TYPE", "NEXT STOP", "ETA", "STATUS")
			for _, train := range response.Trains {
				table.Append([]string{train.ID, train.Type, train.NextStop, train.ETA, train.Status})
			}
			table.Render()

			fmt.Fprintf(cmd.OutOrStdout(), "\n%d trains as of %s\n", response.Count, response.GeneratedAt.Format(time.RFC3339))
			return nil
		},
	}

	return cmd
}
