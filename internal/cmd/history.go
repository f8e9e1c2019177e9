package cmd

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"tarediiran-industries.com/rail-dss/internal/web/dashboard_web"
)

func NewHistoryCmd(app *DssCtlApp) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show historical punctuality and delay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var response dashboard_web.HistoryResponse
			if err := app.getJSON(cmd.Context(), "/api/history", url.Values{"period": {period}}, &response); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d points)\n\n", response.Period, response.Count)

			table := newTable(cmd.OutOrStdout(), "TIME", "PUNCTUALITY (%)", "AVG DELAY (min)")
			table.SetAlignment(tablewriter.ALIGN_RIGHT)
			for _, point := range response.Points {
				table.Append([]string{
					point.Time.Format("2006-01-02 15:04"),
					strconv.FormatFloat(point.Punctuality, 'f', 1, 64),
					strconv.FormatFloat(point.AvgDelay, 'f', 1, 64),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "24h", "24h, 7d or 30d")

	return cmd
}
