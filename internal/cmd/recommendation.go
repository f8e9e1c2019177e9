package cmd

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/rail-dss/internal/dashboard"
	"tarediiran-industries.com/rail-dss/internal/web/dashboard_web"
)

func NewRecommendationCmd(app *DssCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "recommendation [accept|reject]",
		Short:     "Show the current AI recommendation, or accept/reject it",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(dashboard.DecisionAccept), string(dashboard.DecisionReject)},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				body, err := app.do(cmd.Context(), http.MethodPost, "/api/recommendation/"+strings.ToLower(args[0]), nil)
				if err != nil {
					return err
				}
				var response dashboard_web.DecisionResponse
				if err := decodeJSON(body, &response); err != nil {
					return err
				}
				fmt.Fprintln(out, response.Notice)
				return nil
			}

			var response dashboard_web.RecommendationResponse
			if err := app.getJSON(cmd.Context(), "/api/recommendation", nil, &response); err != nil {
				return err
			}

			fmt.Fprintln(out, response.Summary)
			fmt.Fprintf(out, "REASON: %s\n", response.Reason)
			return nil
		},
	}

	return cmd
}
