package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"tarediiran-industries.com/rail-dss/internal/feed"
)

func printProtobuf(out io.Writer, message proto.Message) error {
	options := protojson.MarshalOptions{Multiline: true}
	jsonBytes, err := options.Marshal(message)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(jsonBytes))
	return err
}

func NewFeedCmd(app *DssCtlApp) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Fetch and decode the GTFS-Realtime train feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := app.fetch(cmd.Context(), "/feeds/trains.pb", nil)
			if err != nil {
				return err
			}

			message, err := feed.Unmarshal(body)
			if err != nil {
				return fmt.Errorf("decode feed: %w", err)
			}

			if asJSON {
				return printProtobuf(cmd.OutOrStdout(), message)
			}

			header := message.GetHeader()
			fmt.Fprintf(cmd.OutOrStdout(), "GTFS-RT %s, %d entities, %s\n\n",
				header.GetGtfsRealtimeVersion(),
				len(message.GetEntity()),
				time.Unix(int64(header.GetTimestamp()), 0).UTC().Format(time.RFC3339),
			)

			table := newTable(cmd.OutOrStdout(), "TRIP", "NEXT STOP", "DELAY")
			for _, entity := range message.GetEntity() {
				tripUpdate := entity.GetTripUpdate()
				if tripUpdate == nil {
					continue
				}
				stop := ""
				if updates := tripUpdate.GetStopTimeUpdate(); len(updates) > 0 {
					stop = updates[0].GetStopId()
				}
				table.Append([]string{
					tripUpdate.GetTrip().GetTripId(), stop, (time.Duration(tripUpdate.GetDelay()) * time.Second).String(),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the decoded message as protojson")

	return cmd
}
