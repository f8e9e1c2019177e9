package feed

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"tarediiran-industries.com/rail-dss/internal/dashboard"
)

const (
	FormatProtobuf = "pb"
	FormatJSON     = "json"

	ContentTypeProtobuf = "application/x-protobuf"
	ContentTypeJSON     = "application/json"
)

var statusMinutes = regexp.MustCompile(`^(Delayed|Early)\s+(\d+)m$`)

// DelaySeconds reads "Delayed Nm" / "Early Nm" status text; anything else is on time.
func DelaySeconds(status string) int32 {
	match := statusMinutes.FindStringSubmatch(status)
	if match == nil {
		return 0
	}
	minutes, err := strconv.Atoi(match[2])
	if err != nil {
		return 0
	}
	if match[1] == "Early" {
		minutes = -minutes
	}
	return int32(minutes * 60)
}

// BuildTrainFeed exports the train list as a GTFS-Realtime FULL_DATASET with
// one TripUpdate per train.
func BuildTrainFeed(trains []dashboard.Train, now time.Time) *gtfs.FeedMessage {
	incrementality := gtfs.FeedHeader_FULL_DATASET
	message := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Incrementality:      &incrementality,
			Timestamp:           proto.Uint64(uint64(now.Unix())),
		},
	}

	for _, train := range trains {
		delay := DelaySeconds(train.Status)
		message.Entity = append(message.Entity, &gtfs.FeedEntity{
			Id: proto.String(train.ID),
			TripUpdate: &gtfs.TripUpdate{
				Trip: &gtfs.TripDescriptor{
					TripId:  proto.String(train.ID),
					RouteId: proto.String(train.Type),
				},
				Vehicle: &gtfs.VehicleDescriptor{
					Id:    proto.String(train.ID),
					Label: proto.String(train.Type + " " + train.ID),
				},
				StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{
					{
						StopId:  proto.String(train.NextStop),
						Arrival: &gtfs.TripUpdate_StopTimeEvent{Delay: proto.Int32(delay)},
					},
				},
				Delay:     proto.Int32(delay),
				Timestamp: proto.Uint64(uint64(now.Unix())),
			},
		})
	}

	return message
}

// Marshal encodes message in the requested format and returns its content type.
func Marshal(message *gtfs.FeedMessage, format string) ([]byte, string, error) {
	switch format {
	case "", FormatProtobuf:
		raw, err := proto.Marshal(message)
		return raw, ContentTypeProtobuf, err
	case FormatJSON:
		raw, err := protojson.MarshalOptions{Multiline: true}.Marshal(message)
		return raw, ContentTypeJSON, err
	}
	return nil, "", fmt.Errorf("unknown feed format %q", format)
}

func Unmarshal(raw []byte) (*gtfs.FeedMessage, error) {
	message := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(raw, message); err != nil {
		return nil, err
	}
	return message, nil
}
