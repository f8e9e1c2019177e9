package dashboard

import (
	"fmt"
	"slices"
	"time"
)

type ScenarioType string

const (
	ScenarioTrainDelay       ScenarioType = "delay"
	ScenarioUnscheduledTrain ScenarioType = "unscheduled"
	ScenarioMaintenanceBlock ScenarioType = "maintenance"
)

func ScenarioTypes() []ScenarioType {
	return []ScenarioType{ScenarioTrainDelay, ScenarioUnscheduledTrain, ScenarioMaintenanceBlock}
}

// ParseScenarioType falls back to the first selector option.
func ParseScenarioType(raw string) ScenarioType {
	for _, kind := range ScenarioTypes() {
		if string(kind) == raw || kind.Label() == raw {
			return kind
		}
	}
	return ScenarioTrainDelay
}

func (kind ScenarioType) Label() string {
	switch kind {
	case ScenarioUnscheduledTrain:
		return "Add Unscheduled Train"
	case ScenarioMaintenanceBlock:
		return "Schedule Maintenance Block"
	default:
		return "Introduce Train Delay"
	}
}

var (
	ScenarioTrainTypes     = []string{"Freight", "Express", "Maintenance"}
	ScenarioStartingPoints = []string{"Station A", "Station B"}
	ScenarioTrackSections  = []string{"Section A-1", "Section B-2", "Main Line 1"}
)

const (
	DelayMinutesMin     = 5
	DelayMinutesMax     = 60
	DelayMinutesDefault = 15
	BlockHoursMin       = 1
	BlockHoursMax       = 4
	BlockHoursDefault   = 2
	DefaultDelayTrainID = "12301"
)

// Scenario is the what-if builder state. Only the fields of Type are shown;
// none of them influence the predicted impact.
type Scenario struct {
	Type ScenarioType

	TrainID      string
	DelayMinutes int

	TrainType     string
	DepartureTime string
	StartingPoint string

	TrackSection string
	BlockHours   int
}

func DefaultScenario(kind ScenarioType, now time.Time) Scenario {
	return Scenario{
		Type:          kind,
		TrainID:       DefaultDelayTrainID,
		DelayMinutes:  DelayMinutesDefault,
		TrainType:     ScenarioTrainTypes[0],
		DepartureTime: now.Format("15:04"),
		StartingPoint: ScenarioStartingPoints[0],
		TrackSection:  ScenarioTrackSections[0],
		BlockHours:    BlockHoursDefault,
	}
}

// Normalize clamps sliders and snaps selections to listed options, the way the
// widgets themselves would.
func (scenario Scenario) Normalize() Scenario {
	scenario.Type = ParseScenarioType(string(scenario.Type))
	scenario.DelayMinutes = clamp(scenario.DelayMinutes, DelayMinutesMin, DelayMinutesMax)
	scenario.BlockHours = clamp(scenario.BlockHours, BlockHoursMin, BlockHoursMax)
	scenario.TrainType = oneOf(scenario.TrainType, ScenarioTrainTypes)
	scenario.StartingPoint = oneOf(scenario.StartingPoint, ScenarioStartingPoints)
	scenario.TrackSection = oneOf(scenario.TrackSection, ScenarioTrackSections)
	if _, err := time.Parse("15:04", scenario.DepartureTime); err != nil {
		scenario.DepartureTime = "00:00"
	}
	return scenario
}

func (scenario Scenario) Describe() string {
	switch scenario.Type {
	case ScenarioUnscheduledTrain:
		return fmt.Sprintf("%s: %s train departing %s at %s",
			scenario.Type.Label(), scenario.TrainType, scenario.StartingPoint, scenario.DepartureTime)
	case ScenarioMaintenanceBlock:
		return fmt.Sprintf("%s: %s for %dh", scenario.Type.Label(), scenario.TrackSection, scenario.BlockHours)
	default:
		return fmt.Sprintf("%s: train %s by %dm", scenario.Type.Label(), scenario.TrainID, scenario.DelayMinutes)
	}
}

// Impact is the static "Predicted Impact Analysis" panel.
type Impact struct {
	Metrics []Metric `json:"metrics"`
	Warning string   `json:"warning"`
}

func PredictedImpact() Impact {
	return Impact{
		Metrics: []Metric{
			{Label: "Projected Punctuality", Value: "88.1%", Delta: "-6.1%"},
			{Label: "Projected Avg. Delay", Value: "7.2m", Delta: "+4.4m"},
			{Label: "Potential Conflicts", Value: "2", Delta: "2"},
		},
		Warning: "The simulation predicts 2 new conflicts and a significant increase in average delay.",
	}
}

func clamp(value, low, high int) int {
	return max(low, min(value, high))
}

func oneOf(value string, options []string) string {
	if slices.Contains(options, value) {
		return value
	}
	return options[0]
}
