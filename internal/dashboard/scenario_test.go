package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenarioType(t *testing.T) {
	for raw, want := range map[string]ScenarioType{
		"maintenance":                ScenarioMaintenanceBlock,
		"Schedule Maintenance Block": ScenarioMaintenanceBlock,
		"unscheduled":                ScenarioUnscheduledTrain,
		"Add Unscheduled Train":      ScenarioUnscheduledTrain,
		"":                           ScenarioTrainDelay,
		"derailment":                 ScenarioTrainDelay,
	} {
		assert.Equal(t, want, ParseScenarioType(raw), raw)
	}
}

func TestDefaultScenario(t *testing.T) {
	now := time.Date(2025, 9, 28, 7, 5, 0, 0, time.UTC)
	scenario := DefaultScenario(ScenarioUnscheduledTrain, now)

	assert.Equal(t, "07:05", scenario.DepartureTime)
	assert.Equal(t, "12301", scenario.TrainID)
	assert.Equal(t, "Freight", scenario.TrainType)
	assert.Equal(t, "Station A", scenario.StartingPoint)
	assert.Equal(t, "Section A-1", scenario.TrackSection)
	assert.Equal(t, DelayMinutesDefault, scenario.DelayMinutes)
	assert.Equal(t, BlockHoursDefault, scenario.BlockHours)
}

func TestScenarioNormalize(t *testing.T) {
	now := time.Date(2025, 9, 28, 16, 5, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input Scenario
		want  Scenario
	}{
		{
			name:  "defaults are untouched",
			input: DefaultScenario(ScenarioTrainDelay, now),
			want:  DefaultScenario(ScenarioTrainDelay, now),
		},
		{
			name: "sliders clamp high and low",
			input: Scenario{
				Type:          ScenarioMaintenanceBlock,
				DelayMinutes:  90,
				BlockHours:    0,
				TrainType:     "Express",
				StartingPoint: "Station B",
				TrackSection:  "Main Line 1",
				DepartureTime: "23:59",
			},
			want: Scenario{
				Type:          ScenarioMaintenanceBlock,
				DelayMinutes:  DelayMinutesMax,
				BlockHours:    BlockHoursMin,
				TrainType:     "Express",
				StartingPoint: "Station B",
				TrackSection:  "Main Line 1",
				DepartureTime: "23:59",
			},
		},
		{
			name: "unknown selections snap to the first option",
			input: Scenario{
				Type:          "bogus",
				DelayMinutes:  1,
				BlockHours:    12,
				TrainType:     "Hovercraft",
				StartingPoint: "Station Z",
				TrackSection:  "Section Q",
				DepartureTime: "25:99",
			},
			want: Scenario{
				Type:          ScenarioTrainDelay,
				DelayMinutes:  DelayMinutesMin,
				BlockHours:    BlockHoursMax,
				TrainType:     "Freight",
				StartingPoint: "Station A",
				TrackSection:  "Section A-1",
				DepartureTime: "00:00",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.input.Normalize())
		})
	}
}

func TestScenarioDescribe(t *testing.T) {
	now := time.Date(2025, 9, 28, 7, 5, 0, 0, time.UTC)

	assert.Equal(t, "Introduce Train Delay: train 12301 by 15m", DefaultScenario(ScenarioTrainDelay, now).Describe())
	assert.Equal(t, "Add Unscheduled Train: Freight train departing Station A at 07:05", DefaultScenario(ScenarioUnscheduledTrain, now).Describe())
	assert.Equal(t, "Schedule Maintenance Block: Section A-1 for 2h", DefaultScenario(ScenarioMaintenanceBlock, now).Describe())
}

func TestPredictedImpactIsFixed(t *testing.T) {
	impact := PredictedImpact()

	require.Len(t, impact.Metrics, 3)
	assert.Equal(t, Metric{Label: "Projected Punctuality", Value: "88.1%", Delta: "-6.1%"}, impact.Metrics[0])
	assert.Equal(t, Metric{Label: "Projected Avg. Delay", Value: "7.2m", Delta: "+4.4m"}, impact.Metrics[1])
	assert.Equal(t, Metric{Label: "Potential Conflicts", Value: "2", Delta: "2"}, impact.Metrics[2])
	assert.Contains(t, impact.Warning, "2 new conflicts")
}
