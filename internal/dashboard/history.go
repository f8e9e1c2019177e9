package dashboard

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

type Period string

const (
	PeriodLast24Hours Period = "Last 24 Hours"
	PeriodLast7Days   Period = "Last 7 Days"
	PeriodLast30Days  Period = "Last 30 Days"
)

func Periods() []Period {
	return []Period{PeriodLast24Hours, PeriodLast7Days, PeriodLast30Days}
}

// ParsePeriod accepts selector labels and short forms (24h, 7d, 30d).
// Empty picks the first selector option; anything else falls through to 30 days.
func ParsePeriod(raw string) Period {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "24h", strings.ToLower(string(PeriodLast24Hours)):
		return PeriodLast24Hours
	case "7d", strings.ToLower(string(PeriodLast7Days)):
		return PeriodLast7Days
	default:
		return PeriodLast30Days
	}
}

func (period Period) Points() int {
	switch period {
	case PeriodLast24Hours:
		return 24
	case PeriodLast7Days:
		return 7
	default:
		return 30
	}
}

func (period Period) Step() time.Duration {
	if period == PeriodLast24Hours {
		return time.Hour
	}
	return 24 * time.Hour
}

func (period Period) Key() string {
	switch period {
	case PeriodLast24Hours:
		return "24h"
	case PeriodLast7Days:
		return "7d"
	default:
		return "30d"
	}
}

type HistoryPoint struct {
	Time        time.Time `json:"time"`
	Punctuality float64   `json:"punctuality"`
	AvgDelay    float64   `json:"avgDelay"`
}

const (
	PunctualityLow  = 85.0
	PunctualityHigh = 98.0
	AvgDelayLow     = 1.5
	AvgDelayHigh    = 5.0
)

// GenerateHistory produces placeholder chart data ending at now, oldest first.
func GenerateHistory(period Period, now time.Time, rng *rand.Rand) []HistoryPoint {
	points := period.Points()
	step := period.Step()

	out := make([]HistoryPoint, points)
	for i := range out {
		out[i] = HistoryPoint{
			Time:        now.Add(-time.Duration(points-1-i) * step),
			Punctuality: uniformRounded(rng, PunctualityLow, PunctualityHigh),
			AvgDelay:    uniformRounded(rng, AvgDelayLow, AvgDelayHigh),
		}
	}
	return out
}

func uniformRounded(rng *rand.Rand, low, high float64) float64 {
	value := low + rng.Float64()*(high-low)
	return math.Round(value*10) / 10
}
