package dashboard

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	cases := map[string]Period{
		"":              PeriodLast24Hours,
		"Last 24 Hours": PeriodLast24Hours,
		"24h":           PeriodLast24Hours,
		"last 7 days":   PeriodLast7Days,
		"7d":            PeriodLast7Days,
		"Last 30 Days":  PeriodLast30Days,
		"30d":           PeriodLast30Days,
		"fortnight":     PeriodLast30Days,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParsePeriod(raw), "input %q", raw)
	}
}

func TestGenerateHistoryPointCounts(t *testing.T) {
	now := time.Date(2025, 9, 28, 12, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewPCG(1, 2))

	cases := []struct {
		period Period
		points int
		step   time.Duration
	}{
		{PeriodLast24Hours, 24, time.Hour},
		{PeriodLast7Days, 7, 24 * time.Hour},
		{PeriodLast30Days, 30, 24 * time.Hour},
	}

	for _, tc := range cases {
		t.Run(string(tc.period), func(t *testing.T) {
			history := GenerateHistory(tc.period, now, rng)
			require.Len(t, history, tc.points)

			assert.True(t, history[len(history)-1].Time.Equal(now), "series must end at now")
			for i := 1; i < len(history); i++ {
				assert.Equal(t, tc.step, history[i].Time.Sub(history[i-1].Time))
			}
		})
	}
}

func TestGenerateHistoryValueRanges(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	history := GenerateHistory(PeriodLast30Days, time.Now(), rng)

	for _, point := range history {
		assert.GreaterOrEqual(t, point.Punctuality, PunctualityLow)
		assert.LessOrEqual(t, point.Punctuality, PunctualityHigh)
		assert.GreaterOrEqual(t, point.AvgDelay, AvgDelayLow)
		assert.LessOrEqual(t, point.AvgDelay, AvgDelayHigh)

		assert.InDelta(t, point.Punctuality, math.Round(point.Punctuality*10)/10, 1e-9)
		assert.InDelta(t, point.AvgDelay, math.Round(point.AvgDelay*10)/10, 1e-9)
	}
}

func TestPeriodKeysRoundTrip(t *testing.T) {
	for _, period := range Periods() {
		assert.Equal(t, period, ParsePeriod(period.Key()))
	}
}
