package dashboard_web

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"

	"tarediiran-industries.com/rail-dss/internal/dashboard"
)

func history(t *testing.T, period dashboard.Period) []dashboard.HistoryPoint {
	t.Helper()
	points := dashboard.GenerateHistory(period, fixedNow, rand.New(rand.NewPCG(1, 2)))
	require.Len(t, points, period.Points())
	return points
}

func TestPunctualityChartRendersSVG(t *testing.T) {
	chart, err := BuildPunctualityChart(dashboard.PeriodLast24Hours, history(t, dashboard.PeriodLast24Hours))
	require.NoError(t, err)

	assert.Equal(t, "Punctuality Over Time", chart.Title)
	assert.Contains(t, string(chart.SVG), "<svg")
	assert.Contains(t, string(chart.SVG), "80%")
	assert.Contains(t, string(chart.SVG), "100%")

	require.Len(t, chart.Points, 24)
	assert.True(t, strings.HasPrefix(chart.Points[0].Label, fixedNow.Add(-23*time.Hour).Format("15:04")+": "))
	assert.True(t, strings.HasSuffix(chart.Points[0].Label, "%"))
}

func TestDelayChartRendersDailyPoints(t *testing.T) {
	points := history(t, dashboard.PeriodLast7Days)
	chart, err := BuildDelayChart(dashboard.PeriodLast7Days, points)
	require.NoError(t, err)

	assert.Equal(t, "Average Delay Over Time", chart.Title)
	assert.NotEmpty(t, chart.SVG)
	require.Len(t, chart.Points, 7)
	assert.True(t, strings.HasPrefix(chart.Points[6].Label, fixedNow.Format("Jan 02")))
	assert.True(t, strings.HasSuffix(chart.Points[6].Label, "m"))
}

func TestDelayAxisMax(t *testing.T) {
	assert.Equal(t, 1.0, delayAxisMax(nil))
	assert.Equal(t, 1.0, delayAxisMax([]float64{0.2, 0.9}))
	assert.Equal(t, 5.0, delayAxisMax([]float64{1.5, 4.1, 3.0}))
}

func TestValueTicksSpanTheAxis(t *testing.T) {
	ticks := valueTicks(punctualityAxisMin, punctualityAxisMax, "%")

	require.Len(t, ticks, chartYTicks)
	assert.Equal(t, chart.Tick{Value: 80, Label: "80%"}, ticks[0])
	assert.Equal(t, chart.Tick{Value: 85, Label: "85%"}, ticks[1])
	assert.Equal(t, chart.Tick{Value: 100, Label: "100%"}, ticks[chartYTicks-1])
}

func TestTimeTicksAreThinned(t *testing.T) {
	points := history(t, dashboard.PeriodLast30Days)
	times, _ := splitHistory(points, func(p dashboard.HistoryPoint) float64 { return p.AvgDelay })

	ticks := timeTicks(times, "Jan 02")
	assert.LessOrEqual(t, len(ticks), chartMaxXTicks)
	assert.Equal(t, times[0].Format("Jan 02"), ticks[0].Label)
	assert.Equal(t, chart.TimeToFloat64(times[0]), ticks[0].Value)
}

func TestTimeRangeWidensSinglePoint(t *testing.T) {
	span := timeRange([]time.Time{fixedNow}, time.Hour)

	assert.Equal(t, chart.TimeToFloat64(fixedNow.Add(-time.Hour)), span.Min)
	assert.Equal(t, chart.TimeToFloat64(fixedNow.Add(time.Hour)), span.Max)
}

func TestChartClampsOutOfRangeValues(t *testing.T) {
	points := []dashboard.HistoryPoint{
		{Time: fixedNow, Punctuality: 40},
	}
	chart, err := BuildPunctualityChart(dashboard.PeriodLast24Hours, points)
	require.NoError(t, err)

	assert.NotEmpty(t, chart.SVG)
	require.Len(t, chart.Points, 1)
	assert.Equal(t, "11:45: 40.0%", chart.Points[0].Label)
}

func TestChartWithoutPoints(t *testing.T) {
	chart, err := BuildDelayChart(dashboard.PeriodLast30Days, nil)
	require.NoError(t, err)

	assert.Equal(t, "Average Delay Over Time", chart.Title)
	assert.Empty(t, chart.SVG)
	assert.Empty(t, chart.Points)
}
