package dashboard_web

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"tarediiran-industries.com/rail-dss/internal/dashboard"
)

const (
	chartWidth  = 560
	chartHeight = 260

	chartYTicks    = 5
	chartMaxXTicks = 6

	punctualityAxisMin = 80.0
	punctualityAxisMax = 100.0
)

// Dark palette shared with dashboard.css.
var (
	chartBackground = drawing.Color{R: 0x1a, G: 0x1c, B: 0x22, A: 0xff}
	chartGrid       = drawing.Color{R: 0x26, G: 0x27, B: 0x30, A: 0xff}
	chartText       = drawing.Color{R: 0xa3, G: 0xa8, B: 0xb8, A: 0xff}
	chartLine       = drawing.Color{R: 0x63, G: 0x6e, B: 0xfa, A: 0xff}
	chartFill       = drawing.Color{R: 0x63, G: 0x6e, B: 0xfa, A: 0x4d}
)

type chartSeries struct {
	title string
	times []time.Time
	vals  []float64
	yMin  float64
	yMax  float64
	unit  string
	area  bool
	// timeLayout formats x ticks and point labels.
	timeLayout string
}

func BuildPunctualityChart(period dashboard.Period, points []dashboard.HistoryPoint) (ChartVM, error) {
	times, values := splitHistory(points, func(p dashboard.HistoryPoint) float64 { return p.Punctuality })
	return renderChart(chartSeries{
		title:      "Punctuality Over Time",
		times:      times,
		vals:       values,
		yMin:       punctualityAxisMin,
		yMax:       punctualityAxisMax,
		unit:       "%",
		timeLayout: chartTimeLayout(period),
	}, period.Step())
}

func BuildDelayChart(period dashboard.Period, points []dashboard.HistoryPoint) (ChartVM, error) {
	times, values := splitHistory(points, func(p dashboard.HistoryPoint) float64 { return p.AvgDelay })

	return renderChart(chartSeries{
		title:      "Average Delay Over Time",
		times:      times,
		vals:       values,
		yMin:       0,
		yMax:       delayAxisMax(values),
		unit:       "m",
		area:       true,
		timeLayout: chartTimeLayout(period),
	}, period.Step())
}

func delayAxisMax(values []float64) float64 {
	top := 1.0
	for _, v := range values {
		top = math.Max(top, math.Ceil(v))
	}
	return top
}

func chartTimeLayout(period dashboard.Period) string {
	if period.Step() < 24*time.Hour {
		return "15:04"
	}
	return "Jan 02"
}

func splitHistory(points []dashboard.HistoryPoint, value func(dashboard.HistoryPoint) float64) ([]time.Time, []float64) {
	times := make([]time.Time, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		times[i] = p.Time
		values[i] = value(p)
	}
	return times, values
}

func renderChart(series chartSeries, step time.Duration) (ChartVM, error) {
	vm := ChartVM{Title: series.title}
	if len(series.vals) == 0 {
		return vm, nil
	}

	// Plotted values are clamped to the axis; labels keep the real value.
	plotted := make([]float64, len(series.vals))
	for i, v := range series.vals {
		plotted[i] = math.Max(series.yMin, math.Min(series.yMax, v))
		vm.Points = append(vm.Points, ChartPointVM{
			Label: fmt.Sprintf("%s: %.1f%s", series.times[i].Format(series.timeLayout), v, series.unit),
		})
	}

	style := chart.Style{
		StrokeColor: chartLine,
		StrokeWidth: 2,
		DotColor:    chartLine,
		DotWidth:    3,
	}
	if series.area {
		style.FillColor = chartFill
	}

	axisStyle := chart.Style{StrokeColor: chartGrid, FontColor: chartText, FontSize: 8}

	graph := chart.Chart{
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{FillColor: chartBackground, Padding: chart.Box{Top: 16, Left: 8, Right: 24, Bottom: 8}},
		Canvas:     chart.Style{FillColor: chartBackground},
		XAxis: chart.XAxis{
			Style: axisStyle,
			Range: timeRange(series.times, step),
			Ticks: timeTicks(series.times, series.timeLayout),
		},
		YAxis: chart.YAxis{
			Style:          axisStyle,
			Range:          &chart.ContinuousRange{Min: series.yMin, Max: series.yMax},
			Ticks:          valueTicks(series.yMin, series.yMax, series.unit),
			GridMajorStyle: chart.Style{StrokeColor: chartGrid, StrokeWidth: 1},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    series.title,
				Style:   style,
				XValues: series.times,
				YValues: plotted,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return ChartVM{}, fmt.Errorf("render %q: %w", series.title, err)
	}
	// The SVG comes from the chart renderer, not from request input.
	vm.SVG = template.HTML(buf.String())
	return vm, nil
}

// timeRange widens a single point by one step on each side so the x axis
// never collapses to zero width.
func timeRange(times []time.Time, step time.Duration) *chart.ContinuousRange {
	first, last := times[0], times[len(times)-1]
	if !last.After(first) {
		first, last = first.Add(-step), first.Add(step)
	}
	return &chart.ContinuousRange{Min: chart.TimeToFloat64(first), Max: chart.TimeToFloat64(last)}
}

func timeTicks(times []time.Time, layout string) []chart.Tick {
	stride := int(math.Ceil(float64(len(times)) / chartMaxXTicks))
	if stride < 1 {
		stride = 1
	}

	ticks := make([]chart.Tick, 0, chartMaxXTicks)
	for i := 0; i < len(times); i += stride {
		ticks = append(ticks, chart.Tick{Value: chart.TimeToFloat64(times[i]), Label: times[i].Format(layout)})
	}
	return ticks
}

func valueTicks(low, high float64, unit string) []chart.Tick {
	ticks := make([]chart.Tick, 0, chartYTicks)
	for i := 0; i < chartYTicks; i++ {
		value := low + (high-low)*float64(i)/float64(chartYTicks-1)
		ticks = append(ticks, chart.Tick{Value: value, Label: fmt.Sprintf("%g%s", math.Round(value*10)/10, unit)})
	}
	return ticks
}
