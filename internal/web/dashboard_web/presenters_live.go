package dashboard_web

import (
	"strings"
	"time"

	"tarediiran-industries.com/rail-dss/internal/dashboard"
)

const (
	pageLive        = "live"
	pageSimulation  = "simulation"
	pagePerformance = "performance"
)

func buildLayout(title, active string, notice *NoticeVM) LayoutVM {
	items := []NavItemVM{
		{Label: "Live Operations", Icon: "🚆", Href: "/live", Active: active == pageLive},
		{Label: "Simulation Studio", Icon: "🤔", Href: "/simulation", Active: active == pageSimulation},
		{Label: "Performance & Audit", Icon: "📊", Href: "/performance", Active: active == pagePerformance},
	}
	return LayoutVM{Title: title, Nav: items, Notice: notice}
}

func buildMetricVMs(metrics []dashboard.Metric) []MetricVM {
	out := make([]MetricVM, 0, len(metrics))
	for _, metric := range metrics {
		out = append(out, MetricVM{
			Label: metric.Label,
			Value: metric.Value,
			Delta: metric.Delta,
			Tone:  string(dashboard.DeltaTone(metric.Delta, metric.Inverse)),
			Help:  metric.Help,
		})
	}
	return out
}

func buildOptions(values []string, selected string) []OptionVM {
	out := make([]OptionVM, 0, len(values))
	for _, value := range values {
		out = append(out, OptionVM{Value: value, Label: value, Selected: value == selected})
	}
	return out
}

func BuildTrainsTableVM(trains []dashboard.Train, now time.Time) TrainsTableVM {
	rows := make([]TrainRowVM, 0, len(trains))
	for _, t := range trains {
		rows = append(rows, TrainRowVM{
			ID:       t.ID,
			Type:     t.Type,
			NextStop: t.NextStop,
			ETA:      t.ETA,
			Status:   t.Status,
			Tone:     statusTone(t.Status),
		})
	}

	return TrainsTableVM{
		UpdatedAt: now.Format("15:04:05"),
		Rows:      rows,
	}
}

func statusTone(status string) string {
	if strings.HasPrefix(status, "Delayed") {
		return string(dashboard.ToneBad)
	}
	return string(dashboard.ToneGood)
}

func BuildLivePageVM(options Options, notice *NoticeVM, now time.Time) LivePageVM {
	rec := dashboard.LiveRecommendation()

	pollSeconds := options.PollSeconds
	if pollSeconds <= 0 {
		pollSeconds = 5
	}

	return LivePageVM{
		Layout:   buildLayout("Live Operations Dashboard", pageLive, notice),
		Headline: buildMetricVMs(dashboard.LiveHeadline()),
		Recommendation: RecommendationVM{
			TrainLabel: rec.Train,
			Location:   rec.Location,
			Minutes:    rec.Minutes,
			Reason:     rec.Reason,
		},
		ManualActions: buildOptions(dashboard.ManualActions(), ""),
		EventLog:      dashboard.EventLog(),
		MapURL:        options.LiveMapURL,
		MapCaption:    "Live network view showing train positions between Station A and Station B.",
		Trains:        BuildTrainsTableVM(dashboard.TrainsInSection(), now),
		PollSeconds:   pollSeconds,
	}
}
