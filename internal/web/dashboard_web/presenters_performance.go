package dashboard_web

import (
	"tarediiran-industries.com/rail-dss/internal/dashboard"
)

func BuildPerformancePageVM(query PerformanceQuery, history []dashboard.HistoryPoint, entries, all []dashboard.AuditEntry) (PerformancePageVM, error) {
	periods := make([]OptionVM, 0, len(dashboard.Periods()))
	for _, period := range dashboard.Periods() {
		periods = append(periods, OptionVM{Value: period.Key(), Label: string(period), Selected: period == query.Period})
	}

	filter := query.Filter.Normalized()
	users, eventTypes := dashboard.AuditFilterOptions(all)

	rows := make([]AuditRowVM, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, AuditRowVM{
			Timestamp: entry.Timestamp.Format(dashboard.AuditTimestampLayout),
			User:      entry.User,
			EventType: entry.EventType,
			Details:   entry.Details,
		})
	}

	punctuality, err := BuildPunctualityChart(query.Period, history)
	if err != nil {
		return PerformancePageVM{}, err
	}
	delay, err := BuildDelayChart(query.Period, history)
	if err != nil {
		return PerformancePageVM{}, err
	}

	return PerformancePageVM{
		Layout:      buildLayout("Performance & Audit Center", pagePerformance, nil),
		Periods:     periods,
		Punctuality: punctuality,
		Delay:       delay,
		Users:       buildOptions(users, filter.User),
		EventTypes:  buildOptions(eventTypes, filter.EventType),
		AuditRows:   rows,
	}, nil
}
