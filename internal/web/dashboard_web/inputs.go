package dashboard_web

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"tarediiran-industries.com/rail-dss/internal/dashboard"
)

const (
	noticeAccepted    = "accepted"
	noticeRejected    = "rejected"
	noticeCommandSent = "command-sent"
)

func noticeKeyFor(decision dashboard.Decision) string {
	if decision == dashboard.DecisionAccept {
		return noticeAccepted
	}
	return noticeRejected
}

// ParseNotice maps the redirect's notice key back to its message. Unknown keys show nothing.
func ParseNotice(values url.Values) *NoticeVM {
	switch values.Get("notice") {
	case noticeAccepted:
		return &NoticeVM{Text: dashboard.DecisionAccept.Notice(), Kind: "toast"}
	case noticeRejected:
		return &NoticeVM{Text: dashboard.DecisionReject.Notice(), Kind: "toast"}
	case noticeCommandSent:
		return &NoticeVM{Text: dashboard.ManualCommandNotice, Kind: "success"}
	}
	return nil
}

type PerformanceQuery struct {
	Period dashboard.Period
	Filter dashboard.AuditFilter
}

func ParsePerformanceQuery(values url.Values) PerformanceQuery {
	return PerformanceQuery{
		Period: dashboard.ParsePeriod(values.Get("period")),
		Filter: ParseAuditFilter(values),
	}
}

func ParseAuditFilter(values url.Values) dashboard.AuditFilter {
	return dashboard.AuditFilter{
		User:      strings.TrimSpace(values.Get("user")),
		EventType: strings.TrimSpace(values.Get("event")),
	}.Normalized()
}

// ParseOverrideForm takes the form as typed; nothing is validated.
func ParseOverrideForm(values url.Values) dashboard.ManualCommand {
	return dashboard.ManualCommand{
		TrainID: strings.TrimSpace(values.Get("train_id")),
		Action:  values.Get("action"),
	}
}

// ParseScenarioForm reads the builder fields over their defaults.
func ParseScenarioForm(values url.Values, now time.Time) dashboard.Scenario {
	scenario := dashboard.DefaultScenario(dashboard.ParseScenarioType(values.Get("scenario")), now)

	if values.Has("train_id") {
		scenario.TrainID = strings.TrimSpace(values.Get("train_id"))
	}
	if minutes, err := strconv.Atoi(values.Get("delay_minutes")); err == nil {
		scenario.DelayMinutes = minutes
	}
	if value := values.Get("train_type"); value != "" {
		scenario.TrainType = value
	}
	if value := values.Get("departure_time"); value != "" {
		scenario.DepartureTime = value
	}
	if value := values.Get("starting_point"); value != "" {
		scenario.StartingPoint = value
	}
	if value := values.Get("track_section"); value != "" {
		scenario.TrackSection = value
	}
	if hours, err := strconv.Atoi(values.Get("block_hours")); err == nil {
		scenario.BlockHours = hours
	}

	return scenario.Normalize()
}

// ScenarioValues is the inverse of ParseScenarioForm, used to carry the
// builder selections across the run redirect.
func ScenarioValues(scenario dashboard.Scenario) url.Values {
	values := url.Values{}
	values.Set("scenario", string(scenario.Type))
	switch scenario.Type {
	case dashboard.ScenarioUnscheduledTrain:
		values.Set("train_type", scenario.TrainType)
		values.Set("departure_time", scenario.DepartureTime)
		values.Set("starting_point", scenario.StartingPoint)
	case dashboard.ScenarioMaintenanceBlock:
		values.Set("track_section", scenario.TrackSection)
		values.Set("block_hours", strconv.Itoa(scenario.BlockHours))
	default:
		values.Set("train_id", scenario.TrainID)
		values.Set("delay_minutes", strconv.Itoa(scenario.DelayMinutes))
	}
	return values
}
