package dashboard

import "time"

// AllOption disables a filter predicate.
const AllOption = "All"

const AuditTimestampLayout = "2006-01-02 15:04:05"

// AuditEntry is one row of the audit trail. Entries are display rows only:
// they have no identity and are never written by the dashboard.
type AuditEntry struct {
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	EventType string    `json:"eventType"`
	Details   string    `json:"details"`
}

func SampleAuditTrail() []AuditEntry {
	at := func(clock string) time.Time {
		ts, err := time.ParseInLocation(AuditTimestampLayout, "2025-09-28 "+clock, time.UTC)
		if err != nil {
			panic(err)
		}
		return ts
	}

	return []AuditEntry{
		{Timestamp: at("11:39:35"), User: "SYSTEM", EventType: "AI Recommendation", Details: "Hold Train 45678 for 6 mins."},
		{Timestamp: at("11:40:12"), User: "Controller_A", EventType: "User Action", Details: "Rejected AI Recommendation for Train 45678."},
		{Timestamp: at("11:42:05"), User: "Controller_A", EventType: "Manual Override", Details: "Executed 'Proceed Via Main Line' for Train 45678."},
		{Timestamp: at("11:45:30"), User: "SYSTEM", EventType: "Conflict Resolution", Details: "AI automatically rerouted Train 54321 to avoid conflict."},
	}
}

// AuditFilter holds the two independent dropdown selections. Empty means All.
type AuditFilter struct {
	User      string `json:"user"`
	EventType string `json:"eventType"`
}

func (filter AuditFilter) Normalized() AuditFilter {
	if filter.User == "" {
		filter.User = AllOption
	}
	if filter.EventType == "" {
		filter.EventType = AllOption
	}
	return filter
}

func FilterAudit(entries []AuditEntry, filter AuditFilter) []AuditEntry {
	filter = filter.Normalized()

	out := make([]AuditEntry, 0, len(entries))
	for _, entry := range entries {
		if filter.User != AllOption && entry.User != filter.User {
			continue
		}
		if filter.EventType != AllOption && entry.EventType != filter.EventType {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// AuditFilterOptions lists "All" followed by distinct values in order of first appearance.
func AuditFilterOptions(entries []AuditEntry) (users []string, eventTypes []string) {
	users = []string{AllOption}
	eventTypes = []string{AllOption}

	seenUsers := map[string]bool{}
	seenEvents := map[string]bool{}
	for _, entry := range entries {
		if !seenUsers[entry.User] {
			seenUsers[entry.User] = true
			users = append(users, entry.User)
		}
		if !seenEvents[entry.EventType] {
			seenEvents[entry.EventType] = true
			eventTypes = append(eventTypes, entry.EventType)
		}
	}
	return users, eventTypes
}
