package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditFilterOptions(t *testing.T) {
	users, events := AuditFilterOptions(SampleAuditTrail())

	assert.Equal(t, []string{"All", "SYSTEM", "Controller_A"}, users)
	assert.Equal(t, []string{"All", "AI Recommendation", "User Action", "Manual Override", "Conflict Resolution"}, events)
}

func TestFilterAuditEveryCombination(t *testing.T) {
	trail := SampleAuditTrail()
	users, events := AuditFilterOptions(trail)

	for _, user := range users {
		for _, event := range events {
			t.Run(user+"/"+event, func(t *testing.T) {
				got := FilterAudit(trail, AuditFilter{User: user, EventType: event})

				var want []AuditEntry
				for _, entry := range trail {
					if (user == AllOption || entry.User == user) && (event == AllOption || entry.EventType == event) {
						want = append(want, entry)
					}
				}
				assert.ElementsMatch(t, want, got)
			})
		}
	}
}

func TestFilterAuditSpecificSelections(t *testing.T) {
	trail := SampleAuditTrail()

	t.Run("all/all returns the whole trail in order", func(t *testing.T) {
		assert.Equal(t, trail, FilterAudit(trail, AuditFilter{User: AllOption, EventType: AllOption}))
	})

	t.Run("empty selections behave like All", func(t *testing.T) {
		assert.Len(t, FilterAudit(trail, AuditFilter{}), 4)
	})

	t.Run("user only", func(t *testing.T) {
		got := FilterAudit(trail, AuditFilter{User: "Controller_A"})
		require.Len(t, got, 2)
		assert.Equal(t, "User Action", got[0].EventType)
		assert.Equal(t, "Manual Override", got[1].EventType)
	})

	t.Run("event only", func(t *testing.T) {
		got := FilterAudit(trail, AuditFilter{EventType: "Conflict Resolution"})
		require.Len(t, got, 1)
		assert.Equal(t, "SYSTEM", got[0].User)
	})

	t.Run("mismatched pair is empty", func(t *testing.T) {
		assert.Empty(t, FilterAudit(trail, AuditFilter{User: "SYSTEM", EventType: "Manual Override"}))
	})

	t.Run("unknown user is empty", func(t *testing.T) {
		assert.Empty(t, FilterAudit(trail, AuditFilter{User: "Controller_Z"}))
	})
}

func TestFilterAuditDoesNotMutateInput(t *testing.T) {
	trail := SampleAuditTrail()
	_ = FilterAudit(trail, AuditFilter{User: "SYSTEM"})
	assert.Equal(t, SampleAuditTrail(), trail)
}

func TestSampleAuditTrailTimestamps(t *testing.T) {
	trail := SampleAuditTrail()
	require.Len(t, trail, 4)
	assert.Equal(t, "2025-09-28 11:39:35", trail[0].Timestamp.Format(AuditTimestampLayout))
	assert.Equal(t, "2025-09-28 11:45:30", trail[3].Timestamp.Format(AuditTimestampLayout))
}
