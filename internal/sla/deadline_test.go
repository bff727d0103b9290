package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sla-engine/internal/domain"
)

func testSettings() domain.SLASettings {
	return domain.SLASettings{
		Policies: map[domain.TicketPriority]domain.SLAPolicy{
			domain.TicketPriorityUrgent: {Enabled: true, ResponseTimeHours: 1, ResolutionTimeHours: 8, BusinessHoursOnly: false},
			domain.TicketPriorityHigh:   {Enabled: true, ResponseTimeHours: 4, ResolutionTimeHours: 24, BusinessHoursOnly: true},
			domain.TicketPriorityMedium: {Enabled: true, ResponseTimeHours: 8, ResolutionTimeHours: 48, BusinessHoursOnly: true},
			domain.TicketPriorityLow:    {Enabled: false},
		},
		BusinessHours: weekdayConfig(),
	}
}

func mustTracker(t *testing.T, settings domain.SLASettings) *Tracker {
	t.Helper()
	tracker, err := NewTracker(settings)
	require.NoError(t, err)
	return tracker
}

func TestDeadlinesDisabledTier(t *testing.T) {
	tracker := mustTracker(t, testSettings())

	deadlines := tracker.Deadlines(time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC), domain.TicketPriorityLow)
	assert.True(t, deadlines.Response.IsZero())
	assert.True(t, deadlines.Resolution.IsZero())
}

func TestDeadlinesUnknownPriority(t *testing.T) {
	tracker := mustTracker(t, testSettings())

	deadlines := tracker.Deadlines(time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC), domain.TicketPriority("BANANAS"))
	assert.True(t, deadlines.Response.IsZero())
	assert.True(t, deadlines.Resolution.IsZero())
}

func TestDeadlinesBusinessHoursOnly(t *testing.T) {
	tracker := mustTracker(t, testSettings())

	// High priority, 4 response hours, created Friday 15:00 UTC: two
	// hours consumed Friday, two more from Monday 09:00.
	created := time.Date(2024, 7, 5, 15, 0, 0, 0, time.UTC)
	deadlines := tracker.Deadlines(created, domain.TicketPriorityHigh)

	wantResponse := time.Date(2024, 7, 8, 11, 0, 0, 0, time.UTC)
	assert.True(t, deadlines.Response.Equal(wantResponse), "got %v", deadlines.Response)
}

func TestDeadlinesWallClock(t *testing.T) {
	tracker := mustTracker(t, testSettings())

	created := time.Date(2024, 7, 5, 23, 0, 0, 0, time.UTC) // Friday night
	deadlines := tracker.Deadlines(created, domain.TicketPriorityUrgent)

	assert.True(t, deadlines.Response.Equal(created.Add(time.Hour)))
	assert.True(t, deadlines.Resolution.Equal(created.Add(8*time.Hour)))
}

func TestDeadlinesDeterministic(t *testing.T) {
	tracker := mustTracker(t, testSettings())
	created := time.Date(2024, 7, 2, 11, 30, 0, 0, time.UTC)

	first := tracker.Deadlines(created, domain.TicketPriorityMedium)
	for i := 0; i < 10; i++ {
		again := tracker.Deadlines(created, domain.TicketPriorityMedium)
		assert.Equal(t, first, again)
	}
}
