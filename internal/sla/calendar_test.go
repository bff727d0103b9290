package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sla-engine/internal/domain"
)

func weekdayConfig() domain.BusinessHoursConfig {
	return domain.BusinessHoursConfig{
		StartHour: 9,
		EndHour:   17,
		Weekdays:  []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		Timezone:  "UTC",
	}
}

func mustCalendar(t *testing.T, cfg domain.BusinessHoursConfig, holidays []domain.Holiday) *Calendar {
	t.Helper()
	calendar, err := NewCalendar(cfg, holidays)
	require.NoError(t, err)
	return calendar
}

func TestNewCalendarValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.BusinessHoursConfig)
	}{
		{"empty weekday set", func(cfg *domain.BusinessHoursConfig) { cfg.Weekdays = nil }},
		{"start after end", func(cfg *domain.BusinessHoursConfig) { cfg.StartHour = 18 }},
		{"start equals end", func(cfg *domain.BusinessHoursConfig) { cfg.StartHour = 17 }},
		{"hour out of range", func(cfg *domain.BusinessHoursConfig) { cfg.EndHour = 25 }},
		{"bad timezone", func(cfg *domain.BusinessHoursConfig) { cfg.Timezone = "Mars/Olympus" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := weekdayConfig()
			tc.mutate(&cfg)
			_, err := NewCalendar(cfg, nil)
			require.Error(t, err)
		})
	}
}

func TestIsBusinessDay(t *testing.T) {
	calendar := mustCalendar(t, weekdayConfig(), nil)

	assert.True(t, calendar.IsBusinessDay(time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)))  // Monday
	assert.False(t, calendar.IsBusinessDay(time.Date(2024, 7, 6, 12, 0, 0, 0, time.UTC))) // Saturday
	assert.False(t, calendar.IsBusinessDay(time.Date(2024, 7, 7, 12, 0, 0, 0, time.UTC))) // Sunday
}

func TestHolidayMatching(t *testing.T) {
	exact := domain.Holiday{Name: "Launch Day", Date: time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)}
	recurring := domain.Holiday{Name: "New Year", Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Recurring: true}

	calendar := mustCalendar(t, weekdayConfig(), []domain.Holiday{exact, recurring})

	assert.True(t, calendar.IsHoliday(time.Date(2024, 7, 4, 10, 0, 0, 0, time.UTC)))
	assert.False(t, calendar.IsHoliday(time.Date(2025, 7, 4, 10, 0, 0, 0, time.UTC)), "non-recurring holiday must not match other years")
	assert.True(t, calendar.IsHoliday(time.Date(2031, 1, 1, 10, 0, 0, 0, time.UTC)), "recurring holiday matches any year")
}

func TestRecurringHolidayLeapYear(t *testing.T) {
	leapDay := domain.Holiday{Name: "Leap Day", Date: time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC), Recurring: true}

	assert.True(t, holidayMatches(leapDay, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	// In non-leap years no Feb 29 exists, so neither Feb 28 nor Mar 1 match.
	assert.False(t, holidayMatches(leapDay, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)))
	assert.False(t, holidayMatches(leapDay, time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestAddBusinessHours(t *testing.T) {
	holiday := domain.Holiday{Name: "Mid-week holiday", Date: time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC)}
	calendar := mustCalendar(t, weekdayConfig(), []domain.Holiday{holiday})

	tests := []struct {
		name  string
		start time.Time
		hours float64
		want  time.Time
	}{
		{
			name:  "within a single window",
			start: time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC), // Monday
			hours: 3,
			want:  time.Date(2024, 7, 1, 13, 0, 0, 0, time.UTC),
		},
		{
			name:  "holiday skipped entirely",
			start: time.Date(2024, 7, 2, 16, 30, 0, 0, time.UTC), // Tuesday 16:30, Wednesday is a holiday
			hours: 2,
			want:  time.Date(2024, 7, 4, 10, 30, 0, 0, time.UTC), // Thursday 10:30
		},
		{
			name:  "rolls over a weekend",
			start: time.Date(2024, 7, 5, 15, 0, 0, 0, time.UTC), // Friday 15:00
			hours: 4,
			want:  time.Date(2024, 7, 8, 11, 0, 0, 0, time.UTC), // Monday 11:00
		},
		{
			name:  "start before window clamps forward",
			start: time.Date(2024, 7, 1, 6, 0, 0, 0, time.UTC),
			hours: 1,
			want:  time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "start after window rolls to next day",
			start: time.Date(2024, 7, 1, 18, 0, 0, 0, time.UTC),
			hours: 1,
			want:  time.Date(2024, 7, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "weekend start treated as before Monday window",
			start: time.Date(2024, 7, 6, 12, 0, 0, 0, time.UTC), // Saturday
			hours: 2,
			want:  time.Date(2024, 7, 8, 11, 0, 0, 0, time.UTC),
		},
		{
			name:  "duration spanning several windows",
			start: time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC),
			hours: 20, // 8 + 8 (Tue) + 4, Wednesday skipped
			want:  time.Date(2024, 7, 4, 13, 0, 0, 0, time.UTC),
		},
		{
			name:  "zero hours returns start unchanged",
			start: time.Date(2024, 7, 6, 12, 0, 0, 0, time.UTC),
			hours: 0,
			want:  time.Date(2024, 7, 6, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "negative hours returns start unchanged",
			start: time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC),
			hours: -3,
			want:  time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := calendar.AddBusinessHours(tc.start, tc.hours)
			assert.True(t, got.Equal(tc.want), "want %v got %v", tc.want, got)
		})
	}
}

func TestAddBusinessHoursMonotonic(t *testing.T) {
	calendar := mustCalendar(t, weekdayConfig(), nil)
	start := time.Date(2024, 7, 2, 14, 30, 0, 0, time.UTC)

	previous := calendar.AddBusinessHours(start, 0)
	for hours := 0.5; hours <= 40; hours += 0.5 {
		next := calendar.AddBusinessHours(start, hours)
		assert.False(t, next.Before(previous), "result regressed at %v hours", hours)
		previous = next
	}
}

func TestElapsedBusinessHours(t *testing.T) {
	holiday := domain.Holiday{Name: "Mid-week holiday", Date: time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC)}
	calendar := mustCalendar(t, weekdayConfig(), []domain.Holiday{holiday})

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  float64
	}{
		{
			name:  "overnight",
			start: time.Date(2024, 7, 1, 16, 0, 0, 0, time.UTC), // Monday 16:00
			end:   time.Date(2024, 7, 2, 10, 0, 0, 0, time.UTC), // Tuesday 10:00
			want:  2,
		},
		{
			name:  "across a holiday",
			start: time.Date(2024, 7, 2, 16, 0, 0, 0, time.UTC), // Tuesday 16:00
			end:   time.Date(2024, 7, 4, 10, 0, 0, 0, time.UTC), // Thursday 10:00, Wednesday skipped
			want:  2,
		},
		{
			name:  "weekend contributes nothing",
			start: time.Date(2024, 7, 5, 16, 0, 0, 0, time.UTC), // Friday 16:00
			end:   time.Date(2024, 7, 8, 10, 0, 0, 0, time.UTC), // Monday 10:00
			want:  2,
		},
		{
			name:  "end before start",
			start: time.Date(2024, 7, 2, 10, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
			want:  0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, calendar.ElapsedBusinessHours(tc.start, tc.end), 1e-9)
		})
	}
}

func TestCalendarRespectsTimezone(t *testing.T) {
	cfg := weekdayConfig()
	cfg.Timezone = "America/New_York"
	calendar := mustCalendar(t, cfg, nil)

	// 13:00 UTC on a Monday is 09:00 in New York: exactly window start.
	start := time.Date(2024, 7, 1, 13, 0, 0, 0, time.UTC)
	got := calendar.AddBusinessHours(start, 1)
	assert.True(t, got.Equal(time.Date(2024, 7, 1, 14, 0, 0, 0, time.UTC)), "got %v", got)
}
