package sla

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// Deadlines carries the computed response/resolution targets for one
// ticket. A zero time means the metric is not tracked for the ticket's
// priority tier.
type Deadlines struct {
	Response   time.Time
	Resolution time.Time
}

// Tracker computes deadlines and live compliance status against one set
// of SLA settings. Construction validates the business calendar; a
// tracker is immutable afterwards and safe for concurrent use.
type Tracker struct {
	settings domain.SLASettings
	calendar *Calendar
}

// NewTracker builds a tracker, validating the calendar configuration up
// front.
func NewTracker(settings domain.SLASettings) (*Tracker, error) {
	calendar, err := NewCalendar(settings.BusinessHours, settings.Holidays)
	if err != nil {
		return nil, err
	}
	return &Tracker{settings: settings, calendar: calendar}, nil
}

// Calendar exposes the tracker's validated calendar.
func (t *Tracker) Calendar() *Calendar {
	return t.calendar
}

// Deadlines derives response/resolution deadlines from a creation
// timestamp and priority. Pure: identical inputs always yield identical
// outputs. Disabled tiers yield zero-time sentinels.
func (t *Tracker) Deadlines(createdAt time.Time, priority domain.TicketPriority) Deadlines {
	policy := t.settings.PolicyFor(priority)
	if !policy.Enabled {
		return Deadlines{}
	}
	return Deadlines{
		Response:   t.deadline(createdAt, policy.ResponseTimeHours, policy.BusinessHoursOnly),
		Resolution: t.deadline(createdAt, policy.ResolutionTimeHours, policy.BusinessHoursOnly),
	}
}

func (t *Tracker) deadline(createdAt time.Time, hours float64, businessOnly bool) time.Time {
	if businessOnly {
		return t.calendar.AddBusinessHours(createdAt, hours)
	}
	return createdAt.Add(time.Duration(hours * float64(time.Hour)))
}
