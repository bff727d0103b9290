package sla

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// atRiskFraction is the share of the tracked window that may remain
// before a metric is flagged AT_RISK: once 80% of the creation-to-
// deadline interval is consumed, the metric is at risk.
const atRiskFraction = 0.2

// Summary is the per-ticket SLA evaluation result.
type Summary struct {
	ResponseDeadline       time.Time
	ResolutionDeadline     time.Time
	ResponseStatus         domain.SLAMetricStatus
	ResolutionStatus       domain.SLAMetricStatus
	ResponseElapsedHours   *float64
	ResolutionElapsedHours *float64
}

// Breached reports whether either metric is in breach.
func (s Summary) Breached() bool {
	return s.ResponseStatus == domain.SLAStatusBreached || s.ResolutionStatus == domain.SLAStatusBreached
}

// MetricStatusAt derives the compliance status of one metric.
//
// A zero deadline means the metric is untracked and reads PENDING. A
// completed metric is MET or BREACHED by comparing completion against
// the deadline. An open metric is BREACHED once now passes the
// deadline, AT_RISK when remaining time drops below atRiskFraction of
// the creation-to-deadline window, and PENDING otherwise.
func MetricStatusAt(createdAt, deadline time.Time, actual *time.Time, now time.Time) domain.SLAMetricStatus {
	if deadline.IsZero() {
		return domain.SLAStatusPending
	}
	if actual != nil {
		if actual.After(deadline) {
			return domain.SLAStatusBreached
		}
		return domain.SLAStatusMet
	}
	if now.After(deadline) {
		return domain.SLAStatusBreached
	}
	window := deadline.Sub(createdAt)
	if window > 0 {
		remaining := deadline.Sub(now)
		if float64(remaining) < float64(window)*atRiskFraction {
			return domain.SLAStatusAtRisk
		}
	}
	return domain.SLAStatusPending
}

// Summary evaluates both metrics for a ticket at the given instant.
// Elapsed hours count business time when the tier is business-hours
// only, wall-clock time otherwise, and are omitted for untracked tiers.
func (t *Tracker) Summary(ticket domain.TicketSnapshot, now time.Time) Summary {
	deadlines := t.Deadlines(ticket.CreatedAt, ticket.Priority)
	summary := Summary{
		ResponseDeadline:   deadlines.Response,
		ResolutionDeadline: deadlines.Resolution,
		ResponseStatus:     MetricStatusAt(ticket.CreatedAt, deadlines.Response, ticket.FirstResponseAt, now),
		ResolutionStatus:   MetricStatusAt(ticket.CreatedAt, deadlines.Resolution, ticket.ResolvedAt, now),
	}

	policy := t.settings.PolicyFor(ticket.Priority)
	if !policy.Enabled {
		return summary
	}
	responseElapsed := t.elapsed(ticket.CreatedAt, ticket.FirstResponseAt, now, policy.BusinessHoursOnly)
	resolutionElapsed := t.elapsed(ticket.CreatedAt, ticket.ResolvedAt, now, policy.BusinessHoursOnly)
	summary.ResponseElapsedHours = &responseElapsed
	summary.ResolutionElapsedHours = &resolutionElapsed
	return summary
}

func (t *Tracker) elapsed(createdAt time.Time, completedAt *time.Time, now time.Time, businessOnly bool) float64 {
	end := now
	if completedAt != nil {
		end = *completedAt
	}
	if businessOnly {
		return t.calendar.ElapsedBusinessHours(createdAt, end)
	}
	if !end.After(createdAt) {
		return 0
	}
	return end.Sub(createdAt).Hours()
}
