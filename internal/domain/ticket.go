package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen        TicketStatus = "OPEN"
	TicketStatusInProgress  TicketStatus = "IN_PROGRESS"
	TicketStatusPendingUser TicketStatus = "PENDING_USER"
	TicketStatusResolved    TicketStatus = "RESOLVED"
	TicketStatusClosed      TicketStatus = "CLOSED"
	TicketStatusCancelled   TicketStatus = "CANCELLED"
)

// IsTerminal reports whether the status ends a ticket's lifecycle.
// Terminal tickets are never escalated.
func (s TicketStatus) IsTerminal() bool {
	switch s {
	case TicketStatusResolved, TicketStatusClosed, TicketStatusCancelled:
		return true
	default:
		return false
	}
}

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Weight returns the additive urgency contribution of the priority.
// Unrecognized values weigh zero so a malformed ticket never aborts a
// batch evaluation.
func (p TicketPriority) Weight() int {
	switch p {
	case TicketPriorityUrgent:
		return 40
	case TicketPriorityHigh:
		return 30
	case TicketPriorityMedium:
		return 20
	case TicketPriorityLow:
		return 10
	default:
		return 0
	}
}

// Rank orders priorities for bump comparisons (LOW=1 .. URGENT=4,
// unrecognized=0).
func (p TicketPriority) Rank() int {
	switch p {
	case TicketPriorityUrgent:
		return 4
	case TicketPriorityHigh:
		return 3
	case TicketPriorityMedium:
		return 2
	case TicketPriorityLow:
		return 1
	default:
		return 0
	}
}

// TicketSnapshot is the read-only evaluation input for one ticket. The
// engine never mutates it; write-back happens through the repository
// after evaluation.
type TicketSnapshot struct {
	ID               string
	ExternalKey      string
	Title            string
	CustomerName     string
	Status           TicketStatus
	Priority         TicketPriority
	AssigneeID       *string
	CreatedAt        time.Time
	FirstResponseAt  *time.Time
	ResolvedAt       *time.Time
	ResponseStatus   *SLAMetricStatus
	ResolutionStatus *SLAMetricStatus
}
