package escalation

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
	"github.com/spec-kit/sla-engine/internal/sla"
)

// UrgencyScore ranks a ticket by an additive, uncapped heuristic:
// priority base weight, an exclusive age tier bonus, independent SLA
// state bonuses per metric, and a bonus when no first response exists.
func UrgencyScore(ticket domain.TicketSnapshot, summary sla.Summary, now time.Time) int {
	score := ticket.Priority.Weight()

	ageHours := now.Sub(ticket.CreatedAt).Hours()
	switch {
	case ageHours > 72:
		score += 30
	case ageHours > 48:
		score += 20
	case ageHours > 24:
		score += 10
	}

	if summary.ResponseStatus == domain.SLAStatusBreached {
		score += 25
	}
	if summary.ResolutionStatus == domain.SLAStatusBreached {
		score += 35
	}
	if summary.ResponseStatus == domain.SLAStatusAtRisk {
		score += 15
	}
	if summary.ResolutionStatus == domain.SLAStatusAtRisk {
		score += 15
	}
	if ticket.FirstResponseAt == nil {
		score += 20
	}
	return score
}

// SuggestPriorityBump maps an urgency score to a new priority. The
// result is deterministic, monotonic in the score, and never below the
// current priority.
func SuggestPriorityBump(current domain.TicketPriority, score int) domain.TicketPriority {
	switch {
	case score >= 80:
		return highest(current, domain.TicketPriorityUrgent)
	case score >= 60:
		if current == domain.TicketPriorityLow {
			return domain.TicketPriorityHigh
		}
		return highest(current, domain.TicketPriorityUrgent)
	case score >= 40:
		return highest(current, oneTierUp(current))
	default:
		return current
	}
}

func oneTierUp(p domain.TicketPriority) domain.TicketPriority {
	switch p {
	case domain.TicketPriorityLow:
		return domain.TicketPriorityMedium
	case domain.TicketPriorityMedium:
		return domain.TicketPriorityHigh
	default:
		return p
	}
}

func highest(a, b domain.TicketPriority) domain.TicketPriority {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}
