package escalation

import (
	"sort"
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
	"github.com/spec-kit/sla-engine/internal/sla"
)

// Decision is the outcome of a matched escalation rule.
type Decision struct {
	Rule    domain.EscalationRule
	Urgency int
	Reason  string
}

// MatchesConditions checks a ticket against one rule's predicate set.
// Every present field must hold; absent fields are unconstrained.
func MatchesConditions(ticket domain.TicketSnapshot, summary sla.Summary, conditions domain.RuleConditions, now time.Time) bool {
	if len(conditions.Priorities) > 0 && !containsPriority(conditions.Priorities, ticket.Priority) {
		return false
	}
	if len(conditions.Statuses) > 0 && !containsStatus(conditions.Statuses, ticket.Status) {
		return false
	}
	if conditions.TimeSinceCreated != nil {
		if now.Sub(ticket.CreatedAt).Hours() < *conditions.TimeSinceCreated {
			return false
		}
	}
	if conditions.TimeSinceResponse != nil {
		since := ticket.CreatedAt
		if ticket.FirstResponseAt != nil {
			since = *ticket.FirstResponseAt
		}
		if now.Sub(since).Hours() < *conditions.TimeSinceResponse {
			return false
		}
	}
	if conditions.SLABreached && !summary.Breached() {
		return false
	}
	return true
}

// Select returns the first matching enabled rule by descending rule
// priority (stable on ties), paired with its urgency score and reason.
// Terminal tickets never escalate; nil means no match.
func Select(ticket domain.TicketSnapshot, summary sla.Summary, rules []domain.EscalationRule, now time.Time) *Decision {
	if ticket.Status.IsTerminal() {
		return nil
	}

	ordered := make([]domain.EscalationRule, 0, len(rules))
	for _, rule := range rules {
		if rule.Enabled {
			ordered = append(ordered, rule)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	for _, rule := range ordered {
		if !MatchesConditions(ticket, summary, rule.Conditions, now) {
			continue
		}
		return &Decision{
			Rule:    rule,
			Urgency: UrgencyScore(ticket, summary, now),
			Reason:  BuildReason(ticket, summary, rule, now),
		}
	}
	return nil
}

func containsPriority(list []domain.TicketPriority, p domain.TicketPriority) bool {
	for _, candidate := range list {
		if candidate == p {
			return true
		}
	}
	return false
}

func containsStatus(list []domain.TicketStatus, s domain.TicketStatus) bool {
	for _, candidate := range list {
		if candidate == s {
			return true
		}
	}
	return false
}
