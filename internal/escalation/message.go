package escalation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
	"github.com/spec-kit/sla-engine/internal/sla"
)

var tokenPattern = regexp.MustCompile(`\{(\w+)\}`)

// BuildReason renders a comma-joined list of the conditions that made
// the rule match. Falls back to a generic string when no specific
// condition contributed.
func BuildReason(ticket domain.TicketSnapshot, summary sla.Summary, rule domain.EscalationRule, now time.Time) string {
	var reasons []string

	if rule.Conditions.TimeSinceCreated != nil {
		age := int(now.Sub(ticket.CreatedAt).Hours())
		reasons = append(reasons, fmt.Sprintf("ticket age %dh exceeds %gh", age, *rule.Conditions.TimeSinceCreated))
	}
	if rule.Conditions.TimeSinceResponse != nil {
		since := ticket.CreatedAt
		if ticket.FirstResponseAt != nil {
			since = *ticket.FirstResponseAt
		}
		idle := int(now.Sub(since).Hours())
		reasons = append(reasons, fmt.Sprintf("no activity for %dh (threshold %gh)", idle, *rule.Conditions.TimeSinceResponse))
	}
	if rule.Conditions.SLABreached {
		if summary.ResponseStatus == domain.SLAStatusBreached {
			reasons = append(reasons, "response SLA breached")
		}
		if summary.ResolutionStatus == domain.SLAStatusBreached {
			reasons = append(reasons, "resolution SLA breached")
		}
	}
	if len(rule.Conditions.Priorities) > 0 {
		reasons = append(reasons, fmt.Sprintf("priority %s", ticket.Priority))
	}

	if len(reasons) == 0 {
		return "Escalation rule triggered"
	}
	return strings.Join(reasons, ", ")
}

// RenderMessage substitutes notification tokens in a single pass, so
// the result does not depend on replacement order. Unknown tokens stay
// verbatim in the output.
func RenderMessage(template string, ticket domain.TicketSnapshot, reason string, assignee *domain.RosterEntry, now time.Time) string {
	values := map[string]string{
		"ticketId":    ticket.ExternalKey,
		"title":       ticket.Title,
		"priority":    string(ticket.Priority),
		"status":      string(ticket.Status),
		"reason":      reason,
		"customer":    ticket.CustomerName,
		"timeOverdue": fmt.Sprintf("%d", int(now.Sub(ticket.CreatedAt).Hours())),
	}
	if assignee != nil {
		values["assignee"] = assignee.Name
	}

	return tokenPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		if value, ok := values[name]; ok {
			return value
		}
		return match
	})
}
