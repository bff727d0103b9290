package dto

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
	"github.com/spec-kit/sla-engine/internal/sla"
)

// SLASummaryResponse is the wire shape for a ticket's SLA state. Zero
// deadlines (untracked tiers) are omitted.
type SLASummaryResponse struct {
	TicketID               string     `json:"ticket_id"`
	ResponseDeadline       *time.Time `json:"response_deadline,omitempty"`
	ResolutionDeadline     *time.Time `json:"resolution_deadline,omitempty"`
	ResponseStatus         string     `json:"response_status"`
	ResolutionStatus       string     `json:"resolution_status"`
	ResponseElapsedHours   *float64   `json:"response_elapsed_hours,omitempty"`
	ResolutionElapsedHours *float64   `json:"resolution_elapsed_hours,omitempty"`
}

// NewSLASummaryResponse maps a summary onto the wire shape.
func NewSLASummaryResponse(ticketID string, summary sla.Summary) SLASummaryResponse {
	resp := SLASummaryResponse{
		TicketID:               ticketID,
		ResponseStatus:         string(summary.ResponseStatus),
		ResolutionStatus:       string(summary.ResolutionStatus),
		ResponseElapsedHours:   summary.ResponseElapsedHours,
		ResolutionElapsedHours: summary.ResolutionElapsedHours,
	}
	if !summary.ResponseDeadline.IsZero() {
		deadline := summary.ResponseDeadline
		resp.ResponseDeadline = &deadline
	}
	if !summary.ResolutionDeadline.IsZero() {
		deadline := summary.ResolutionDeadline
		resp.ResolutionDeadline = &deadline
	}
	return resp
}

// RuleResponse is the wire shape for an escalation rule.
type RuleResponse struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Enabled    bool                  `json:"enabled"`
	Priority   int                   `json:"priority"`
	Conditions domain.RuleConditions `json:"conditions"`
	Actions    domain.RuleActions    `json:"actions"`
}

// NewRuleResponses maps rules onto the wire shape.
func NewRuleResponses(rules []domain.EscalationRule) []RuleResponse {
	result := make([]RuleResponse, 0, len(rules))
	for _, rule := range rules {
		result = append(result, RuleResponse{
			ID:         rule.ID,
			Name:       rule.Name,
			Enabled:    rule.Enabled,
			Priority:   rule.Priority,
			Conditions: rule.Conditions,
			Actions:    rule.Actions,
		})
	}
	return result
}

// SweepResponse reports one manual sweep cycle.
type SweepResponse struct {
	Evaluated int `json:"evaluated"`
	Breached  int `json:"breached"`
	Escalated int `json:"escalated"`
	Failed    int `json:"failed"`
}
