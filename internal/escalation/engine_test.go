package escalation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sla-engine/internal/domain"
	"github.com/spec-kit/sla-engine/internal/sla"
)

var evalTime = time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)

func hoursPtr(h float64) *float64 { return &h }

func openTicket(age time.Duration) domain.TicketSnapshot {
	return domain.TicketSnapshot{
		ID:          "t-1",
		ExternalKey: "TCK-1001",
		Title:       "Printer on fire",
		Status:      domain.TicketStatusOpen,
		Priority:    domain.TicketPriorityHigh,
		CreatedAt:   evalTime.Add(-age),
	}
}

func breachedSummary() sla.Summary {
	return sla.Summary{
		ResponseStatus:   domain.SLAStatusBreached,
		ResolutionStatus: domain.SLAStatusPending,
	}
}

func quietSummary() sla.Summary {
	return sla.Summary{
		ResponseStatus:   domain.SLAStatusPending,
		ResolutionStatus: domain.SLAStatusPending,
	}
}

func TestMatchesConditions(t *testing.T) {
	ticket := openTicket(30 * time.Hour)

	tests := []struct {
		name       string
		conditions domain.RuleConditions
		summary    sla.Summary
		want       bool
	}{
		{"empty conditions always match", domain.RuleConditions{}, quietSummary(), true},
		{"priority in set", domain.RuleConditions{Priorities: []domain.TicketPriority{domain.TicketPriorityHigh, domain.TicketPriorityUrgent}}, quietSummary(), true},
		{"priority not in set", domain.RuleConditions{Priorities: []domain.TicketPriority{domain.TicketPriorityLow}}, quietSummary(), false},
		{"status in set", domain.RuleConditions{Statuses: []domain.TicketStatus{domain.TicketStatusOpen}}, quietSummary(), true},
		{"status not in set", domain.RuleConditions{Statuses: []domain.TicketStatus{domain.TicketStatusPendingUser}}, quietSummary(), false},
		{"age above threshold", domain.RuleConditions{TimeSinceCreated: hoursPtr(24)}, quietSummary(), true},
		{"age below threshold", domain.RuleConditions{TimeSinceCreated: hoursPtr(48)}, quietSummary(), false},
		{"response idle falls back to creation", domain.RuleConditions{TimeSinceResponse: hoursPtr(24)}, quietSummary(), true},
		{"sla breach required and present", domain.RuleConditions{SLABreached: true}, breachedSummary(), true},
		{"sla breach required and absent", domain.RuleConditions{SLABreached: true}, quietSummary(), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchesConditions(ticket, tc.summary, tc.conditions, evalTime))
		})
	}
}

func TestMatchesConditionsResponseIdleUsesFirstResponse(t *testing.T) {
	ticket := openTicket(72 * time.Hour)
	responded := evalTime.Add(-2 * time.Hour)
	ticket.FirstResponseAt = &responded

	matched := MatchesConditions(ticket, quietSummary(), domain.RuleConditions{TimeSinceResponse: hoursPtr(12)}, evalTime)
	assert.False(t, matched, "recent response resets the idle clock")
}

func TestSelectTerminalStatusesNeverEscalate(t *testing.T) {
	rule := domain.EscalationRule{ID: "r-1", Name: "catch-all", Enabled: true}

	for _, status := range []domain.TicketStatus{domain.TicketStatusResolved, domain.TicketStatusClosed, domain.TicketStatusCancelled} {
		ticket := openTicket(100 * time.Hour)
		ticket.Status = status
		decision := Select(ticket, breachedSummary(), []domain.EscalationRule{rule}, evalTime)
		assert.Nil(t, decision, "status %s must not escalate", status)
	}
}

func TestSelectFirstMatchByDescendingPriority(t *testing.T) {
	rules := []domain.EscalationRule{
		{ID: "low", Name: "low priority rule", Enabled: true, Priority: 1},
		{ID: "disabled", Name: "disabled rule", Enabled: false, Priority: 100},
		{ID: "high", Name: "high priority rule", Enabled: true, Priority: 10},
		{ID: "high-tie", Name: "tie-break rule", Enabled: true, Priority: 10},
	}

	decision := Select(openTicket(2*time.Hour), quietSummary(), rules, evalTime)
	require.NotNil(t, decision)
	assert.Equal(t, "high", decision.Rule.ID, "highest priority enabled rule wins, stable on ties")
}

func TestSelectStopsAtFirstMatch(t *testing.T) {
	rules := []domain.EscalationRule{
		{ID: "never", Name: "unsatisfiable", Enabled: true, Priority: 10,
			Conditions: domain.RuleConditions{TimeSinceCreated: hoursPtr(10000)}},
		{ID: "fallback", Name: "fallback", Enabled: true, Priority: 5},
	}

	decision := Select(openTicket(2*time.Hour), quietSummary(), rules, evalTime)
	require.NotNil(t, decision)
	assert.Equal(t, "fallback", decision.Rule.ID)
}

func TestSelectNoMatch(t *testing.T) {
	rules := []domain.EscalationRule{
		{ID: "r-1", Enabled: true, Conditions: domain.RuleConditions{SLABreached: true}},
	}
	decision := Select(openTicket(time.Hour), quietSummary(), rules, evalTime)
	assert.Nil(t, decision)
}

func TestSelectEndToEnd(t *testing.T) {
	// High-priority ticket aged 30h, breached response SLA, no first
	// response: urgency 30 + 10 + 25 + 20 = 85 and a bump to URGENT.
	rule := domain.EscalationRule{
		ID:       "r-breach",
		Name:     "sla breach",
		Enabled:  true,
		Priority: 50,
		Conditions: domain.RuleConditions{
			Priorities:       []domain.TicketPriority{domain.TicketPriorityHigh, domain.TicketPriorityUrgent},
			TimeSinceCreated: hoursPtr(24),
			SLABreached:      true,
		},
	}
	ticket := openTicket(30 * time.Hour)

	decision := Select(ticket, breachedSummary(), []domain.EscalationRule{rule}, evalTime)
	require.NotNil(t, decision)
	assert.Equal(t, 85, decision.Urgency)
	assert.Equal(t, domain.TicketPriorityUrgent, SuggestPriorityBump(ticket.Priority, decision.Urgency))
	assert.Contains(t, decision.Reason, "response SLA breached")
	assert.Contains(t, decision.Reason, "ticket age 30h")
}
