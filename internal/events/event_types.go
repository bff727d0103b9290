package events

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSLABreached     EventType = "sla_breached"
	EventSLAAtRisk       EventType = "sla_at_risk"
	EventTicketEscalated EventType = "ticket_escalated"
	EventPriorityBumped  EventType = "priority_bumped"
)

// Event represents a domain event emitted during evaluation.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SLABreachedPayload payload.
type SLABreachedPayload struct {
	Metric   string                 `json:"metric"`
	Deadline time.Time              `json:"deadline"`
	Priority domain.TicketPriority  `json:"priority"`
	Status   domain.SLAMetricStatus `json:"status"`
}

// SLAAtRiskPayload payload.
type SLAAtRiskPayload struct {
	Metric   string                `json:"metric"`
	Deadline time.Time             `json:"deadline"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketEscalatedPayload payload.
type TicketEscalatedPayload struct {
	RuleID     string  `json:"rule_id"`
	RuleName   string  `json:"rule_name"`
	Urgency    int     `json:"urgency"`
	Reason     string  `json:"reason"`
	AssigneeID *string `json:"assignee_id,omitempty"`
	Message    string  `json:"message"`
}

// PriorityBumpedPayload payload.
type PriorityBumpedPayload struct {
	OldPriority domain.TicketPriority `json:"old_priority"`
	NewPriority domain.TicketPriority `json:"new_priority"`
	Urgency     int                   `json:"urgency"`
}
