package domain

// EscalationTargetType selects how an escalated ticket is reassigned.
type EscalationTargetType string

const (
	TargetManager  EscalationTargetType = "MANAGER"
	TargetSenior   EscalationTargetType = "SENIOR"
	TargetSpecific EscalationTargetType = "SPECIFIC"
)

// RosterRole tiers the escalation target candidates.
type RosterRole string

const (
	RosterRoleTech    RosterRole = "TECH"
	RosterRoleSenior  RosterRole = "SENIOR"
	RosterRoleManager RosterRole = "MANAGER"
)

// RosterEntry is an escalation target candidate with its current load.
type RosterEntry struct {
	ID          string
	Name        string
	Role        RosterRole
	Active      bool
	OpenTickets int
}

// RuleConditions is the predicate set of an escalation rule. Nil or
// empty fields are unconstrained and always satisfied.
type RuleConditions struct {
	Priorities        []TicketPriority `json:"priorities,omitempty"`
	Statuses          []TicketStatus   `json:"statuses,omitempty"`
	TimeSinceCreated  *float64         `json:"time_since_created,omitempty"`  // hours
	TimeSinceResponse *float64         `json:"time_since_response,omitempty"` // hours
	SLABreached       bool             `json:"sla_breached,omitempty"`
}

// RuleActions describes what happens when a rule matches.
type RuleActions struct {
	Target           EscalationTargetType `json:"target"`
	SpecificStaffIDs []string             `json:"specific_staff_ids,omitempty"`
	NotifyTemplate   string               `json:"notify_template,omitempty"`
	PriorityOverride *TicketPriority      `json:"priority_override,omitempty"`
	StatusOverride   *TicketStatus        `json:"status_override,omitempty"`
}

// EscalationRule pairs conditions with actions. Priority orders rule
// evaluation only: higher values are checked first, ties keep their
// configured order.
type EscalationRule struct {
	ID         string
	Name       string
	Enabled    bool
	Priority   int
	Conditions RuleConditions
	Actions    RuleActions
}
