package escalation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/sla-engine/internal/domain"
	"github.com/spec-kit/sla-engine/internal/sla"
)

func TestUrgencyScorePriorityWeights(t *testing.T) {
	tests := []struct {
		priority domain.TicketPriority
		want     int
	}{
		{domain.TicketPriorityUrgent, 40},
		{domain.TicketPriorityHigh, 30},
		{domain.TicketPriorityMedium, 20},
		{domain.TicketPriorityLow, 10},
		{domain.TicketPriority("GARBAGE"), 0},
		{domain.TicketPriority(""), 0},
	}
	responded := evalTime.Add(-time.Minute)
	for _, tc := range tests {
		t.Run(string(tc.priority), func(t *testing.T) {
			ticket := openTicket(time.Hour)
			ticket.Priority = tc.priority
			ticket.FirstResponseAt = &responded
			assert.Equal(t, tc.want, UrgencyScore(ticket, quietSummary(), evalTime))
		})
	}
}

func TestUrgencyScoreAgeTiersExclusive(t *testing.T) {
	tests := []struct {
		name string
		age  time.Duration
		want int
	}{
		{"under a day", 20 * time.Hour, 0},
		{"over a day", 30 * time.Hour, 10},
		{"over two days", 60 * time.Hour, 20},
		{"over three days", 100 * time.Hour, 30},
	}
	responded := evalTime.Add(-time.Minute)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ticket := openTicket(tc.age)
			ticket.Priority = domain.TicketPriority("")
			ticket.FirstResponseAt = &responded
			assert.Equal(t, tc.want, UrgencyScore(ticket, quietSummary(), evalTime))
		})
	}
}

func TestUrgencyScoreSLABonusesStack(t *testing.T) {
	ticket := openTicket(time.Hour)
	ticket.Priority = domain.TicketPriority("")
	responded := evalTime.Add(-time.Minute)
	ticket.FirstResponseAt = &responded

	summary := sla.Summary{
		ResponseStatus:   domain.SLAStatusBreached,
		ResolutionStatus: domain.SLAStatusBreached,
	}
	assert.Equal(t, 60, UrgencyScore(ticket, summary, evalTime))

	summary = sla.Summary{
		ResponseStatus:   domain.SLAStatusAtRisk,
		ResolutionStatus: domain.SLAStatusAtRisk,
	}
	assert.Equal(t, 30, UrgencyScore(ticket, summary, evalTime))
}

func TestUrgencyScoreNoResponseBonus(t *testing.T) {
	ticket := openTicket(time.Hour)
	ticket.Priority = domain.TicketPriority("")
	assert.Equal(t, 20, UrgencyScore(ticket, quietSummary(), evalTime))
}

func TestUrgencyScoreMonotonic(t *testing.T) {
	// Severity, age and breach flags may only push the score upward.
	base := openTicket(time.Hour)
	base.Priority = domain.TicketPriorityLow
	responded := evalTime.Add(-time.Minute)
	base.FirstResponseAt = &responded
	baseScore := UrgencyScore(base, quietSummary(), evalTime)

	higher := base
	higher.Priority = domain.TicketPriorityUrgent
	assert.Greater(t, UrgencyScore(higher, quietSummary(), evalTime), baseScore)

	older := base
	older.CreatedAt = evalTime.Add(-80 * time.Hour)
	assert.Greater(t, UrgencyScore(older, quietSummary(), evalTime), baseScore)

	assert.Greater(t, UrgencyScore(base, breachedSummary(), evalTime), baseScore)
}

func TestSuggestPriorityBump(t *testing.T) {
	tests := []struct {
		current domain.TicketPriority
		score   int
		want    domain.TicketPriority
	}{
		{domain.TicketPriorityLow, 85, domain.TicketPriorityUrgent},
		{domain.TicketPriorityHigh, 85, domain.TicketPriorityUrgent},
		{domain.TicketPriorityLow, 65, domain.TicketPriorityHigh},
		{domain.TicketPriorityMedium, 65, domain.TicketPriorityUrgent},
		{domain.TicketPriorityHigh, 65, domain.TicketPriorityUrgent},
		{domain.TicketPriorityUrgent, 65, domain.TicketPriorityUrgent},
		{domain.TicketPriorityLow, 45, domain.TicketPriorityMedium},
		{domain.TicketPriorityMedium, 45, domain.TicketPriorityHigh},
		{domain.TicketPriorityHigh, 45, domain.TicketPriorityHigh},
		{domain.TicketPriorityUrgent, 45, domain.TicketPriorityUrgent},
		{domain.TicketPriorityLow, 39, domain.TicketPriorityLow},
		{domain.TicketPriorityUrgent, 0, domain.TicketPriorityUrgent},
	}
	for _, tc := range tests {
		got := SuggestPriorityBump(tc.current, tc.score)
		assert.Equal(t, tc.want, got, "bump(%s, %d)", tc.current, tc.score)
	}
}

func TestSuggestPriorityBumpNeverDowngrades(t *testing.T) {
	priorities := []domain.TicketPriority{
		domain.TicketPriorityLow,
		domain.TicketPriorityMedium,
		domain.TicketPriorityHigh,
		domain.TicketPriorityUrgent,
	}
	for _, current := range priorities {
		for score := 0; score <= 200; score += 5 {
			got := SuggestPriorityBump(current, score)
			assert.GreaterOrEqual(t, got.Rank(), current.Rank(), "bump(%s, %d)", current, score)
		}
	}
}
