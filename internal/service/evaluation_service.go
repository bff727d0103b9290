package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/sla-engine/internal/domain"
	"github.com/spec-kit/sla-engine/internal/escalation"
	"github.com/spec-kit/sla-engine/internal/events"
	"github.com/spec-kit/sla-engine/internal/observability"
	"github.com/spec-kit/sla-engine/internal/repository"
	"github.com/spec-kit/sla-engine/internal/sla"
	apperrors "github.com/spec-kit/sla-engine/pkg/util"
)

const defaultTemplate = "Ticket {ticketId} ({priority}) escalated: {reason}"

// EvaluationService runs the SLA/escalation engine over ticket
// snapshots and hands the output to persistence, cache and event
// collaborators. The engine itself stays pure; all I/O happens here.
type EvaluationService struct {
	tickets    repository.TicketRepository
	roster     repository.RosterRepository
	rules      repository.RuleRepository
	settings   repository.SettingsRepository
	cache      *repository.StatusCache
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	batchSize  int
}

// EvaluationDependencies bundles collaborators.
type EvaluationDependencies struct {
	TicketRepo   repository.TicketRepository
	RosterRepo   repository.RosterRepository
	RuleRepo     repository.RuleRepository
	SettingsRepo repository.SettingsRepository
	Cache        *repository.StatusCache
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
	Logger       *zap.Logger
	BatchSize    int
}

// NewEvaluationService creates the service.
func NewEvaluationService(deps EvaluationDependencies) *EvaluationService {
	batchSize := deps.BatchSize
	if batchSize <= 0 {
		batchSize = 500
	}
	return &EvaluationService{
		tickets:    deps.TicketRepo,
		roster:     deps.RosterRepo,
		rules:      deps.RuleRepo,
		settings:   deps.SettingsRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		batchSize:  batchSize,
	}
}

// EvaluationResult captures one ticket's engine output.
type EvaluationResult struct {
	Ticket      domain.TicketSnapshot
	Summary     sla.Summary
	Decision    *escalation.Decision
	Assignee    *domain.RosterEntry
	NewPriority *domain.TicketPriority
	Message     string
}

// SweepStats summarizes one evaluation cycle.
type SweepStats struct {
	Evaluated int
	Breached  int
	Escalated int
	Failed    int
}

// EvaluateTicket runs one ticket through the engine at the given
// instant.
func (s *EvaluationService) EvaluateTicket(ctx context.Context, ticketID string, now time.Time) (*EvaluationResult, error) {
	env, err := s.loadEnvironment(ctx)
	if err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetSnapshot(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.evaluateOne(ctx, env, *ticket, now)
}

// EvaluateBatch sweeps all open tickets with bounded concurrency. The
// instant is captured once by the caller so every ticket in the cycle
// is judged against the same clock.
func (s *EvaluationService) EvaluateBatch(ctx context.Context, now time.Time, concurrency int) (SweepStats, error) {
	env, err := s.loadEnvironment(ctx)
	if err != nil {
		return SweepStats{}, err
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	var (
		stats SweepStats
		mu    sync.Mutex
		wg    sync.WaitGroup
	)
	sem := make(chan struct{}, concurrency)

	for offset := 0; ; offset += s.batchSize {
		tickets, err := s.tickets.ListOpenSnapshots(ctx, s.batchSize, offset)
		if err != nil {
			return stats, apperrors.MapError(err)
		}
		if len(tickets) == 0 {
			break
		}
		for _, ticket := range tickets {
			ticket := ticket
			wg.Add(1)
			sem <- struct{}{}
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				result, err := s.evaluateOne(ctx, env, ticket, now)
				mu.Lock()
				defer mu.Unlock()
				stats.Evaluated++
				if err != nil {
					stats.Failed++
					return
				}
				if result.Summary.Breached() {
					stats.Breached++
				}
				if result.Decision != nil {
					stats.Escalated++
				}
			}()
		}
		if len(tickets) < s.batchSize {
			break
		}
	}
	wg.Wait()
	return stats, nil
}

// GetSummary serves a ticket's SLA summary, preferring the cache and
// recomputing on a miss.
func (s *EvaluationService) GetSummary(ctx context.Context, ticketID string, now time.Time) (*sla.Summary, error) {
	if cached, err := s.cache.Get(ctx, ticketID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("sla cache read failed", zap.String("ticket_id", ticketID), zap.Error(err))
	}

	env, err := s.loadEnvironment(ctx)
	if err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetSnapshot(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	summary := env.tracker.Summary(*ticket, now)
	if err := s.cache.Put(ctx, ticketID, summary); err != nil {
		s.logger.Warn("sla cache write failed", zap.String("ticket_id", ticketID), zap.Error(err))
	}
	return &summary, nil
}

// ListRules exposes the configured escalation rules.
func (s *EvaluationService) ListRules(ctx context.Context) ([]domain.EscalationRule, error) {
	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rules, nil
}

type environment struct {
	tracker *sla.Tracker
	rules   []domain.EscalationRule
	roster  []domain.RosterEntry
}

func (s *EvaluationService) loadEnvironment(ctx context.Context) (*environment, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	tracker, err := sla.NewTracker(*settings)
	if err != nil {
		return nil, err
	}
	rules, err := s.rules.ListEnabled(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	roster, err := s.roster.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &environment{tracker: tracker, rules: rules, roster: roster}, nil
}

func (s *EvaluationService) evaluateOne(ctx context.Context, env *environment, ticket domain.TicketSnapshot, now time.Time) (*EvaluationResult, error) {
	summary := env.tracker.Summary(ticket, now)
	result := &EvaluationResult{Ticket: ticket, Summary: summary}

	if err := s.tickets.UpdateSLAStatus(ctx, ticket.ID, summary.ResponseStatus, summary.ResolutionStatus); err != nil {
		s.metrics.RecordEvaluationFailure()
		return nil, apperrors.MapError(err)
	}
	if err := s.cache.Put(ctx, ticket.ID, summary); err != nil {
		s.logger.Warn("sla cache write failed", zap.String("ticket_id", ticket.ID), zap.Error(err))
	}
	s.publishTransitions(ctx, ticket, summary)

	decision := escalation.Select(ticket, summary, env.rules, now)
	result.Decision = decision
	if decision == nil {
		s.metrics.RecordEvaluation(summary.Breached(), false)
		return result, nil
	}

	if err := s.applyDecision(ctx, env, ticket, summary, decision, result, now); err != nil {
		s.metrics.RecordEvaluationFailure()
		return nil, err
	}
	s.metrics.RecordEvaluation(summary.Breached(), true)
	return result, nil
}

func (s *EvaluationService) applyDecision(ctx context.Context, env *environment, ticket domain.TicketSnapshot, summary sla.Summary, decision *escalation.Decision, result *EvaluationResult, now time.Time) error {
	actions := decision.Rule.Actions

	excludeID := ""
	if ticket.AssigneeID != nil {
		excludeID = *ticket.AssigneeID
	}
	targets := escalation.Targets(actions.Target, env.roster, actions.SpecificStaffIDs, excludeID)
	if len(targets) > 0 {
		assignee := targets[0]
		result.Assignee = &assignee
		if err := s.tickets.UpdateAssignment(ctx, ticket.ID, assignee.ID); err != nil {
			return apperrors.MapError(err)
		}
	} else {
		s.logger.Warn("no escalation target available",
			zap.String("ticket_id", ticket.ID),
			zap.String("rule_id", decision.Rule.ID),
			zap.String("target_type", string(actions.Target)))
	}

	template := actions.NotifyTemplate
	if template == "" {
		template = defaultTemplate
	}
	result.Message = escalation.RenderMessage(template, ticket, decision.Reason, result.Assignee, now)

	newPriority := escalation.SuggestPriorityBump(ticket.Priority, decision.Urgency)
	if actions.PriorityOverride != nil {
		newPriority = *actions.PriorityOverride
	}
	if newPriority != ticket.Priority {
		if err := s.tickets.UpdatePriority(ctx, ticket.ID, newPriority); err != nil {
			return apperrors.MapError(err)
		}
		result.NewPriority = &newPriority
		s.publish(ctx, events.EventPriorityBumped, ticket.ID, events.PriorityBumpedPayload{
			OldPriority: ticket.Priority,
			NewPriority: newPriority,
			Urgency:     decision.Urgency,
		})
	}

	if actions.StatusOverride != nil && *actions.StatusOverride != ticket.Status {
		if err := s.tickets.UpdateStatus(ctx, ticket.ID, *actions.StatusOverride); err != nil {
			return apperrors.MapError(err)
		}
	}

	var assigneeID *string
	if result.Assignee != nil {
		assigneeID = &result.Assignee.ID
	}
	s.publish(ctx, events.EventTicketEscalated, ticket.ID, events.TicketEscalatedPayload{
		RuleID:     decision.Rule.ID,
		RuleName:   decision.Rule.Name,
		Urgency:    decision.Urgency,
		Reason:     decision.Reason,
		AssigneeID: assigneeID,
		Message:    result.Message,
	})
	return nil
}

// publishTransitions emits breach/at-risk events only when a metric
// moved into that state since the previous evaluation.
func (s *EvaluationService) publishTransitions(ctx context.Context, ticket domain.TicketSnapshot, summary sla.Summary) {
	s.publishMetricTransition(ctx, ticket, "response", ticket.ResponseStatus, summary.ResponseStatus, summary.ResponseDeadline)
	s.publishMetricTransition(ctx, ticket, "resolution", ticket.ResolutionStatus, summary.ResolutionStatus, summary.ResolutionDeadline)
}

func (s *EvaluationService) publishMetricTransition(ctx context.Context, ticket domain.TicketSnapshot, metric string, previous *domain.SLAMetricStatus, current domain.SLAMetricStatus, deadline time.Time) {
	if previous != nil && *previous == current {
		return
	}
	switch current {
	case domain.SLAStatusBreached:
		s.publish(ctx, events.EventSLABreached, ticket.ID, events.SLABreachedPayload{
			Metric:   metric,
			Deadline: deadline,
			Priority: ticket.Priority,
			Status:   current,
		})
	case domain.SLAStatusAtRisk:
		s.publish(ctx, events.EventSLAAtRisk, ticket.ID, events.SLAAtRiskPayload{
			Metric:   metric,
			Deadline: deadline,
			Priority: ticket.Priority,
		})
	}
}

func (s *EvaluationService) publish(ctx context.Context, eventType events.EventType, ticketID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		Timestamp: time.Now(),
		Payload:   payload,
	}
	_ = s.dispatcher.Publish(ctx, event)
}
