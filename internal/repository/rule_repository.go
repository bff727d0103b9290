package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// RuleRepository loads the configured escalation rules.
type RuleRepository interface {
	List(ctx context.Context) ([]domain.EscalationRule, error)
	ListEnabled(ctx context.Context) ([]domain.EscalationRule, error)
}

type ruleRepository struct {
	pool *pgxpool.Pool
}

// NewRuleRepository instantiates the repository.
func NewRuleRepository(pool *pgxpool.Pool) RuleRepository {
	return &ruleRepository{pool: pool}
}

func (r *ruleRepository) List(ctx context.Context) ([]domain.EscalationRule, error) {
	return r.list(ctx, false)
}

func (r *ruleRepository) ListEnabled(ctx context.Context) ([]domain.EscalationRule, error) {
	return r.list(ctx, true)
}

func (r *ruleRepository) list(ctx context.Context, enabledOnly bool) ([]domain.EscalationRule, error) {
	query := `
        SELECT id, name, enabled, priority, conditions, actions
        FROM escalation_rules`
	if enabledOnly {
		query += ` WHERE enabled = TRUE`
	}
	query += ` ORDER BY priority DESC, created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EscalationRule
	for rows.Next() {
		var (
			rule       domain.EscalationRule
			conditions []byte
			actions    []byte
		)
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.Enabled, &rule.Priority, &conditions, &actions); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(conditions, &rule.Conditions); err != nil {
			return nil, fmt.Errorf("decode rule %s conditions: %w", rule.ID, err)
		}
		if err := json.Unmarshal(actions, &rule.Actions); err != nil {
			return nil, fmt.Errorf("decode rule %s actions: %w", rule.ID, err)
		}
		result = append(result, rule)
	}
	return result, rows.Err()
}
