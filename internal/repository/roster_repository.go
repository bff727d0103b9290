package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// RosterRepository lists escalation target candidates with their
// current workload.
type RosterRepository interface {
	List(ctx context.Context) ([]domain.RosterEntry, error)
}

type rosterRepository struct {
	pool *pgxpool.Pool
}

// NewRosterRepository instantiates the repository.
func NewRosterRepository(pool *pgxpool.Pool) RosterRepository {
	return &rosterRepository{pool: pool}
}

func (r *rosterRepository) List(ctx context.Context) ([]domain.RosterEntry, error) {
	const query = `
        SELECT s.id, s.name, s.role, s.active_flag,
               COUNT(t.id) FILTER (WHERE t.status NOT IN ($1,$2,$3)) AS open_tickets
        FROM staff_members s
        LEFT JOIN tickets t ON t.assignee_staff_id = s.id
        GROUP BY s.id, s.name, s.role, s.active_flag
        ORDER BY s.created_at ASC`

	rows, err := r.pool.Query(ctx, query,
		domain.TicketStatusResolved,
		domain.TicketStatusClosed,
		domain.TicketStatusCancelled,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RosterEntry
	for rows.Next() {
		var entry domain.RosterEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Name,
			&entry.Role,
			&entry.Active,
			&entry.OpenTickets,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
