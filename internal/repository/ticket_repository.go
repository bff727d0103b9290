package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// TicketRepository supplies evaluation snapshots and records engine
// output back onto ticket rows.
type TicketRepository interface {
	GetSnapshot(ctx context.Context, id string) (*domain.TicketSnapshot, error)
	ListOpenSnapshots(ctx context.Context, limit, offset int) ([]domain.TicketSnapshot, error)
	UpdateSLAStatus(ctx context.Context, id string, response, resolution domain.SLAMetricStatus) error
	UpdateAssignment(ctx context.Context, id, assigneeID string) error
	UpdatePriority(ctx context.Context, id string, priority domain.TicketPriority) error
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const snapshotColumns = `
        id, external_key, title, customer_name, status, priority, assignee_staff_id,
        created_at, first_response_at, resolved_at, response_sla_status, resolution_sla_status`

func (r *ticketRepository) GetSnapshot(ctx context.Context, id string) (*domain.TicketSnapshot, error) {
	query := `SELECT` + snapshotColumns + ` FROM tickets WHERE id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanSnapshot(row)
}

func (r *ticketRepository) ListOpenSnapshots(ctx context.Context, limit, offset int) ([]domain.TicketSnapshot, error) {
	if limit <= 0 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT` + snapshotColumns + `
        FROM tickets
        WHERE status NOT IN ($1,$2,$3)
        ORDER BY created_at ASC
        LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, query,
		domain.TicketStatusResolved,
		domain.TicketStatusClosed,
		domain.TicketStatusCancelled,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketSnapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *snapshot)
	}
	return result, rows.Err()
}

func (r *ticketRepository) UpdateSLAStatus(ctx context.Context, id string, response, resolution domain.SLAMetricStatus) error {
	const query = `
        UPDATE tickets
        SET response_sla_status=$1, resolution_sla_status=$2, sla_evaluated_at=NOW(), updated_at=NOW()
        WHERE id=$3`
	return r.exec(ctx, query, response, resolution, id)
}

func (r *ticketRepository) UpdateAssignment(ctx context.Context, id, assigneeID string) error {
	const query = `UPDATE tickets SET assignee_staff_id=$1, updated_at=NOW() WHERE id=$2`
	return r.exec(ctx, query, assigneeID, id)
}

func (r *ticketRepository) UpdatePriority(ctx context.Context, id string, priority domain.TicketPriority) error {
	const query = `UPDATE tickets SET priority=$1, updated_at=NOW() WHERE id=$2`
	return r.exec(ctx, query, priority, id)
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	const query = `UPDATE tickets SET status=$1, updated_at=NOW() WHERE id=$2`
	return r.exec(ctx, query, status, id)
}

func (r *ticketRepository) exec(ctx context.Context, query string, args ...any) error {
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanSnapshot(row pgx.Row) (*domain.TicketSnapshot, error) {
	var snapshot domain.TicketSnapshot
	if err := row.Scan(
		&snapshot.ID,
		&snapshot.ExternalKey,
		&snapshot.Title,
		&snapshot.CustomerName,
		&snapshot.Status,
		&snapshot.Priority,
		&snapshot.AssigneeID,
		&snapshot.CreatedAt,
		&snapshot.FirstResponseAt,
		&snapshot.ResolvedAt,
		&snapshot.ResponseStatus,
		&snapshot.ResolutionStatus,
	); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
