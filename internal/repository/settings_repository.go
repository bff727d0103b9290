package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// SettingsRepository loads SLA settings: per-tier policies, the shared
// business-hours window and the holiday list.
type SettingsRepository interface {
	Load(ctx context.Context) (*domain.SLASettings, error)
}

type settingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository instantiates the repository.
func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{pool: pool}
}

func (r *settingsRepository) Load(ctx context.Context) (*domain.SLASettings, error) {
	settings := &domain.SLASettings{
		Policies: make(map[domain.TicketPriority]domain.SLAPolicy),
	}

	if err := r.loadBusinessHours(ctx, settings); err != nil {
		return nil, err
	}
	if err := r.loadPolicies(ctx, settings); err != nil {
		return nil, err
	}
	if err := r.loadHolidays(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingsRepository) loadBusinessHours(ctx context.Context, settings *domain.SLASettings) error {
	const query = `
        SELECT start_hour, start_minute, end_hour, end_minute, weekdays, timezone
        FROM business_hours
        ORDER BY created_at ASC
        LIMIT 1`

	var weekdays []int32
	if err := r.pool.QueryRow(ctx, query).Scan(
		&settings.BusinessHours.StartHour,
		&settings.BusinessHours.StartMinute,
		&settings.BusinessHours.EndHour,
		&settings.BusinessHours.EndMinute,
		&weekdays,
		&settings.BusinessHours.Timezone,
	); err != nil {
		return err
	}
	for _, day := range weekdays {
		settings.BusinessHours.Weekdays = append(settings.BusinessHours.Weekdays, time.Weekday(day))
	}
	return nil
}

func (r *settingsRepository) loadPolicies(ctx context.Context, settings *domain.SLASettings) error {
	const query = `
        SELECT priority, enabled, response_time_hours, resolution_time_hours, business_hours_only
        FROM sla_policies`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			priority domain.TicketPriority
			policy   domain.SLAPolicy
		)
		if err := rows.Scan(
			&priority,
			&policy.Enabled,
			&policy.ResponseTimeHours,
			&policy.ResolutionTimeHours,
			&policy.BusinessHoursOnly,
		); err != nil {
			return err
		}
		settings.Policies[priority] = policy
	}
	return rows.Err()
}

func (r *settingsRepository) loadHolidays(ctx context.Context, settings *domain.SLASettings) error {
	const query = `SELECT name, holiday_date, recurring FROM holidays ORDER BY holiday_date ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var holiday domain.Holiday
		if err := rows.Scan(&holiday.Name, &holiday.Date, &holiday.Recurring); err != nil {
			return err
		}
		settings.Holidays = append(settings.Holidays, holiday)
	}
	return rows.Err()
}
