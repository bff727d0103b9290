package sla

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
	apperrors "github.com/spec-kit/sla-engine/pkg/util"
)

// Calendar performs business-hours date arithmetic over a validated
// configuration. All methods take explicit timestamps; the calendar
// never reads the system clock.
type Calendar struct {
	cfg      domain.BusinessHoursConfig
	loc      *time.Location
	weekdays map[time.Weekday]struct{}
	holidays []domain.Holiday
}

// NewCalendar validates the configuration and resolves the timezone.
// Validation failures surface as configuration errors before any
// deadline computation is attempted.
func NewCalendar(cfg domain.BusinessHoursConfig, holidays []domain.Holiday) (*Calendar, error) {
	if len(cfg.Weekdays) == 0 {
		return nil, apperrors.NewConfigurationError("business weekday set is empty", nil)
	}
	if cfg.StartHour < 0 || cfg.StartHour > 23 || cfg.EndHour < 0 || cfg.EndHour > 23 ||
		cfg.StartMinute < 0 || cfg.StartMinute > 59 || cfg.EndMinute < 0 || cfg.EndMinute > 59 {
		return nil, apperrors.NewConfigurationError("business hours out of range", map[string]any{
			"start_hour": cfg.StartHour,
			"end_hour":   cfg.EndHour,
		})
	}
	startMin := cfg.StartHour*60 + cfg.StartMinute
	endMin := cfg.EndHour*60 + cfg.EndMinute
	if startMin >= endMin {
		return nil, apperrors.NewConfigurationError("business day start must precede end", map[string]any{
			"start": startMin,
			"end":   endMin,
		})
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, apperrors.NewConfigurationError("invalid timezone", map[string]any{"timezone": cfg.Timezone})
	}

	weekdays := make(map[time.Weekday]struct{}, len(cfg.Weekdays))
	for _, day := range cfg.Weekdays {
		weekdays[day] = struct{}{}
	}
	return &Calendar{cfg: cfg, loc: loc, weekdays: weekdays, holidays: holidays}, nil
}

// Location returns the calendar's resolved timezone.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// IsBusinessDay reports whether the weekday of t, in the configured
// timezone, belongs to the business weekday set.
func (c *Calendar) IsBusinessDay(t time.Time) bool {
	_, ok := c.weekdays[t.In(c.loc).Weekday()]
	return ok
}

// IsHoliday reports whether t falls on a configured holiday.
func (c *Calendar) IsHoliday(t time.Time) bool {
	local := t.In(c.loc)
	for _, h := range c.holidays {
		if holidayMatches(h, local) {
			return true
		}
	}
	return false
}

// holidayMatches compares a holiday against a date. Recurring holidays
// match by month and day only, so a Feb 29 recurring holiday matches in
// leap years and never otherwise.
func holidayMatches(h domain.Holiday, date time.Time) bool {
	if h.Recurring {
		return h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
	}
	hy, hm, hd := h.Date.Date()
	dy, dm, dd := date.Date()
	return hy == dy && hm == dm && hd == dd
}

func (c *Calendar) isWorkingDay(t time.Time) bool {
	return c.IsBusinessDay(t) && !c.IsHoliday(t)
}

// window returns the business window boundaries for the day containing t.
func (c *Calendar) window(t time.Time) (time.Time, time.Time) {
	local := t.In(c.loc)
	y, m, d := local.Date()
	start := time.Date(y, m, d, c.cfg.StartHour, c.cfg.StartMinute, 0, 0, c.loc)
	end := time.Date(y, m, d, c.cfg.EndHour, c.cfg.EndMinute, 0, 0, c.loc)
	return start, end
}

func (c *Calendar) nextWindowStart(t time.Time) time.Time {
	start, _ := c.window(t.In(c.loc).AddDate(0, 0, 1))
	return start
}

// AddBusinessHours advances start by the given number of hours counted
// only inside business windows. Whole non-business days and holidays
// are skipped; a start before the window clamps forward to the window
// start, a start at or past the window end rolls to the next business
// day. Zero or negative hours return start unchanged.
func (c *Calendar) AddBusinessHours(start time.Time, hours float64) time.Time {
	if hours <= 0 {
		return start
	}
	remaining := time.Duration(hours * float64(time.Hour))
	cursor := start.In(c.loc)

	for remaining > 0 {
		if !c.isWorkingDay(cursor) {
			cursor = c.nextWindowStart(cursor)
			continue
		}
		windowStart, windowEnd := c.window(cursor)
		if cursor.Before(windowStart) {
			cursor = windowStart
		}
		if !cursor.Before(windowEnd) {
			cursor = c.nextWindowStart(cursor)
			continue
		}
		available := windowEnd.Sub(cursor)
		if remaining <= available {
			return cursor.Add(remaining)
		}
		remaining -= available
		cursor = c.nextWindowStart(cursor)
	}
	return cursor
}

// ElapsedBusinessHours sums the business-window overlap of every day
// between start and end. Returns zero when end is not after start.
func (c *Calendar) ElapsedBusinessHours(start, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}
	localStart := start.In(c.loc)
	localEnd := end.In(c.loc)

	var total time.Duration
	y, m, d := localStart.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, c.loc)
	for !day.After(localEnd) {
		if c.isWorkingDay(day) {
			windowStart, windowEnd := c.window(day)
			from := windowStart
			if localStart.After(from) {
				from = localStart
			}
			to := windowEnd
			if localEnd.Before(to) {
				to = localEnd
			}
			if to.After(from) {
				total += to.Sub(from)
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return total.Hours()
}
