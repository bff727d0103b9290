package domain

import "time"

// SLAMetricStatus describes the live compliance state of one SLA metric.
type SLAMetricStatus string

const (
	SLAStatusMet      SLAMetricStatus = "MET"
	SLAStatusBreached SLAMetricStatus = "BREACHED"
	SLAStatusPending  SLAMetricStatus = "PENDING"
	SLAStatusAtRisk   SLAMetricStatus = "AT_RISK"
)

// BusinessHoursConfig defines the daily window during which SLA time
// accrues. Start and end are wall-clock values in the configured
// timezone; the weekday set must be non-empty and start must precede
// end within a single day.
type BusinessHoursConfig struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
	Weekdays    []time.Weekday
	Timezone    string
}

// Holiday is a non-working date. Recurring holidays match by month and
// day regardless of year.
type Holiday struct {
	Name      string
	Date      time.Time
	Recurring bool
}

// SLAPolicy holds response/resolution commitments for one priority tier.
// A disabled tier tracks no deadlines.
type SLAPolicy struct {
	Enabled             bool
	ResponseTimeHours   float64
	ResolutionTimeHours float64
	BusinessHoursOnly   bool
}

// SLASettings bundles one policy per priority tier with the shared
// business calendar configuration.
type SLASettings struct {
	Policies      map[TicketPriority]SLAPolicy
	BusinessHours BusinessHoursConfig
	Holidays      []Holiday
}

// PolicyFor returns the policy for a priority. Unknown priorities get a
// disabled policy rather than an error.
func (s SLASettings) PolicyFor(priority TicketPriority) SLAPolicy {
	if policy, ok := s.Policies[priority]; ok {
		return policy
	}
	return SLAPolicy{}
}
