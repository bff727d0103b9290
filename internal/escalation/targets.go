package escalation

import (
	"sort"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// Targets builds the ordered escalation candidate list for a target
// type. Inactive entries and excludeID are always filtered out; the
// result is sorted least-loaded first, stable on equal load.
func Targets(targetType domain.EscalationTargetType, roster []domain.RosterEntry, specificIDs []string, excludeID string) []domain.RosterEntry {
	var candidates []domain.RosterEntry
	for _, entry := range roster {
		if !entry.Active || entry.ID == excludeID {
			continue
		}
		if eligible(targetType, entry, specificIDs) {
			candidates = append(candidates, entry)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].OpenTickets < candidates[j].OpenTickets
	})
	return candidates
}

func eligible(targetType domain.EscalationTargetType, entry domain.RosterEntry, specificIDs []string) bool {
	switch targetType {
	case domain.TargetManager:
		return entry.Role == domain.RosterRoleManager
	case domain.TargetSenior:
		return entry.Role == domain.RosterRoleSenior || entry.Role == domain.RosterRoleManager
	case domain.TargetSpecific:
		for _, id := range specificIDs {
			if id == entry.ID {
				return true
			}
		}
		return false
	default:
		return false
	}
}
