// Package squad holds the per-auction squad model and the pure counting
// primitives that budget, composition and recommendation logic are built on.
// Role and nationality counts are always re-derived from the catalog rather
// than cached, so a count can never go stale.
package squad

import (
	"github.com/Surajr36/cricket-auction-simulator/internal/catalog"
)

// AcquiredPlayer records a finalized purchase: player id plus the price paid.
type AcquiredPlayer struct {
	PlayerID string `json:"player_id"`
	Price    int    `json:"price"`
}

// TeamState is the mutable-per-auction projection of a team: remaining budget
// and the ordered list of acquired players. Values are treated as immutable;
// WithPurchase returns a new state instead of modifying the receiver.
type TeamState struct {
	TeamID          string           `json:"team_id"`
	RemainingBudget int              `json:"remaining_budget"`
	Squad           []AcquiredPlayer `json:"squad"`
}

// NewTeamState returns a fresh state with the full budget and an empty squad.
func NewTeamState(teamID string, budget int) TeamState {
	return TeamState{TeamID: teamID, RemainingBudget: budget}
}

// WithPurchase returns a copy of the state with the purchase applied.
// Callers must have validated the price against the remaining budget first.
func (ts TeamState) WithPurchase(playerID string, price int) TeamState {
	next := TeamState{
		TeamID:          ts.TeamID,
		RemainingBudget: ts.RemainingBudget - price,
		Squad:           make([]AcquiredPlayer, len(ts.Squad), len(ts.Squad)+1),
	}
	copy(next.Squad, ts.Squad)
	next.Squad = append(next.Squad, AcquiredPlayer{PlayerID: playerID, Price: price})
	return next
}

// Size returns the number of acquired players.
func (ts TeamState) Size() int { return len(ts.Squad) }

// TotalSpent returns the sum of all purchase prices.
func (ts TeamState) TotalSpent() int {
	total := 0
	for _, ap := range ts.Squad {
		total += ap.Price
	}
	return total
}

// RoleCount returns how many acquired players have the given role, resolving
// each entry against the catalog.
func RoleCount(ts TeamState, cat *catalog.Catalog, role catalog.Role) int {
	n := 0
	for _, ap := range ts.Squad {
		if p, ok := cat.Player(ap.PlayerID); ok && p.Role == role {
			n++
		}
	}
	return n
}

// RoleCounts returns the acquired-player count per role.
func RoleCounts(ts TeamState, cat *catalog.Catalog) map[catalog.Role]int {
	counts := make(map[catalog.Role]int, len(catalog.Roles))
	for _, ap := range ts.Squad {
		if p, ok := cat.Player(ap.PlayerID); ok {
			counts[p.Role]++
		}
	}
	return counts
}

// OverseasCount returns how many acquired players are overseas.
func OverseasCount(ts TeamState, cat *catalog.Catalog) int {
	n := 0
	for _, ap := range ts.Squad {
		if p, ok := cat.Player(ap.PlayerID); ok && p.Nationality == catalog.Overseas {
			n++
		}
	}
	return n
}
