// Package engine implements the auction state machine. The canonical state
// is a sealed set of phase variants; every transition produces a brand-new
// value and out-of-phase events are inert, so stale timer callbacks are
// harmless without any cancellation bookkeeping.
package engine

import (
	"github.com/Surajr36/cricket-auction-simulator/internal/catalog"
	"github.com/Surajr36/cricket-auction-simulator/internal/rules"
	"github.com/Surajr36/cricket-auction-simulator/internal/squad"
)

// Phase names the auction lifecycle stage a State variant belongs to.
type Phase string

// Auction phases.
const (
	PhaseIdle      Phase = "idle"
	PhaseBidding   Phase = "bidding"
	PhaseSold      Phase = "sold"
	PhaseUnsold    Phase = "unsold"
	PhaseCompleted Phase = "completed"
)

// CurrentBid is the highest accepted bid for the player on the block. It
// only exists inside a Bidding state.
type CurrentBid struct {
	TeamID string
	Amount int
}

// State is the sealed interface over the five phase variants. A variant
// carries only the fields meaningful to its phase: a player-less state can
// never expose a current bid, and a bid can never exist without a player.
type State interface {
	Phase() Phase
	// Message is the human-readable status line for the last transition.
	Message() string
	// CompletedPlayerIDs is the ordered auction history. Read-only.
	CompletedPlayerIDs() []string
	// TeamStates returns every team's budget and squad. Read-only.
	TeamStates() []squad.TeamState
	// TeamState looks up one team's state by id.
	TeamState(teamID string) (squad.TeamState, bool)

	sealed()
}

// core carries the fields shared by every phase variant. The slices are
// never mutated in place; transitions that change them copy first, so
// variants may share backing arrays freely.
type core struct {
	teams     []squad.TeamState
	completed []string
	message   string
}

func (c core) sealed() {}

func (c core) Message() string { return c.message }

func (c core) CompletedPlayerIDs() []string { return c.completed }

func (c core) TeamStates() []squad.TeamState { return c.teams }

func (c core) TeamState(teamID string) (squad.TeamState, bool) {
	for _, ts := range c.teams {
		if ts.TeamID == teamID {
			return ts, true
		}
	}
	return squad.TeamState{}, false
}

// withMessage returns a copy of the core with a new status message.
func (c core) withMessage(msg string) core {
	return core{teams: c.teams, completed: c.completed, message: msg}
}

// withCompleted returns a copy with the player id appended to history.
// Appending is idempotent: an id already present is not added again.
func (c core) withCompleted(playerID string) core {
	for _, id := range c.completed {
		if id == playerID {
			return c
		}
	}
	completed := make([]string, len(c.completed), len(c.completed)+1)
	copy(completed, c.completed)
	return core{teams: c.teams, completed: append(completed, playerID), message: c.message}
}

// withPurchase returns a copy with the team's state replaced by one that
// includes the purchase.
func (c core) withPurchase(teamID, playerID string, price int) core {
	teams := make([]squad.TeamState, len(c.teams))
	copy(teams, c.teams)
	for i := range teams {
		if teams[i].TeamID == teamID {
			teams[i] = teams[i].WithPurchase(playerID, price)
			break
		}
	}
	return core{teams: teams, completed: c.completed, message: c.message}
}

// Idle is the between-rounds phase: no player on the block, no bid.
type Idle struct {
	core
}

// Phase returns PhaseIdle.
func (Idle) Phase() Phase { return PhaseIdle }

// Bidding is the live phase: a player on the block, a countdown running and
// at most one current bid.
type Bidding struct {
	core
	Player        *catalog.Player
	Bid           *CurrentBid // nil until the first valid bid
	TimeRemaining int
}

// Phase returns PhaseBidding.
func (Bidding) Phase() Phase { return PhaseBidding }

// MinimumValidBid returns the lowest bid the validation engine would accept
// for the player currently on the block.
func (b Bidding) MinimumValidBid() int {
	if b.Bid != nil {
		return rules.MinimumBid(b.Player.BasePrice, b.Bid.Amount, true)
	}
	return rules.MinimumBid(b.Player.BasePrice, 0, false)
}

// QuickBidOptions suggests three bid amounts starting at the minimum valid
// bid, with steps that grow as the price climbs. Display convenience only;
// the options carry no validation weight.
func (b Bidding) QuickBidOptions() []int {
	min := b.MinimumValidBid()
	step := rules.MinIncrement
	switch {
	case min >= 200:
		step = 20
	case min >= 100:
		step = 10
	}
	return []int{min, min + step, min + 2*step}
}

// Sold is the round outcome when a bid won: the purchase has already been
// applied to the winning team's state.
type Sold struct {
	core
	Player        *catalog.Player
	WinningTeamID string
	Price         int
}

// Phase returns PhaseSold.
func (Sold) Phase() Phase { return PhaseSold }

// Unsold is the round outcome when no bid arrived before expiry.
type Unsold struct {
	core
	Player *catalog.Player
}

// Phase returns PhaseUnsold.
func (Unsold) Phase() Phase { return PhaseUnsold }

// Completed is the terminal phase, entered when the caller decides no
// further players remain.
type Completed struct {
	core
}

// Phase returns PhaseCompleted.
func (Completed) Phase() Phase { return PhaseCompleted }
