package engine

import (
	"fmt"
	"log/slog"

	"github.com/Surajr36/cricket-auction-simulator/internal/catalog"
	"github.com/Surajr36/cricket-auction-simulator/internal/squad"
)

// Timer settings, in time units. The driver loop maps one unit to one
// wall-clock second.
const (
	// InitialTimer is the countdown window opened for each player.
	InitialTimer = 60
	// BidTimeBonus is added to the countdown for every accepted bid.
	BidTimeBonus = 15
	// MaxTimer caps the countdown regardless of how many bids land.
	MaxTimer = 60
)

// Machine applies events to auction states. It holds no state of its own
// beyond the catalog and logger; Apply is a pure transformation from
// (state, event) to state.
type Machine struct {
	cat    *catalog.Catalog
	logger *slog.Logger
}

// NewMachine returns a Machine over the given catalog.
func NewMachine(cat *catalog.Catalog, logger *slog.Logger) *Machine {
	return &Machine{cat: cat, logger: logger}
}

// Initial returns the idle state every auction starts from: all teams at
// full budget, empty squads, empty history.
func (m *Machine) Initial() State {
	cTeams := m.cat.Teams()
	teams := make([]squad.TeamState, 0, len(cTeams))
	for _, t := range cTeams {
		teams = append(teams, squad.NewTeamState(t.ID, t.Budget))
	}
	return Idle{core{teams: teams, message: "auction ready"}}
}

// Apply computes the next state for an event. Events dispatched outside
// their declared phase leave the state unchanged and log a warning: dispatch
// races (a stale tick after the phase moved on) are expected and inert.
// An event type the machine does not know is a caller contract violation
// and logs an error.
func (m *Machine) Apply(st State, ev Event) State {
	switch e := ev.(type) {
	case StartBidding:
		idle, ok := st.(Idle)
		if !ok {
			return m.ignore(st, ev)
		}
		return m.startBidding(idle, e)

	case PlaceBid:
		b, ok := st.(Bidding)
		if !ok {
			return m.ignore(st, ev)
		}
		return m.placeBid(b, e)

	case InvalidBid:
		b, ok := st.(Bidding)
		if !ok {
			return m.ignore(st, ev)
		}
		b.core = b.core.withMessage(fmt.Sprintf("bid rejected: %s", e.Reason))
		return b

	case TimerTick:
		b, ok := st.(Bidding)
		if !ok {
			return m.ignore(st, ev)
		}
		if b.TimeRemaining > 0 {
			b.TimeRemaining--
		}
		return b

	case TimeExpired:
		b, ok := st.(Bidding)
		if !ok {
			return m.ignore(st, ev)
		}
		return m.finalize(b)

	case PlayerSold:
		b, ok := st.(Bidding)
		if !ok {
			return m.ignore(st, ev)
		}
		return m.finalize(b)

	case PlayerUnsold:
		b, ok := st.(Bidding)
		if !ok || b.Bid != nil {
			return m.ignore(st, ev)
		}
		return m.finalize(b)

	case ResetToIdle:
		switch r := st.(type) {
		case Sold:
			return Idle{r.core.withMessage("ready for next player")}
		case Unsold:
			return Idle{r.core.withMessage("ready for next player")}
		default:
			return m.ignore(st, ev)
		}

	case CompleteAuction:
		idle, ok := st.(Idle)
		if !ok {
			return m.ignore(st, ev)
		}
		return Completed{idle.core.withMessage("auction completed")}

	default:
		m.logger.Error("unknown auction event",
			slog.String("event", ev.Name()),
			slog.String("phase", string(st.Phase())),
		)
		return st
	}
}

func (m *Machine) startBidding(idle Idle, e StartBidding) State {
	if e.Player == nil {
		m.logger.Error("start_bidding dispatched without a player")
		return idle
	}
	return Bidding{
		core: idle.core.withMessage(fmt.Sprintf("bidding open for %s (base price %d)",
			e.Player.Name, e.Player.BasePrice)),
		Player:        e.Player,
		TimeRemaining: InitialTimer,
	}
}

func (m *Machine) placeBid(b Bidding, e PlaceBid) State {
	team, ok := m.cat.Team(e.TeamID)
	if !ok {
		m.logger.Error("bid from unknown team", slog.String("team_id", e.TeamID))
		return b
	}

	b.Bid = &CurrentBid{TeamID: e.TeamID, Amount: e.Amount}
	b.TimeRemaining += BidTimeBonus
	if b.TimeRemaining > MaxTimer {
		b.TimeRemaining = MaxTimer
	}
	b.core = b.core.withMessage(fmt.Sprintf("%s bids %d for %s", team.ShortName, e.Amount, b.Player.Name))
	return b
}

// finalize closes the round: sold to the current bidder if a bid exists,
// unsold otherwise. The player id lands in history exactly once either way.
func (m *Machine) finalize(b Bidding) State {
	if b.Bid == nil {
		c := b.core.
			withCompleted(b.Player.ID).
			withMessage(fmt.Sprintf("%s goes unsold", b.Player.Name))
		return Unsold{core: c, Player: b.Player}
	}

	team, ok := b.core.TeamState(b.Bid.TeamID)
	if !ok {
		m.logger.Error("winning bid from team with no state", slog.String("team_id", b.Bid.TeamID))
		return b
	}
	if b.Bid.Amount > team.RemainingBudget {
		// The caller skipped validation. Refusing the transition keeps the
		// budget invariant; the bid is a contract violation, not an outcome.
		m.logger.Error("winning bid exceeds remaining budget",
			slog.String("team_id", b.Bid.TeamID),
			slog.Int("amount", b.Bid.Amount),
			slog.Int("remaining", team.RemainingBudget),
		)
		return b
	}

	teamName := b.Bid.TeamID
	if t, ok := m.cat.Team(b.Bid.TeamID); ok {
		teamName = t.ShortName
	}
	c := b.core.
		withPurchase(b.Bid.TeamID, b.Player.ID, b.Bid.Amount).
		withCompleted(b.Player.ID).
		withMessage(fmt.Sprintf("sold: %s to %s for %d", b.Player.Name, teamName, b.Bid.Amount))
	return Sold{core: c, Player: b.Player, WinningTeamID: b.Bid.TeamID, Price: b.Bid.Amount}
}

func (m *Machine) ignore(st State, ev Event) State {
	m.logger.Warn("event ignored outside its phase",
		slog.String("event", ev.Name()),
		slog.String("phase", string(st.Phase())),
	)
	return st
}

// RemainingPlayers returns the catalog players not yet completed, in catalog
// order. Safe to call in any phase.
func (m *Machine) RemainingPlayers(st State) []catalog.Player {
	done := make(map[string]struct{}, len(st.CompletedPlayerIDs()))
	for _, id := range st.CompletedPlayerIDs() {
		done[id] = struct{}{}
	}
	var remaining []catalog.Player
	for _, p := range m.cat.Players() {
		if _, ok := done[p.ID]; !ok {
			remaining = append(remaining, p)
		}
	}
	return remaining
}

// CanTeamAfford reports whether the team's remaining budget covers the
// amount. Safe to call in any phase; unknown teams can afford nothing.
func (m *Machine) CanTeamAfford(st State, teamID string, amount int) bool {
	ts, ok := st.TeamState(teamID)
	return ok && amount <= ts.RemainingBudget
}
