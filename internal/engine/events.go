package engine

import "github.com/Surajr36/cricket-auction-simulator/internal/catalog"

// Event is the sealed set of inputs the state machine accepts. Dispatching
// an event outside its declared phase is a logged no-op, never an error.
type Event interface {
	// Name identifies the event for logging.
	Name() string

	event()
}

// StartBidding puts a player on the block. Legal only from idle.
type StartBidding struct {
	Player *catalog.Player
}

// PlaceBid records an accepted bid and extends the timer. Legal only from
// bidding. The machine performs no validation; the caller must have run
// rules.ValidateBid and only dispatch bids that passed.
type PlaceBid struct {
	TeamID string
	Amount int
}

// InvalidBid surfaces a rejected bid's reason in the status message without
// touching timer or bid state. Legal only from bidding.
type InvalidBid struct {
	Reason string
}

// TimerTick decrements the countdown by one unit, floored at zero. It never
// finalizes the round; expiry is a distinct explicit event so the winning
// price is never computed twice.
type TimerTick struct{}

// TimeExpired finalizes the round when the countdown reaches zero: sold if
// a current bid exists, unsold otherwise. Legal only from bidding.
type TimeExpired struct{}

// PlayerSold finalizes the round explicitly (the hammer falls early).
// Identical effect to TimeExpired.
type PlayerSold struct{}

// PlayerUnsold passes on the player explicitly. Legal only from bidding and
// only when no current bid exists.
type PlayerUnsold struct{}

// ResetToIdle clears the per-round fields after a sold or unsold outcome,
// preserving history and team states.
type ResetToIdle struct{}

// CompleteAuction enters the terminal phase. The machine does not detect
// roster exhaustion itself; the surrounding collaborator dispatches this
// when no players remain.
type CompleteAuction struct{}

func (StartBidding) Name() string    { return "start_bidding" }
func (PlaceBid) Name() string        { return "place_bid" }
func (InvalidBid) Name() string      { return "invalid_bid" }
func (TimerTick) Name() string       { return "timer_tick" }
func (TimeExpired) Name() string     { return "time_expired" }
func (PlayerSold) Name() string      { return "player_sold" }
func (PlayerUnsold) Name() string    { return "player_unsold" }
func (ResetToIdle) Name() string     { return "reset_to_idle" }
func (CompleteAuction) Name() string { return "complete_auction" }

func (StartBidding) event()    {}
func (PlaceBid) event()        {}
func (InvalidBid) event()      {}
func (TimerTick) event()       {}
func (TimeExpired) event()     {}
func (PlayerSold) event()      {}
func (PlayerUnsold) event()    {}
func (ResetToIdle) event()     {}
func (CompleteAuction) event() {}
