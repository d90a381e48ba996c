package auctioneer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Surajr36/cricket-auction-simulator/internal/engine"
	"github.com/Surajr36/cricket-auction-simulator/internal/event"
)

// Replay reconstructs the final state of an auction from its event history.
// The read model is derived purely by re-dispatching the logged events
// through the state machine, so replay and live execution can never drift.
func (c *Coordinator) Replay(ctx context.Context, auctionID string) (engine.State, error) {
	events, err := c.repos.Events.Load(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no events for auction %s", auctionID)
	}
	return c.replayEvents(events)
}

// Resume replays an auction's event log and adopts the result as the live
// state, so a restarted process continues where the log left off. Event
// version numbering picks up after the last logged event.
func (c *Coordinator) Resume(ctx context.Context, auctionID string) (engine.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.auctionID != "" {
		return nil, ErrAuctionRunning
	}

	events, err := c.repos.Events.Load(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no events for auction %s", auctionID)
	}

	st, err := c.replayEvents(events)
	if err != nil {
		return nil, err
	}

	c.state = st
	c.auctionID = auctionID
	c.version = events[len(events)-1].Version
	return st, nil
}

func (c *Coordinator) replayEvents(events []event.Event) (engine.State, error) {
	var st engine.State
	for _, e := range events {
		switch e.Type {
		case event.AuctionStarted:
			st = c.machine.Initial()

		case event.BiddingOpened:
			var d event.BiddingOpenedData
			if err := json.Unmarshal(e.Data, &d); err != nil {
				return nil, fmt.Errorf("unmarshalling bidding opened event: %w", err)
			}
			if st == nil {
				return nil, fmt.Errorf("bidding opened before auction started")
			}
			// Rounds end implicitly in the log: a new round resets first.
			if p := st.Phase(); p == engine.PhaseSold || p == engine.PhaseUnsold {
				st = c.machine.Apply(st, engine.ResetToIdle{})
			}
			player, ok := c.cat.Player(d.PlayerID)
			if !ok {
				return nil, fmt.Errorf("replayed player %s not in catalog", d.PlayerID)
			}
			st = c.machine.Apply(st, engine.StartBidding{Player: player})

		case event.BidPlaced:
			var d event.BidPlacedData
			if err := json.Unmarshal(e.Data, &d); err != nil {
				return nil, fmt.Errorf("unmarshalling bid event: %w", err)
			}
			st = c.machine.Apply(st, engine.PlaceBid{TeamID: d.TeamID, Amount: d.Amount})

		case event.PlayerSold:
			st = c.machine.Apply(st, engine.PlayerSold{})

		case event.PlayerUnsold:
			st = c.machine.Apply(st, engine.PlayerUnsold{})

		case event.AuctionCompleted:
			if p := st.Phase(); p == engine.PhaseSold || p == engine.PhaseUnsold {
				st = c.machine.Apply(st, engine.ResetToIdle{})
			}
			st = c.machine.Apply(st, engine.CompleteAuction{})
		}
	}
	return st, nil
}
