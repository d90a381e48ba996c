// Package auctioneer coordinates a live auction: it owns the current state,
// runs every bid through the validation engine before the state machine sees
// it, and forwards round outcomes to persistence.
package auctioneer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Surajr36/cricket-auction-simulator/internal/catalog"
	"github.com/Surajr36/cricket-auction-simulator/internal/engine"
	"github.com/Surajr36/cricket-auction-simulator/internal/event"
	"github.com/Surajr36/cricket-auction-simulator/internal/rules"
	"github.com/Surajr36/cricket-auction-simulator/internal/squad"
	"github.com/Surajr36/cricket-auction-simulator/internal/store"
)

// Errors returned by coordinator operations.
var (
	ErrNoAuction      = errors.New("no auction in progress")
	ErrAuctionRunning = errors.New("an auction is already in progress")
	ErrWrongPhase     = errors.New("operation not valid in current phase")
)

// Coordinator serializes all auction operations behind a mutex. The state
// machine itself is pure; the coordinator supplies the validation step,
// the persistence side effects and the event log.
type Coordinator struct {
	mu        sync.Mutex
	state     engine.State
	auctionID string
	version   int

	machine *engine.Machine
	cat     *catalog.Catalog
	cons    squad.Constraints
	repos   *store.Repositories
	logger  *slog.Logger
	tracer  trace.Tracer
}

// New creates a Coordinator with no auction in progress.
func New(machine *engine.Machine, cat *catalog.Catalog, cons squad.Constraints, repos *store.Repositories, logger *slog.Logger, tp trace.TracerProvider) *Coordinator {
	return &Coordinator{
		machine: machine,
		cat:     cat,
		cons:    cons,
		repos:   repos,
		logger:  logger,
		tracer:  tp.Tracer("github.com/Surajr36/cricket-auction-simulator/internal/auctioneer"),
	}
}

// StartAuction opens a new auction with every team at full budget and
// returns its id. Only one auction may run at a time.
func (c *Coordinator) StartAuction(ctx context.Context) (string, error) {
	ctx, span := c.tracer.Start(ctx, "Coordinator.StartAuction")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.auctionID != "" {
		return "", ErrAuctionRunning
	}

	id := uuid.NewString()
	if err := c.repos.Auctions.Create(ctx, &store.Auction{ID: id}); err != nil {
		return "", fmt.Errorf("creating auction record: %w", err)
	}

	c.auctionID = id
	c.version = 0
	c.state = c.machine.Initial()

	c.appendEvent(ctx, event.AuctionStarted, event.AuctionStartedData{
		TeamCount:   len(c.cat.Teams()),
		PlayerCount: len(c.cat.Players()),
	})

	c.logger.InfoContext(ctx, "auction started",
		slog.String("auction_id", id),
		slog.Int("teams", len(c.cat.Teams())),
		slog.Int("players", len(c.cat.Players())),
	)
	return id, nil
}

// OfferNext puts the next remaining catalog player on the block. When the
// roster is exhausted it completes the auction instead.
func (c *Coordinator) OfferNext(ctx context.Context) (engine.State, error) {
	ctx, span := c.tracer.Start(ctx, "Coordinator.OfferNext")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.auctionID == "" {
		return nil, ErrNoAuction
	}
	if c.state.Phase() != engine.PhaseIdle {
		return c.state, ErrWrongPhase
	}

	remaining := c.machine.RemainingPlayers(c.state)
	if len(remaining) == 0 {
		return c.completeLocked(ctx)
	}

	p := remaining[0]
	c.state = c.machine.Apply(c.state, engine.StartBidding{Player: &p})
	c.appendEvent(ctx, event.BiddingOpened, event.BiddingOpenedData{
		PlayerID:  p.ID,
		BasePrice: p.BasePrice,
	})

	c.logger.InfoContext(ctx, "bidding opened",
		slog.String("auction_id", c.auctionID),
		slog.String("player_id", p.ID),
		slog.String("player", p.Name),
		slog.Int("base_price", p.BasePrice),
	)
	return c.state, nil
}

// PlaceBid validates and, if clean, applies a bid for the team. A failed
// validation is a business outcome, not an error: the violations come back
// in the Result and the state keeps only a rejection message.
func (c *Coordinator) PlaceBid(ctx context.Context, teamID string, amount int) (rules.Result, engine.State, error) {
	ctx, span := c.tracer.Start(ctx, "Coordinator.PlaceBid",
		trace.WithAttributes(
			attribute.String("team_id", teamID),
			attribute.Int("amount", amount),
		),
	)
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.auctionID == "" {
		return rules.Result{}, nil, ErrNoAuction
	}
	b, ok := c.state.(engine.Bidding)
	if !ok {
		return rules.Result{}, c.state, ErrWrongPhase
	}

	ts, ok := c.state.TeamState(teamID)
	if !ok {
		return rules.Result{}, c.state, fmt.Errorf("unknown team %q", teamID)
	}

	currentBid, hasBid := 0, false
	if b.Bid != nil {
		currentBid, hasBid = b.Bid.Amount, true
	}

	res := rules.ValidateBid(ts, b.Player, amount, currentBid, hasBid, c.cat, c.cons)
	if !res.Valid() {
		c.state = c.machine.Apply(c.state, engine.InvalidBid{Reason: res.Violations[0].Message})
		c.logger.InfoContext(ctx, "bid rejected",
			slog.String("auction_id", c.auctionID),
			slog.String("team_id", teamID),
			slog.Int("amount", amount),
			slog.Any("violations", res.Messages()),
		)
		return res, c.state, nil
	}

	c.state = c.machine.Apply(c.state, engine.PlaceBid{TeamID: teamID, Amount: amount})
	c.appendEvent(ctx, event.BidPlaced, event.BidPlacedData{
		PlayerID: b.Player.ID,
		TeamID:   teamID,
		Amount:   amount,
	})
	return res, c.state, nil
}

// Tick advances the countdown by one unit.
func (c *Coordinator) Tick(ctx context.Context) engine.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.auctionID == "" {
		return nil
	}
	c.state = c.machine.Apply(c.state, engine.TimerTick{})
	return c.state
}

// Expire finalizes the round after the countdown ran out: sold if a bid
// stands, unsold otherwise.
func (c *Coordinator) Expire(ctx context.Context) (engine.State, error) {
	ctx, span := c.tracer.Start(ctx, "Coordinator.Expire")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finalizeLocked(ctx, engine.TimeExpired{})
}

// Sell brings the hammer down early, selling to the current bidder.
func (c *Coordinator) Sell(ctx context.Context) (engine.State, error) {
	ctx, span := c.tracer.Start(ctx, "Coordinator.Sell")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finalizeLocked(ctx, engine.PlayerSold{})
}

// Pass marks the player unsold without waiting for expiry. The machine
// refuses it while a bid stands.
func (c *Coordinator) Pass(ctx context.Context) (engine.State, error) {
	ctx, span := c.tracer.Start(ctx, "Coordinator.Pass")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finalizeLocked(ctx, engine.PlayerUnsold{})
}

// finalizeLocked dispatches a round-ending event and persists the outcome.
// Persistence failures are logged, never rolled back: the in-memory state
// is the source of truth for a running auction.
func (c *Coordinator) finalizeLocked(ctx context.Context, ev engine.Event) (engine.State, error) {
	if c.auctionID == "" {
		return nil, ErrNoAuction
	}
	if c.state.Phase() != engine.PhaseBidding {
		return c.state, ErrWrongPhase
	}

	c.state = c.machine.Apply(c.state, ev)

	switch s := c.state.(type) {
	case engine.Sold:
		teamID := s.WinningTeamID
		if err := c.repos.Sales.Record(ctx, &store.Sale{
			AuctionID: c.auctionID,
			PlayerID:  s.Player.ID,
			TeamID:    &teamID,
			Price:     s.Price,
		}); err != nil {
			c.logger.ErrorContext(ctx, "failed to record sale", slog.Any("error", err))
		}
		c.appendEvent(ctx, event.PlayerSold, event.PlayerSoldData{
			PlayerID: s.Player.ID,
			TeamID:   s.WinningTeamID,
			Price:    s.Price,
		})
		c.logger.InfoContext(ctx, "player sold",
			slog.String("auction_id", c.auctionID),
			slog.String("player_id", s.Player.ID),
			slog.String("team_id", s.WinningTeamID),
			slog.Int("price", s.Price),
		)

	case engine.Unsold:
		if err := c.repos.Sales.Record(ctx, &store.Sale{
			AuctionID: c.auctionID,
			PlayerID:  s.Player.ID,
		}); err != nil {
			c.logger.ErrorContext(ctx, "failed to record unsold outcome", slog.Any("error", err))
		}
		c.appendEvent(ctx, event.PlayerUnsold, event.PlayerUnsoldData{
			PlayerID: s.Player.ID,
		})
		c.logger.InfoContext(ctx, "player unsold",
			slog.String("auction_id", c.auctionID),
			slog.String("player_id", s.Player.ID),
		)
	}
	return c.state, nil
}

// Reset clears the round outcome and returns to idle, ready for the next
// player.
func (c *Coordinator) Reset(ctx context.Context) (engine.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.auctionID == "" {
		return nil, ErrNoAuction
	}
	if p := c.state.Phase(); p != engine.PhaseSold && p != engine.PhaseUnsold {
		return c.state, ErrWrongPhase
	}
	c.state = c.machine.Apply(c.state, engine.ResetToIdle{})
	return c.state, nil
}

// Complete ends the auction from idle, even with players still remaining.
func (c *Coordinator) Complete(ctx context.Context) (engine.State, error) {
	ctx, span := c.tracer.Start(ctx, "Coordinator.Complete")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.auctionID == "" {
		return nil, ErrNoAuction
	}
	if c.state.Phase() != engine.PhaseIdle {
		return c.state, ErrWrongPhase
	}
	return c.completeLocked(ctx)
}

func (c *Coordinator) completeLocked(ctx context.Context) (engine.State, error) {
	c.state = c.machine.Apply(c.state, engine.CompleteAuction{})

	if err := c.repos.Auctions.Complete(ctx, c.auctionID); err != nil {
		c.logger.ErrorContext(ctx, "failed to mark auction completed", slog.Any("error", err))
	}

	sold := 0
	for _, ts := range c.state.TeamStates() {
		sold += ts.Size()
	}
	unsold := len(c.state.CompletedPlayerIDs()) - sold
	c.appendEvent(ctx, event.AuctionCompleted, event.AuctionCompletedData{
		SoldCount:   sold,
		UnsoldCount: unsold,
	})

	c.logger.InfoContext(ctx, "auction completed",
		slog.String("auction_id", c.auctionID),
		slog.Int("sold", sold),
		slog.Int("unsold", unsold),
	)

	c.summarizeTeamsLocked(ctx)

	c.auctionID = ""
	return c.state, nil
}

// summarizeTeamsLocked logs a per-team closing summary and flags squads
// that finished below the minimum size or any role minimum. The check is
// advisory: no purchase can be forced after the hammer falls.
func (c *Coordinator) summarizeTeamsLocked(ctx context.Context) {
	for _, ts := range c.state.TeamStates() {
		spent := 0
		purchases := ts.Size()
		if sales, err := c.repos.Sales.ListByTeam(ctx, c.auctionID, ts.TeamID); err != nil {
			c.logger.ErrorContext(ctx, "failed to load team sales",
				slog.String("team_id", ts.TeamID), slog.Any("error", err))
		} else {
			purchases = len(sales)
			for _, s := range sales {
				spent += s.Price
			}
		}

		c.logger.InfoContext(ctx, "team summary",
			slog.String("team_id", ts.TeamID),
			slog.Int("purchases", purchases),
			slog.Int("spent", spent),
			slog.Int("remaining_budget", ts.RemainingBudget),
		)

		res := rules.ValidateFinalSquad(ts, c.cat, c.cons)
		for _, v := range res.Violations {
			c.logger.WarnContext(ctx, "squad below minimum",
				slog.String("team_id", ts.TeamID),
				slog.String("kind", string(v.Kind)),
				slog.String("reason", v.Message),
			)
		}
	}
}

// State returns the current auction state, or nil when none is running.
func (c *Coordinator) State() engine.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AuctionID returns the id of the running auction, or "" when none.
func (c *Coordinator) AuctionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auctionID
}

// appendEvent persists a domain event. Failures are logged and swallowed;
// the event log is an audit trail, not a gate on auction progress.
func (c *Coordinator) appendEvent(ctx context.Context, t event.Type, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to marshal event payload",
			slog.String("type", string(t)), slog.Any("error", err))
		return
	}
	c.version++
	ev := event.Event{
		AggregateID: c.auctionID,
		Type:        t,
		Data:        payload,
		Version:     c.version,
	}
	if err := c.repos.Events.Append(ctx, ev); err != nil {
		c.logger.ErrorContext(ctx, "failed to append event",
			slog.String("type", string(t)), slog.Any("error", err))
	}
}
