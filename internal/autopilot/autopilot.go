// Package autopilot runs a full auction without an interactive caller. Each
// round every team consults the recommendation pipeline; the willing team
// with the highest ceiling bids the minimum valid amount. The countdown
// driver ends rounds, so a run takes real wall-clock time scaled by the
// configured tick interval.
package autopilot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Surajr36/cricket-auction-simulator/internal/advisor"
	"github.com/Surajr36/cricket-auction-simulator/internal/auctioneer"
	"github.com/Surajr36/cricket-auction-simulator/internal/catalog"
	"github.com/Surajr36/cricket-auction-simulator/internal/engine"
	"github.com/Surajr36/cricket-auction-simulator/internal/squad"
)

// Pilot drives a coordinator through a complete auction.
type Pilot struct {
	coord  *auctioneer.Coordinator
	cat    *catalog.Catalog
	cons   squad.Constraints
	logger *slog.Logger

	// poll is how often the pilot re-reads state between decisions.
	poll time.Duration
}

// New creates a Pilot. poll controls how often it reacts to state changes;
// it should be comfortably shorter than the countdown tick interval.
func New(coord *auctioneer.Coordinator, cat *catalog.Catalog, cons squad.Constraints, poll time.Duration, logger *slog.Logger) *Pilot {
	return &Pilot{coord: coord, cat: cat, cons: cons, poll: poll, logger: logger}
}

// Run starts an auction and plays every round until the auction completes
// or ctx is cancelled.
func (p *Pilot) Run(ctx context.Context) error {
	id, err := p.coord.StartAuction(ctx)
	if err != nil {
		return fmt.Errorf("starting auction: %w", err)
	}
	p.logger.InfoContext(ctx, "autopilot engaged", slog.String("auction_id", id))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.poll):
		}

		st := p.coord.State()
		if st == nil {
			continue
		}

		switch s := st.(type) {
		case engine.Idle:
			if _, err := p.coord.OfferNext(ctx); err != nil {
				p.logger.WarnContext(ctx, "offer next rejected", slog.Any("error", err))
			}

		case engine.Bidding:
			p.maybeBid(ctx, s)

		case engine.Sold, engine.Unsold:
			if _, err := p.coord.Reset(ctx); err != nil {
				p.logger.WarnContext(ctx, "reset rejected", slog.Any("error", err))
			}

		case engine.Completed:
			p.logger.InfoContext(ctx, "autopilot finished", slog.String("auction_id", id))
			p.logSummary(ctx, st)
			return nil
		}
	}
}

// maybeBid picks the single best-placed team and bids the minimum valid
// amount on its behalf. The current leader never outbids itself.
func (p *Pilot) maybeBid(ctx context.Context, b engine.Bidding) {
	minBid := b.MinimumValidBid()

	bestTeam := ""
	bestCeiling := 0
	for _, ts := range b.TeamStates() {
		if b.Bid != nil && b.Bid.TeamID == ts.TeamID {
			continue
		}
		ok, reason := advisor.ShouldConsider(b.Player, ts, p.cat, p.cons)
		if !ok {
			p.logger.DebugContext(ctx, "team sitting out",
				slog.String("team_id", ts.TeamID),
				slog.String("reason", reason),
			)
			continue
		}

		currentBid, hasBid := 0, false
		if b.Bid != nil {
			currentBid, hasBid = b.Bid.Amount, true
		}
		advice := advisor.Recommend(b.Player, ts, p.cat, p.cons, currentBid, hasBid)
		if advice.Ceiling < minBid {
			continue
		}
		if advice.Ceiling > bestCeiling {
			bestCeiling = advice.Ceiling
			bestTeam = ts.TeamID
		}
	}

	if bestTeam == "" {
		return
	}

	res, _, err := p.coord.PlaceBid(ctx, bestTeam, minBid)
	if err != nil {
		p.logger.WarnContext(ctx, "autopilot bid failed", slog.Any("error", err))
		return
	}
	if !res.Valid() {
		p.logger.WarnContext(ctx, "autopilot bid rejected",
			slog.String("team_id", bestTeam),
			slog.Any("violations", res.Messages()),
		)
	}
}

func (p *Pilot) logSummary(ctx context.Context, st engine.State) {
	for _, ts := range st.TeamStates() {
		team, _ := p.cat.Team(ts.TeamID)
		name := ts.TeamID
		if team != nil {
			name = team.Name
		}
		p.logger.InfoContext(ctx, "final squad",
			slog.String("team", name),
			slog.Int("players", ts.Size()),
			slog.Int("spent", ts.TotalSpent()),
			slog.Int("remaining", ts.RemainingBudget),
		)
	}
}
