package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Surajr36/cricket-auction-simulator/internal/clock"
	"github.com/Surajr36/cricket-auction-simulator/internal/store"
)

// AuctionRepo implements store.AuctionRepository with sqlx.
type AuctionRepo struct {
	db  *sqlx.DB
	clk clock.Clock
}

// NewAuctionRepo returns a new AuctionRepo.
func NewAuctionRepo(db *sqlx.DB, clk clock.Clock) *AuctionRepo {
	return &AuctionRepo{db: db, clk: clk}
}

func (r *AuctionRepo) Create(ctx context.Context, a *store.Auction) error {
	a.Status = "in_progress"
	a.StartedAt = r.clk.Now().UTC()
	query := `INSERT INTO auctions (id, status, started_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, a.ID, a.Status, a.StartedAt); err != nil {
		return fmt.Errorf("creating auction: %w", err)
	}
	return nil
}

func (r *AuctionRepo) GetByID(ctx context.Context, id string) (*store.Auction, error) {
	var a store.Auction
	err := r.db.GetContext(ctx, &a, `SELECT * FROM auctions WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("getting auction: %w", err)
	}
	return &a, nil
}

func (r *AuctionRepo) Complete(ctx context.Context, id string) error {
	now := r.clk.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE auctions SET status = 'completed', completed_at = $1
		 WHERE id = $2 AND status = 'in_progress'`,
		now, id,
	)
	if err != nil {
		return fmt.Errorf("completing auction: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("auction %s not found or already completed", id)
	}
	return nil
}

func (r *AuctionRepo) ListInProgress(ctx context.Context) ([]store.Auction, error) {
	var auctions []store.Auction
	err := r.db.SelectContext(ctx, &auctions,
		`SELECT * FROM auctions WHERE status = 'in_progress' ORDER BY started_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing in-progress auctions: %w", err)
	}
	return auctions, nil
}
