package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Surajr36/cricket-auction-simulator/internal/clock"
	"github.com/Surajr36/cricket-auction-simulator/internal/store"
)

// SaleRepo implements store.SaleRepository with sqlx.
type SaleRepo struct {
	db  *sqlx.DB
	clk clock.Clock
}

// NewSaleRepo returns a new SaleRepo.
func NewSaleRepo(db *sqlx.DB, clk clock.Clock) *SaleRepo {
	return &SaleRepo{db: db, clk: clk}
}

func (r *SaleRepo) Record(ctx context.Context, s *store.Sale) error {
	s.SoldAt = r.clk.Now().UTC()
	query := `INSERT INTO sales (auction_id, player_id, team_id, price, sold_at)
	           VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, s.AuctionID, s.PlayerID, s.TeamID, s.Price, s.SoldAt).Scan(&s.ID)
}

func (r *SaleRepo) ListByAuction(ctx context.Context, auctionID string) ([]store.Sale, error) {
	var sales []store.Sale
	err := r.db.SelectContext(ctx, &sales,
		`SELECT * FROM sales WHERE auction_id = $1 ORDER BY sold_at ASC, id ASC`, auctionID)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	return sales, nil
}

func (r *SaleRepo) ListByTeam(ctx context.Context, auctionID, teamID string) ([]store.Sale, error) {
	var sales []store.Sale
	err := r.db.SelectContext(ctx, &sales,
		`SELECT * FROM sales WHERE auction_id = $1 AND team_id = $2 ORDER BY sold_at ASC, id ASC`,
		auctionID, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing team sales: %w", err)
	}
	return sales, nil
}
