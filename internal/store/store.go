package store

import (
	"context"
	"time"
)

// Auction is the durable record of one auction run.
type Auction struct {
	ID          string     `db:"id"`
	Status      string     `db:"status"` // "in_progress", "completed"
	StartedAt   time.Time  `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
}

// Sale records one completed round outcome. TeamID is nil and Price zero
// when the player went unsold.
type Sale struct {
	ID        string    `db:"id"`
	AuctionID string    `db:"auction_id"`
	PlayerID  string    `db:"player_id"`
	TeamID    *string   `db:"team_id"`
	Price     int       `db:"price"`
	SoldAt    time.Time `db:"sold_at"`
}

// AuctionRepository defines auction-record persistence operations.
type AuctionRepository interface {
	Create(ctx context.Context, a *Auction) error
	GetByID(ctx context.Context, id string) (*Auction, error)
	Complete(ctx context.Context, id string) error
	ListInProgress(ctx context.Context) ([]Auction, error)
}

// SaleRepository defines sale-record persistence operations.
type SaleRepository interface {
	Record(ctx context.Context, s *Sale) error
	ListByAuction(ctx context.Context, auctionID string) ([]Sale, error)
	ListByTeam(ctx context.Context, auctionID, teamID string) ([]Sale, error)
}
