package postgres_test

import (
	"context"
	"testing"

	"github.com/Surajr36/cricket-auction-simulator/internal/clock"
	"github.com/Surajr36/cricket-auction-simulator/internal/store"
	"github.com/Surajr36/cricket-auction-simulator/internal/store/postgres"
)

func TestSaleRepo_RecordAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auctions := postgres.NewAuctionRepo(db, clock.Real{})
	sales := postgres.NewSaleRepo(db, clock.Real{})

	a := &store.Auction{ID: "auction-1"}
	if err := auctions.Create(ctx, a); err != nil {
		t.Fatalf("Create auction: %v", err)
	}

	team := "team-3"
	sold := &store.Sale{AuctionID: a.ID, PlayerID: "p1", TeamID: &team, Price: 120}
	if err := sales.Record(ctx, sold); err != nil {
		t.Fatalf("Record sold: %v", err)
	}
	if sold.ID == "" {
		t.Fatal("expected ID to be set after Record")
	}

	// Unsold players are recorded with no team and price zero.
	unsold := &store.Sale{AuctionID: a.ID, PlayerID: "p2", TeamID: nil, Price: 0}
	if err := sales.Record(ctx, unsold); err != nil {
		t.Fatalf("Record unsold: %v", err)
	}

	all, err := sales.ListByAuction(ctx, a.ID)
	if err != nil {
		t.Fatalf("ListByAuction: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListByAuction returned %d sales, want 2", len(all))
	}

	byTeam, err := sales.ListByTeam(ctx, a.ID, team)
	if err != nil {
		t.Fatalf("ListByTeam: %v", err)
	}
	if len(byTeam) != 1 {
		t.Fatalf("ListByTeam returned %d sales, want 1", len(byTeam))
	}
	if byTeam[0].PlayerID != "p1" || byTeam[0].Price != 120 {
		t.Errorf("ListByTeam[0] = %+v, want p1 @ 120", byTeam[0])
	}
}

func TestSaleRepo_DuplicatePlayerRejected(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	auctions := postgres.NewAuctionRepo(db, clock.Real{})
	sales := postgres.NewSaleRepo(db, clock.Real{})

	a := &store.Auction{ID: "auction-dup"}
	if err := auctions.Create(ctx, a); err != nil {
		t.Fatalf("Create auction: %v", err)
	}

	team := "team-1"
	if err := sales.Record(ctx, &store.Sale{AuctionID: a.ID, PlayerID: "p1", TeamID: &team, Price: 50}); err != nil {
		t.Fatalf("first Record: %v", err)
	}
	if err := sales.Record(ctx, &store.Sale{AuctionID: a.ID, PlayerID: "p1", TeamID: &team, Price: 60}); err == nil {
		t.Error("expected duplicate player sale to be rejected")
	}
}
