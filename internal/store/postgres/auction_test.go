package postgres_test

import (
	"context"
	"testing"

	"github.com/Surajr36/cricket-auction-simulator/internal/clock"
	"github.com/Surajr36/cricket-auction-simulator/internal/store"
	"github.com/Surajr36/cricket-auction-simulator/internal/store/postgres"
)

func TestAuctionRepo_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := postgres.NewAuctionRepo(db, clock.Real{})
	ctx := context.Background()

	a := &store.Auction{ID: "auction-life"}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Status != "in_progress" {
		t.Errorf("Status = %q, want %q", a.Status, "in_progress")
	}

	open, err := repo.ListInProgress(ctx)
	if err != nil {
		t.Fatalf("ListInProgress: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("ListInProgress returned %d, want 1", len(open))
	}

	if err := repo.Complete(ctx, a.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != "completed" {
		t.Errorf("Status after Complete = %q, want %q", got.Status, "completed")
	}
	if got.CompletedAt == nil {
		t.Error("expected CompletedAt to be set")
	}

	// Completing twice is an error.
	if err := repo.Complete(ctx, a.ID); err == nil {
		t.Error("expected error completing an already-completed auction")
	}
}
