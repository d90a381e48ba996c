package squad_test

import (
	"testing"

	"github.com/Surajr36/cricket-auction-simulator/internal/catalog"
	"github.com/Surajr36/cricket-auction-simulator/internal/squad"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		[]catalog.Player{
			{ID: "bat1", Role: catalog.RoleBatter, Nationality: catalog.Domestic, BasePrice: 50},
			{ID: "bat2", Role: catalog.RoleBatter, Nationality: catalog.Overseas, BasePrice: 50},
			{ID: "bowl1", Role: catalog.RoleBowler, Nationality: catalog.Overseas, BasePrice: 40},
			{ID: "keep1", Role: catalog.RoleWicketKeeper, Nationality: catalog.Domestic, BasePrice: 30},
		},
		[]catalog.Team{{ID: "t1", Name: "Alpha", ShortName: "ALP", Budget: 1000}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func TestTeamState_WithPurchase(t *testing.T) {
	ts := squad.NewTeamState("t1", 1000)

	ts2 := ts.WithPurchase("bat1", 120)

	// The original is untouched.
	if ts.RemainingBudget != 1000 || ts.Size() != 0 {
		t.Errorf("original mutated: budget=%d size=%d", ts.RemainingBudget, ts.Size())
	}
	if ts2.RemainingBudget != 880 {
		t.Errorf("RemainingBudget = %d, want 880", ts2.RemainingBudget)
	}
	if ts2.Size() != 1 || ts2.Squad[0].PlayerID != "bat1" || ts2.Squad[0].Price != 120 {
		t.Errorf("Squad = %+v", ts2.Squad)
	}

	ts3 := ts2.WithPurchase("bowl1", 80)
	if ts3.TotalSpent() != 200 {
		t.Errorf("TotalSpent = %d, want 200", ts3.TotalSpent())
	}
	if ts2.Size() != 1 {
		t.Errorf("intermediate state mutated: size=%d", ts2.Size())
	}
}

func TestRoleAndOverseasCounts(t *testing.T) {
	cat := testCatalog(t)
	ts := squad.NewTeamState("t1", 1000).
		WithPurchase("bat1", 50).
		WithPurchase("bat2", 60).
		WithPurchase("bowl1", 40)

	if got := squad.RoleCount(ts, cat, catalog.RoleBatter); got != 2 {
		t.Errorf("RoleCount(batter) = %d, want 2", got)
	}
	if got := squad.RoleCount(ts, cat, catalog.RoleWicketKeeper); got != 0 {
		t.Errorf("RoleCount(wicket-keeper) = %d, want 0", got)
	}
	if got := squad.OverseasCount(ts, cat); got != 2 {
		t.Errorf("OverseasCount = %d, want 2", got)
	}

	counts := squad.RoleCounts(ts, cat)
	if counts[catalog.RoleBatter] != 2 || counts[catalog.RoleBowler] != 1 {
		t.Errorf("RoleCounts = %v", counts)
	}
}

func TestConstraints_Validate(t *testing.T) {
	if err := squad.DefaultConstraints().Validate(); err != nil {
		t.Errorf("default constraints invalid: %v", err)
	}

	bad := squad.DefaultConstraints()
	bad.MinSquadSize = 30
	bad.MaxSquadSize = 25
	if err := bad.Validate(); err == nil {
		t.Error("expected error for min > max")
	}

	bad = squad.DefaultConstraints()
	bad.RoleLimits[catalog.RoleBatter] = squad.RoleLimit{Min: 5, Max: 2}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for role min > max")
	}
}
