package advisor_test

import (
	"strings"
	"testing"

	"github.com/Surajr36/cricket-auction-simulator/internal/advisor"
	"github.com/Surajr36/cricket-auction-simulator/internal/catalog"
	"github.com/Surajr36/cricket-auction-simulator/internal/squad"
)

func f(v float64) *float64 { return &v }

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	players := []catalog.Player{
		{ID: "star", Name: "Star Bat", Role: catalog.RoleBatter, Nationality: catalog.Domestic, BasePrice: 100,
			Stats: catalog.Stats{Matches: 150, BattingAverage: f(45), StrikeRate: f(155)}},
		{ID: "avg", Name: "Avg Bat", Role: catalog.RoleBatter, Nationality: catalog.Domestic, BasePrice: 100,
			Stats: catalog.Stats{Matches: 40, BattingAverage: f(25), StrikeRate: f(115)}},
		{ID: "quick", Name: "Quick", Role: catalog.RoleBowler, Nationality: catalog.Overseas, BasePrice: 80,
			Stats: catalog.Stats{Matches: 120, BowlingAverage: f(19), EconomyRate: f(6.5)}},
	}
	for i := 0; i < 10; i++ {
		players = append(players, catalog.Player{
			ID: "ovr" + string(rune('a'+i)), Role: catalog.RoleAllRounder,
			Nationality: catalog.Overseas, BasePrice: 20,
		})
	}
	for i := 0; i < 8; i++ {
		players = append(players, catalog.Player{
			ID: "bat" + string(rune('a'+i)), Role: catalog.RoleBatter,
			Nationality: catalog.Domestic, BasePrice: 20,
		})
	}
	cat, err := catalog.New(players, []catalog.Team{
		{ID: "t1", Name: "Alpha", ShortName: "ALP", Budget: 1200},
	})
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func player(t *testing.T, cat *catalog.Catalog, id string) *catalog.Player {
	t.Helper()
	p, ok := cat.Player(id)
	if !ok {
		t.Fatalf("player %s missing", id)
	}
	return p
}

func TestShouldConsider(t *testing.T) {
	cat := testCatalog(t)
	cons := squad.DefaultConstraints()

	t.Run("fresh team wants everyone", func(t *testing.T) {
		ts := squad.NewTeamState("t1", 1200)
		if ok, reason := advisor.ShouldConsider(player(t, cat, "star"), ts, cat, cons); !ok {
			t.Errorf("unexpected skip: %s", reason)
		}
	})

	t.Run("no overseas slots", func(t *testing.T) {
		ts := squad.NewTeamState("t1", 1200)
		for _, id := range []string{"ovra", "ovrb", "ovrc", "ovrd", "ovre", "ovrf", "ovrg", "ovrh"} {
			ts = ts.WithPurchase(id, 20)
		}
		ok, reason := advisor.ShouldConsider(player(t, cat, "quick"), ts, cat, cons)
		if ok {
			t.Error("expected skip with overseas slots exhausted")
		}
		if reason == "" {
			t.Error("expected a skip reason")
		}
	})

	t.Run("role at maximum", func(t *testing.T) {
		ts := squad.NewTeamState("t1", 1200)
		for i := 0; i < 8; i++ {
			ts = ts.WithPurchase("bat"+string(rune('a'+i)), 20)
		}
		ok, reason := advisor.ShouldConsider(player(t, cat, "star"), ts, cat, cons)
		if ok {
			t.Error("expected skip with eight batters already bought")
		}
		if !strings.Contains(reason, "batter limit") {
			t.Errorf("reason = %q, want the batter limit named", reason)
		}
	})

	t.Run("base price over budget", func(t *testing.T) {
		ts := squad.NewTeamState("t1", 50)
		if ok, _ := advisor.ShouldConsider(player(t, cat, "star"), ts, cat, cons); ok {
			t.Error("expected skip when base price exceeds budget")
		}
	})
}

func TestRecommend_MonotoneInBattingAverage(t *testing.T) {
	cat := testCatalog(t)
	cons := squad.DefaultConstraints()
	ts := squad.NewTeamState("t1", 1200)

	// Identical players except for batting average: the better batter can
	// never get the lower ceiling.
	base := catalog.Player{ID: "x", Role: catalog.RoleBatter, Nationality: catalog.Domestic, BasePrice: 100}
	prev := -1
	for _, avg := range []float64{20, 31, 41} {
		p := base
		p.Stats = catalog.Stats{BattingAverage: f(avg)}
		got := advisor.Recommend(&p, ts, cat, cons, 0, false).Ceiling
		if got < prev {
			t.Errorf("ceiling dropped from %d to %d as batting average rose to %.0f", prev, got, avg)
		}
		prev = got
	}
}

func TestRecommend_QualityRaisesCeiling(t *testing.T) {
	cat := testCatalog(t)
	cons := squad.DefaultConstraints()
	ts := squad.NewTeamState("t1", 1200)

	star := advisor.Recommend(player(t, cat, "star"), ts, cat, cons, 0, false)
	avg := advisor.Recommend(player(t, cat, "avg"), ts, cat, cons, 0, false)

	if star.Ceiling <= avg.Ceiling {
		t.Errorf("star ceiling %d should exceed average player's %d", star.Ceiling, avg.Ceiling)
	}
	if star.Confidence != advisor.High {
		t.Errorf("star confidence = %q, want high", star.Confidence)
	}
}

func TestRecommend_BudgetReserveCap(t *testing.T) {
	cat := testCatalog(t)
	cons := squad.DefaultConstraints()

	// 18 players still needed: the reserve is 17 assumed base prices (340),
	// so a 400 budget caps the ceiling at 60 no matter how good the player.
	ts := squad.NewTeamState("t1", 400)
	got := advisor.Recommend(player(t, cat, "star"), ts, cat, cons, 0, false)
	if got.Ceiling > 60 {
		t.Errorf("ceiling = %d, want at most 60 with reserve applied", got.Ceiling)
	}

	capped := false
	for _, fac := range got.Factors {
		if fac.Name == "budget reserve" && fac.Impact == advisor.Negative {
			capped = true
		}
	}
	if !capped {
		t.Errorf("expected a negative budget reserve factor in %+v", got.Factors)
	}
}

func TestRecommend_CurrentBidFloor(t *testing.T) {
	cat := testCatalog(t)
	cons := squad.DefaultConstraints()
	ts := squad.NewTeamState("t1", 1200)

	// The standing bid already exceeds the raw estimate; the advice still
	// names a ceiling that would be a legal next bid.
	got := advisor.Recommend(player(t, cat, "avg"), ts, cat, cons, 300, true)
	if got.Ceiling != 305 {
		t.Errorf("ceiling = %d, want 305 (current bid plus increment)", got.Ceiling)
	}
}

func TestRecommend_ConfidenceLowWithStackedNegatives(t *testing.T) {
	cat := testCatalog(t)
	cons := squad.DefaultConstraints()

	// Six all-rounders fills the role maximum, and seven overseas players
	// leave a single slot: two negative factors grade the advice low.
	ts := squad.NewTeamState("t1", 1200)
	for _, id := range []string{"ovra", "ovrb", "ovrc", "ovrd", "ovre", "ovrf", "ovrg"} {
		ts = ts.WithPurchase(id, 20)
	}

	p := catalog.Player{ID: "y", Role: catalog.RoleAllRounder, Nationality: catalog.Overseas, BasePrice: 40}
	got := advisor.Recommend(&p, ts, cat, cons, 0, false)
	if got.Confidence != advisor.Low {
		t.Errorf("confidence = %q, want low (factors: %+v)", got.Confidence, got.Factors)
	}
}

func TestRecommend_FactorsAlwaysPresent(t *testing.T) {
	cat := testCatalog(t)
	cons := squad.DefaultConstraints()
	ts := squad.NewTeamState("t1", 1200)

	got := advisor.Recommend(player(t, cat, "star"), ts, cat, cons, 0, false)
	names := map[string]bool{}
	for _, fac := range got.Factors {
		names[fac.Name] = true
	}
	for _, want := range []string{"quality", "role scarcity", "budget reserve"} {
		if !names[want] {
			t.Errorf("missing %q factor in %+v", want, got.Factors)
		}
	}
}
