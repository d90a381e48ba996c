// Package advisor computes a suggested ceiling bid for a player with
// explainable reasoning. The pipeline is deterministic arithmetic, not a
// learned model: each stage multiplies a running estimate and appends one
// factor explaining its impact. Money math runs on decimals so repeated
// multiplication cannot drift.
package advisor

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Surajr36/cricket-auction-simulator/internal/catalog"
	"github.com/Surajr36/cricket-auction-simulator/internal/rules"
	"github.com/Surajr36/cricket-auction-simulator/internal/squad"
)

// AssumedBasePrice is the budget reserved per future mandatory purchase.
const AssumedBasePrice = 20

// Impact classifies how a factor moved the estimate.
type Impact string

// Factor impacts.
const (
	Positive Impact = "positive"
	Negative Impact = "negative"
	Neutral  Impact = "neutral"
)

// Confidence grades how decisive the factors were.
type Confidence string

// Confidence levels.
const (
	Low    Confidence = "low"
	Medium Confidence = "medium"
	High   Confidence = "high"
)

// Factor is one explained adjustment in the pipeline.
type Factor struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
	Impact     Impact  `json:"impact"`
	Reason     string  `json:"reason"`
}

// Advice is the full recommendation: the ceiling bid the team should not
// exceed, a confidence grade and the ordered reasoning behind both.
type Advice struct {
	Ceiling    int        `json:"ceiling"`
	Confidence Confidence `json:"confidence"`
	Factors    []Factor   `json:"factors"`
}

// ShouldConsider is a cheap gate run before the full pipeline. It returns
// false with a skip reason when bidding is pointless: no overseas slot, role
// already at its maximum, or a base price the budget cannot cover.
func ShouldConsider(p *catalog.Player, ts squad.TeamState, cat *catalog.Catalog, cons squad.Constraints) (bool, string) {
	if p.Nationality == catalog.Overseas {
		if used := squad.OverseasCount(ts, cat); used >= cons.MaxOverseas {
			return false, fmt.Sprintf("no overseas slots remaining (%d of %d used)", used, cons.MaxOverseas)
		}
	}
	if limit, ok := cons.RoleLimits[p.Role]; ok {
		if count := squad.RoleCount(ts, cat, p.Role); count >= limit.Max {
			return false, fmt.Sprintf("already at %s limit (%d of %d)", p.Role, count, limit.Max)
		}
	}
	if p.BasePrice > ts.RemainingBudget {
		return false, fmt.Sprintf("base price %d exceeds remaining budget %d", p.BasePrice, ts.RemainingBudget)
	}
	return true, ""
}

// Recommend runs the full pipeline: base price, quality, role scarcity,
// overseas scarcity, budget reserve cap and current-bid floor, in that
// order. currentBid is only meaningful when hasBid is true.
func Recommend(p *catalog.Player, ts squad.TeamState, cat *catalog.Catalog, cons squad.Constraints, currentBid int, hasBid bool) Advice {
	estimate := decimal.NewFromInt(int64(p.BasePrice))
	var factors []Factor

	// Quality: career numbers stack additive bonuses onto one multiplier.
	quality, highlights := qualityMultiplier(p.Stats)
	estimate = estimate.Mul(quality)
	qf := Factor{
		Name:       "quality",
		Multiplier: quality.InexactFloat64(),
		Impact:     Neutral,
		Reason:     "no standout career numbers",
	}
	if quality.GreaterThan(decimal.NewFromInt(1)) {
		qf.Impact = Positive
		qf.Reason = fmt.Sprintf("%d strong career indicators", highlights)
	}
	factors = append(factors, qf)

	// Role scarcity: pay up for unfilled minimums, discount filled slots.
	roleMult, roleFactor := roleScarcity(p, ts, cat, cons)
	estimate = estimate.Mul(roleMult)
	factors = append(factors, roleFactor)

	// Overseas slots: conserve when few remain, veto when none do.
	if p.Nationality == catalog.Overseas {
		overseasMult, overseasFactor := overseasScarcity(ts, cat, cons)
		estimate = estimate.Mul(overseasMult)
		factors = append(factors, overseasFactor)
	}

	// Budget cap: reserve funds for the remaining mandatory purchases.
	estimate, capFactor := applyBudgetCap(estimate, ts, cons)
	factors = append(factors, capFactor)

	// Current-bid floor: a useful ceiling must outbid the standing bid.
	if hasBid && estimate.LessThanOrEqual(decimal.NewFromInt(int64(currentBid))) {
		floor := currentBid + rules.MinIncrement
		estimate = decimal.NewFromInt(int64(floor))
		factors = append(factors, Factor{
			Name:       "current bid floor",
			Multiplier: 1,
			Impact:     Neutral,
			Reason:     fmt.Sprintf("raised to %d to stay above the current bid of %d", floor, currentBid),
		})
	}

	return Advice{
		Ceiling:    int(estimate.Round(0).IntPart()),
		Confidence: classify(factors),
		Factors:    factors,
	}
}

// qualityMultiplier sums the applicable stat bonuses onto a 1.0 baseline and
// reports how many indicators fired.
func qualityMultiplier(s catalog.Stats) (decimal.Decimal, int) {
	mult := decimal.NewFromInt(1)
	highlights := 0

	add := func(bonus float64) {
		mult = mult.Add(decimal.NewFromFloat(bonus))
		highlights++
	}

	switch {
	case s.Matches > 100:
		add(0.3)
	case s.Matches > 50:
		add(0.15)
	}
	if s.BattingAverage != nil {
		switch {
		case *s.BattingAverage > 40:
			add(0.4)
		case *s.BattingAverage > 30:
			add(0.2)
		}
	}
	if s.StrikeRate != nil {
		switch {
		case *s.StrikeRate > 150:
			add(0.3)
		case *s.StrikeRate > 130:
			add(0.15)
		}
	}
	if s.BowlingAverage != nil {
		switch {
		case *s.BowlingAverage < 20:
			add(0.4)
		case *s.BowlingAverage < 25:
			add(0.2)
		}
	}
	if s.EconomyRate != nil {
		switch {
		case *s.EconomyRate < 7:
			add(0.3)
		case *s.EconomyRate < 8:
			add(0.15)
		}
	}

	return mult, highlights
}

func roleScarcity(p *catalog.Player, ts squad.TeamState, cat *catalog.Catalog, cons squad.Constraints) (decimal.Decimal, Factor) {
	limit, ok := cons.RoleLimits[p.Role]
	if !ok {
		return decimal.NewFromInt(1), Factor{
			Name:       "role scarcity",
			Multiplier: 1,
			Impact:     Neutral,
			Reason:     fmt.Sprintf("no limits configured for %ss", p.Role),
		}
	}

	count := squad.RoleCount(ts, cat, p.Role)
	switch {
	case count < limit.Min:
		shortfall := limit.Min - count
		mult := decimal.NewFromInt(1).Add(decimal.NewFromFloat(0.2).Mul(decimal.NewFromInt(int64(shortfall))))
		return mult, Factor{
			Name:       "role scarcity",
			Multiplier: mult.InexactFloat64(),
			Impact:     Positive,
			Reason:     fmt.Sprintf("squad needs %d more %ss (%d of %d minimum)", shortfall, p.Role, count, limit.Min),
		}
	case count >= limit.Max:
		return decimal.NewFromFloat(0.5), Factor{
			Name:       "role scarcity",
			Multiplier: 0.5,
			Impact:     Negative,
			Reason:     fmt.Sprintf("%s slots already filled (%d of %d)", p.Role, count, limit.Max),
		}
	default:
		return decimal.NewFromInt(1), Factor{
			Name:       "role scarcity",
			Multiplier: 1,
			Impact:     Neutral,
			Reason:     fmt.Sprintf("%s need already met (%d of %d minimum)", p.Role, count, limit.Min),
		}
	}
}

func overseasScarcity(ts squad.TeamState, cat *catalog.Catalog, cons squad.Constraints) (decimal.Decimal, Factor) {
	slotsLeft := cons.MaxOverseas - squad.OverseasCount(ts, cat)
	switch {
	case slotsLeft <= 0:
		return decimal.Zero, Factor{
			Name:       "overseas slots",
			Multiplier: 0,
			Impact:     Negative,
			Reason:     "no overseas slots remain",
		}
	case slotsLeft <= 2:
		return decimal.NewFromFloat(0.8), Factor{
			Name:       "overseas slots",
			Multiplier: 0.8,
			Impact:     Negative,
			Reason:     fmt.Sprintf("only %d overseas slots left", slotsLeft),
		}
	default:
		return decimal.NewFromInt(1), Factor{
			Name:       "overseas slots",
			Multiplier: 1,
			Impact:     Neutral,
			Reason:     fmt.Sprintf("%d overseas slots available", slotsLeft),
		}
	}
}

// applyBudgetCap reserves AssumedBasePrice for every future mandatory
// purchase beyond this one and caps the estimate at what is left, floored
// at a single assumed base price.
func applyBudgetCap(estimate decimal.Decimal, ts squad.TeamState, cons squad.Constraints) (decimal.Decimal, Factor) {
	playersNeeded := cons.MinSquadSize - ts.Size()
	if playersNeeded < 0 {
		playersNeeded = 0
	}
	reserve := (playersNeeded - 1) * AssumedBasePrice
	if reserve < 0 {
		reserve = 0
	}

	ceiling := ts.RemainingBudget - reserve
	if ceiling < AssumedBasePrice {
		ceiling = AssumedBasePrice
	}

	capDec := decimal.NewFromInt(int64(ceiling))
	if estimate.GreaterThan(capDec) {
		return capDec, Factor{
			Name:       "budget reserve",
			Multiplier: 1,
			Impact:     Negative,
			Reason: fmt.Sprintf("capped at %d to keep %d in reserve for %d more required players",
				ceiling, reserve, playersNeeded),
		}
	}
	return estimate, Factor{
		Name:       "budget reserve",
		Multiplier: 1,
		Impact:     Neutral,
		Reason:     fmt.Sprintf("budget comfortably covers the estimate (%d available)", ts.RemainingBudget),
	}
}

// classify grades confidence: two or more negative factors mean low, two or
// more positive with none negative mean high, anything else medium.
func classify(factors []Factor) Confidence {
	var pos, neg int
	for _, f := range factors {
		switch f.Impact {
		case Positive:
			pos++
		case Negative:
			neg++
		}
	}
	switch {
	case neg >= 2:
		return Low
	case pos >= 2 && neg == 0:
		return High
	default:
		return Medium
	}
}
