// Package rules is the constraint validation engine. Checks accumulate every
// violation instead of failing fast so a caller can surface all blocking
// reasons for a bid at once. Violations are plain values, not errors: an
// illegal bid is an expected business outcome, not a failure.
package rules

import (
	"fmt"

	"github.com/Surajr36/cricket-auction-simulator/internal/catalog"
	"github.com/Surajr36/cricket-auction-simulator/internal/squad"
)

// MinIncrement is the minimum amount a new bid must exceed the current bid by.
const MinIncrement = 5

// Kind identifies a violation category for machine consumption.
type Kind string

// Violation kinds.
const (
	KindBidTooLow     Kind = "bid_too_low"
	KindBudget        Kind = "budget_exceeded"
	KindSquadFull     Kind = "squad_full"
	KindRoleLimit     Kind = "role_limit"
	KindOverseasLimit Kind = "overseas_limit"
	KindSquadBelowMin Kind = "squad_below_min"
	KindRoleBelowMin  Kind = "role_below_min"
)

// Violation is one broken rule with the numbers needed to render a precise
// message: Current is the value the team is at, Limit is the bound it ran
// into. For budget violations Current is the remaining budget and Limit the
// bid amount.
type Violation struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Current int    `json:"current"`
	Limit   int    `json:"limit"`
}

// Shortfall returns how far Current falls below Limit.
func (v Violation) Shortfall() int { return v.Limit - v.Current }

// Result aggregates every violation found by a validation pass.
type Result struct {
	Violations []Violation `json:"violations"`
}

// Valid reports whether no rules were broken.
func (r Result) Valid() bool { return len(r.Violations) == 0 }

// Messages returns the human-readable text of every violation in order.
func (r Result) Messages() []string {
	msgs := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		msgs[i] = v.Message
	}
	return msgs
}

// MinimumBid returns the lowest legal bid for a player: the base price when
// no bid exists, otherwise the current bid plus the minimum increment.
func MinimumBid(basePrice int, currentBid int, hasBid bool) int {
	if !hasBid {
		return basePrice
	}
	return currentBid + MinIncrement
}

// ValidateAcquisition checks whether the team could legally acquire the
// player at the given price. All four checks run unconditionally and their
// violations accumulate in a fixed order: budget, squad size, role limit,
// overseas limit.
func ValidateAcquisition(ts squad.TeamState, p *catalog.Player, bidAmount int, cat *catalog.Catalog, cons squad.Constraints) Result {
	var res Result

	if bidAmount > ts.RemainingBudget {
		res.Violations = append(res.Violations, Violation{
			Kind:    KindBudget,
			Current: ts.RemainingBudget,
			Limit:   bidAmount,
			Message: fmt.Sprintf("bid of %d exceeds remaining budget %d (short %d)",
				bidAmount, ts.RemainingBudget, bidAmount-ts.RemainingBudget),
		})
	}

	if size := ts.Size(); size >= cons.MaxSquadSize {
		res.Violations = append(res.Violations, Violation{
			Kind:    KindSquadFull,
			Current: size,
			Limit:   cons.MaxSquadSize,
			Message: fmt.Sprintf("squad is full: %d of %d players", size, cons.MaxSquadSize),
		})
	}

	if limit, ok := cons.RoleLimits[p.Role]; ok {
		if count := squad.RoleCount(ts, cat, p.Role); count >= limit.Max {
			res.Violations = append(res.Violations, Violation{
				Kind:    KindRoleLimit,
				Current: count,
				Limit:   limit.Max,
				Message: fmt.Sprintf("already at %s limit: %d of %d", p.Role, count, limit.Max),
			})
		}
	}

	if p.Nationality == catalog.Overseas {
		if count := squad.OverseasCount(ts, cat); count >= cons.MaxOverseas {
			res.Violations = append(res.Violations, Violation{
				Kind:    KindOverseasLimit,
				Current: count,
				Limit:   cons.MaxOverseas,
				Message: fmt.Sprintf("already at overseas limit: %d of %d", count, cons.MaxOverseas),
			})
		}
	}

	return res
}

// ValidateBid enforces the minimum-valid-bid rule and then runs the full
// acquisition check. This is the entry point a caller must run immediately
// before dispatching a bid to the state machine.
func ValidateBid(ts squad.TeamState, p *catalog.Player, amount, currentBid int, hasBid bool, cat *catalog.Catalog, cons squad.Constraints) Result {
	var res Result

	if min := MinimumBid(p.BasePrice, currentBid, hasBid); amount < min {
		res.Violations = append(res.Violations, Violation{
			Kind:    KindBidTooLow,
			Current: amount,
			Limit:   min,
			Message: fmt.Sprintf("bid of %d is below minimum valid bid %d", amount, min),
		})
	}

	acq := ValidateAcquisition(ts, p, amount, cat, cons)
	res.Violations = append(res.Violations, acq.Violations...)
	return res
}

// ValidateFinalSquad flags squads that finished the auction below the
// minimum size or below any role's minimum. The result is advisory: nothing
// can force a team to buy more players after the fact.
func ValidateFinalSquad(ts squad.TeamState, cat *catalog.Catalog, cons squad.Constraints) Result {
	var res Result

	if size := ts.Size(); size < cons.MinSquadSize {
		res.Violations = append(res.Violations, Violation{
			Kind:    KindSquadBelowMin,
			Current: size,
			Limit:   cons.MinSquadSize,
			Message: fmt.Sprintf("squad has %d players, minimum is %d", size, cons.MinSquadSize),
		})
	}

	counts := squad.RoleCounts(ts, cat)
	for _, role := range catalog.Roles {
		limit, ok := cons.RoleLimits[role]
		if !ok || limit.Min == 0 {
			continue
		}
		if counts[role] < limit.Min {
			res.Violations = append(res.Violations, Violation{
				Kind:    KindRoleBelowMin,
				Current: counts[role],
				Limit:   limit.Min,
				Message: fmt.Sprintf("squad has %d %ss, minimum is %d", counts[role], role, limit.Min),
			})
		}
	}

	return res
}
