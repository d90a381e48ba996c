package squad

import (
	"fmt"

	"github.com/Surajr36/cricket-auction-simulator/internal/catalog"
)

// RoleLimit bounds how many players of one role a squad may carry.
type RoleLimit struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Constraints is the read-only squad composition rule set for an auction.
// It is passed explicitly through every validation and recommendation call
// so alternate rule sets can be exercised in tests.
type Constraints struct {
	MinSquadSize int                        `yaml:"min_squad_size"`
	MaxSquadSize int                        `yaml:"max_squad_size"`
	MaxOverseas  int                        `yaml:"max_overseas"`
	RoleLimits   map[catalog.Role]RoleLimit `yaml:"role_limits"`
}

// DefaultConstraints returns the standard franchise rule set.
func DefaultConstraints() Constraints {
	return Constraints{
		MinSquadSize: 18,
		MaxSquadSize: 25,
		MaxOverseas:  8,
		RoleLimits: map[catalog.Role]RoleLimit{
			catalog.RoleBatter:       {Min: 5, Max: 8},
			catalog.RoleBowler:       {Min: 5, Max: 8},
			catalog.RoleAllRounder:   {Min: 3, Max: 6},
			catalog.RoleWicketKeeper: {Min: 2, Max: 3},
		},
	}
}

// Validate checks that the constraint set is internally consistent.
func (c Constraints) Validate() error {
	if c.MinSquadSize <= 0 || c.MaxSquadSize <= 0 {
		return fmt.Errorf("squad size bounds must be positive, got min=%d max=%d", c.MinSquadSize, c.MaxSquadSize)
	}
	if c.MinSquadSize > c.MaxSquadSize {
		return fmt.Errorf("min squad size %d exceeds max %d", c.MinSquadSize, c.MaxSquadSize)
	}
	if c.MaxOverseas < 0 {
		return fmt.Errorf("max overseas must be non-negative, got %d", c.MaxOverseas)
	}
	minTotal := 0
	for role, limit := range c.RoleLimits {
		if limit.Min < 0 || limit.Max < limit.Min {
			return fmt.Errorf("role %s: invalid limit min=%d max=%d", role, limit.Min, limit.Max)
		}
		minTotal += limit.Min
	}
	if minTotal > c.MaxSquadSize {
		return fmt.Errorf("role minimums total %d exceed max squad size %d", minTotal, c.MaxSquadSize)
	}
	return nil
}
