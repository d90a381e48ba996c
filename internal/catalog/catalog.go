// Package catalog holds the immutable player and team records an auction
// runs against. Records are loaded once at startup and never mutated; all
// other packages reference them by id.
package catalog

import (
	"errors"
	"fmt"
)

// Role classifies a player's primary skill.
type Role string

// Valid player roles.
const (
	RoleBatter       Role = "batter"
	RoleBowler       Role = "bowler"
	RoleAllRounder   Role = "all-rounder"
	RoleWicketKeeper Role = "wicket-keeper"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleBatter, RoleBowler, RoleAllRounder, RoleWicketKeeper}

// Nationality distinguishes domestic from overseas players.
type Nationality string

// Valid nationalities.
const (
	Domestic Nationality = "domestic"
	Overseas Nationality = "overseas"
)

// Stats holds a player's career numbers. Averages and rates are pointers
// because a bowler has no batting average and vice versa.
type Stats struct {
	Matches        int      `json:"matches"`
	BattingAverage *float64 `json:"battingAverage"`
	BowlingAverage *float64 `json:"bowlingAverage"`
	StrikeRate     *float64 `json:"strikeRate"`
	EconomyRate    *float64 `json:"economyRate"`
}

// Player is a catalog entry. BasePrice is in lakhs (currency-agnostic units).
type Player struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Role        Role        `json:"role"`
	Nationality Nationality `json:"nationality"`
	BasePrice   int         `json:"basePrice"`
	Stats       Stats       `json:"stats"`
}

// Team is a static franchise record.
type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ShortName    string `json:"shortName"`
	Budget       int    `json:"budget"`
	PrimaryColor string `json:"primaryColor"`
}

// Errors returned while building a catalog.
var (
	ErrUnknownRole        = errors.New("unknown player role")
	ErrUnknownNationality = errors.New("unknown nationality")
	ErrDuplicateID        = errors.New("duplicate id")
)

// Catalog provides ordered iteration and O(1) lookup over players and teams.
type Catalog struct {
	players []Player
	teams   []Team

	playerByID map[string]*Player
	teamByID   map[string]*Team
}

// New validates the given records and builds a Catalog.
func New(players []Player, teams []Team) (*Catalog, error) {
	c := &Catalog{
		players:    players,
		teams:      teams,
		playerByID: make(map[string]*Player, len(players)),
		teamByID:   make(map[string]*Team, len(teams)),
	}

	for i := range players {
		p := &c.players[i]
		if p.ID == "" {
			return nil, fmt.Errorf("player %d: id is required", i)
		}
		if _, exists := c.playerByID[p.ID]; exists {
			return nil, fmt.Errorf("%w: player %s", ErrDuplicateID, p.ID)
		}
		switch p.Role {
		case RoleBatter, RoleBowler, RoleAllRounder, RoleWicketKeeper:
		default:
			return nil, fmt.Errorf("%w: %q (player %s)", ErrUnknownRole, p.Role, p.ID)
		}
		switch p.Nationality {
		case Domestic, Overseas:
		default:
			return nil, fmt.Errorf("%w: %q (player %s)", ErrUnknownNationality, p.Nationality, p.ID)
		}
		if p.BasePrice <= 0 {
			return nil, fmt.Errorf("player %s: base price must be positive, got %d", p.ID, p.BasePrice)
		}
		c.playerByID[p.ID] = p
	}

	for i := range teams {
		t := &c.teams[i]
		if t.ID == "" {
			return nil, fmt.Errorf("team %d: id is required", i)
		}
		if _, exists := c.teamByID[t.ID]; exists {
			return nil, fmt.Errorf("%w: team %s", ErrDuplicateID, t.ID)
		}
		if t.Budget <= 0 {
			return nil, fmt.Errorf("team %s: budget must be positive, got %d", t.ID, t.Budget)
		}
		c.teamByID[t.ID] = t
	}

	return c, nil
}

// Player returns the player with the given id.
func (c *Catalog) Player(id string) (*Player, bool) {
	p, ok := c.playerByID[id]
	return p, ok
}

// Team returns the team with the given id.
func (c *Catalog) Team(id string) (*Team, bool) {
	t, ok := c.teamByID[id]
	return t, ok
}

// Players returns all players in load order. Callers must not mutate.
func (c *Catalog) Players() []Player { return c.players }

// Teams returns all teams in load order. Callers must not mutate.
func (c *Catalog) Teams() []Team { return c.teams }
