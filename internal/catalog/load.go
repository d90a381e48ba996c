package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads player and team records from the given JSON files and builds
// a validated Catalog.
func Load(playersPath, teamsPath string) (*Catalog, error) {
	var players []Player
	if err := readJSON(playersPath, &players); err != nil {
		return nil, fmt.Errorf("loading players: %w", err)
	}

	var teams []Team
	if err := readJSON(teamsPath, &teams); err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}

	c, err := New(players, teams)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	return c, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
