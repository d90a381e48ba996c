package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Surajr36/cricket-auction-simulator/internal/squad"
)

// Config represents the application configuration.
type Config struct {
	Auction    AuctionConfig     `yaml:"auction"`
	Squad      squad.Constraints `yaml:"squad"`
	Catalog    CatalogConfig     `yaml:"catalog"`
	Database   DatabaseConfig    `yaml:"database"`
	Server     ServerConfig      `yaml:"server"`
	Telemetry  TelemetryConfig   `yaml:"telemetry"`
	Simulation SimulationConfig  `yaml:"simulation"`
}

// AuctionConfig holds timing settings for the countdown driver.
type AuctionConfig struct {
	// TickInterval is the wall-clock duration of one timer unit.
	TickInterval time.Duration `yaml:"tick_interval"`
}

// CatalogConfig points at the seed data files.
type CatalogConfig struct {
	PlayersFile string `yaml:"players_file"`
	TeamsFile   string `yaml:"teams_file"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	Driver   string `yaml:"driver"` // "sqlx" or "memory"
}

// DSN returns the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name"`
	ServiceVersion string `yaml:"service_version"`
	OTLPEndpoint   string `yaml:"otlp_endpoint"`
	Insecure       bool   `yaml:"insecure"`
}

// SimulationConfig controls the autopilot that runs a full auction without
// an interactive caller.
type SimulationConfig struct {
	Autopilot bool `yaml:"autopilot"`
}

// Load reads a YAML configuration file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{
		Auction: AuctionConfig{
			TickInterval: time.Second,
		},
		Squad: squad.DefaultConstraints(),
		Catalog: CatalogConfig{
			PlayersFile: "data/players.json",
			TeamsFile:   "data/teams.json",
		},
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
			Driver:  "memory",
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "auctionsim",
			ServiceVersion: "0.1.0",
		},
		Simulation: SimulationConfig{
			Autopilot: true,
		},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlx", "memory":
		// valid
	default:
		return fmt.Errorf("unsupported database driver %q: must be \"sqlx\" or \"memory\"", c.Database.Driver)
	}
	if c.Auction.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.Auction.TickInterval)
	}
	if err := c.Squad.Validate(); err != nil {
		return fmt.Errorf("squad constraints: %w", err)
	}
	return nil
}
