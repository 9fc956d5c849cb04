package config

import (
	"time"

	"github.com/samber/oops"

	"github.com/udisondev/auracore/internal/model"
)

// Server holds all configuration for the aura server.
type Server struct {
	// Logging
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // json or text

	// Simulation
	TickInterval     time.Duration `yaml:"tick_interval"`
	StrictInvariants bool          `yaml:"strict_invariants"` // panic on invariant violations

	// Observability; empty disables the HTTP server
	MetricsAddr string `yaml:"metrics_addr"`

	// Aura catalog file, used unless Database.Enabled
	AurasFile string `yaml:"auras_file"`

	Database DatabaseConfig `yaml:"database"`

	DefaultFaction int32                `yaml:"default_faction"`
	Factions       []model.FactionEntry `yaml:"factions"`

	Movement model.MovementDefinition `yaml:"movement"`
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		LogLevel:     "info",
		LogFormat:    "json",
		TickInterval: 100 * time.Millisecond,
		MetricsAddr:  ":9090",
		AurasFile:    "config/auras.yaml",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "auracore",
			Password: "auracore",
			DBName:   "auracore",
			SSLMode:  "disable",
		},
		DefaultFaction: 0,
		Factions: []model.FactionEntry{
			{ID: 0, Name: "neutral"},
			{ID: 1, Name: "alliance", Hostile: []int32{2}},
			{ID: 2, Name: "horde", Hostile: []int32{1}},
		},
		Movement: model.DefaultMovement(),
	}
}

// Validate checks value ranges and the faction table.
func (s Server) Validate() error {
	errb := oops.Code("CONFIG_INVALID")

	if s.TickInterval <= 0 {
		return errb.With("tick_interval", s.TickInterval).Errorf("tick interval must be positive")
	}
	switch s.LogFormat {
	case "json", "text":
	default:
		return errb.With("log_format", s.LogFormat).Errorf("log format must be json or text")
	}
	if !s.Database.Enabled && s.AurasFile == "" {
		return errb.Errorf("auras_file is required when the database is disabled")
	}
	if s.Database.Enabled && (s.Database.Host == "" || s.Database.Port <= 0 || s.Database.DBName == "") {
		return errb.With("host", s.Database.Host, "port", s.Database.Port).Errorf("database host, port and dbname are required")
	}
	for _, t := range model.MoveTypes {
		if s.Movement.BaseSpeed(t) < 0 {
			return errb.With("move_type", t.String()).Errorf("base speed must not be negative")
		}
	}
	if _, err := s.FactionTable(); err != nil {
		return errb.Wrap(err)
	}
	return nil
}

// FactionTable builds the hostility table from Factions.
func (s Server) FactionTable() (*model.FactionTable, error) {
	return model.NewFactionTable(s.DefaultFaction, s.Factions)
}
