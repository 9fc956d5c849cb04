// Package config loads the aura server configuration.
package config

import (
	"fmt"
	"os"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// PathEnv overrides the default config path.
const PathEnv = "AURACORE_CONFIG"

// DefaultPath is used when neither a flag nor PathEnv names a file.
const DefaultPath = "config/auraserver.yaml"

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Enabled switches the aura catalog source from the file to the database.
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// ResolvePath picks the config path: explicit flag value, then PathEnv, then DefaultPath.
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// Load loads server config from a YAML file and validates it.
// If the file doesn't exist, returns defaults.
func Load(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, oops.Code("CONFIG_INVALID").With("path", path).Wrapf(err, "reading config")
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, oops.Code("CONFIG_INVALID").With("path", path).Wrapf(err, "parsing config")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, oops.With("path", path).Wrap(err)
	}
	return cfg, nil
}
