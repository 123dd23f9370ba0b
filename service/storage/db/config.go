package db

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// TestEnv is the HBNB_ENV value that drops every table at construction.
const TestEnv = "test"

// Config holds relational connection settings.
type Config struct {
	Driver     string `env:"HBNB_DB_DRIVER" yaml:"driver" json:"driver"`
	User       string `env:"HBNB_MYSQL_USER" yaml:"user" json:"user"`
	Password   string `env:"HBNB_MYSQL_PWD" yaml:"password" json:"-"`
	Host       string `env:"HBNB_MYSQL_HOST" yaml:"host" json:"host"`
	Database   string `env:"HBNB_MYSQL_DB" yaml:"database" json:"database"`
	SecretURL  string `env:"HBNB_MYSQL_SECRET" yaml:"secretURL" json:"secretURL,omitempty"`
	SecretKey  string `env:"HBNB_MYSQL_SECRET_KEY" yaml:"secretKey" json:"secretKey,omitempty"`
	SQLitePath string `env:"HBNB_SQLITE_PATH" yaml:"sqlitePath" json:"sqlitePath,omitempty"`
	Env        string `env:"HBNB_ENV" yaml:"env" json:"env,omitempty"`
}

// DefaultConfig returns a mysql configuration with no credentials.
func DefaultConfig() *Config {
	return &Config{Driver: MySQL}
}

// ConfigFromEnv returns DefaultConfig overlaid with environment variables.
func ConfigFromEnv() (*Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// IsTest reports whether construction should reset the schema.
func (c *Config) IsTest() bool {
	return c.Env == TestEnv
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("db config is required")
	}
	switch c.Driver {
	case MySQL:
		if c.Database == "" {
			return fmt.Errorf("HBNB_MYSQL_DB is required")
		}
	case SQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("HBNB_SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("unsupported db driver: %q", c.Driver)
	}
	return nil
}
