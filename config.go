package objstore

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/viant/objstore/service/meta"
	"github.com/viant/objstore/service/storage/db"
	"github.com/viant/objstore/service/storage/file"
)

const (
	// StorageFile selects the file engine.
	StorageFile = "file"
	// StorageDB selects the relational engine.
	StorageDB = "db"
)

// Config is a serialisable representation of the storage configuration. It
// can be populated from YAML and environment variables; the latter win.
type Config struct {
	Type      string     `env:"HBNB_TYPE_STORAGE" json:"type" yaml:"type"`
	File      FileConfig `json:"file" yaml:"file"`
	DB        db.Config  `json:"db" yaml:"db"`
	TraceFile string     `env:"HBNB_TRACE_FILE" json:"traceFile,omitempty" yaml:"traceFile,omitempty"`
}

// FileConfig configures the file engine.
type FileConfig struct {
	URL string `env:"HBNB_FILE_PATH" json:"url" yaml:"url"`
}

// DefaultConfig returns the file engine configuration with its default
// backing document.
func DefaultConfig() *Config {
	return &Config{
		Type: StorageFile,
		File: FileConfig{URL: file.DefaultURL},
		DB:   *db.DefaultConfig(),
	}
}

// LoadConfig returns DefaultConfig overlaid with the YAML document at URL
// (skipped when URL is empty or missing) and then with environment variables.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	cfg := DefaultConfig()
	if URL != "" {
		if _, err := meta.New(nil).Load(ctx, URL, cfg); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is required")
	}
	switch c.Type {
	case StorageFile:
		return nil
	case StorageDB:
		return c.DB.Validate()
	}
	return fmt.Errorf("unsupported storage type: %q", c.Type)
}
