package objstore

import (
	"context"
	"fmt"
	"log"

	"github.com/viant/objstore/service/storage"
	"github.com/viant/objstore/service/storage/db"
	"github.com/viant/objstore/service/storage/file"
	"github.com/viant/objstore/tracing"
)

// Version is reported as the tracing service version.
const Version = "0.1.0"

// Service owns the configured storage engine.
type Service struct {
	config    *Config
	configURL string
	engine    storage.Engine
}

// Storage returns the engine
func (s *Service) Storage() storage.Engine {
	return s.engine
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Shutdown closes the engine and releases its resources.
func (s *Service) Shutdown(ctx context.Context) error {
	if relational, ok := s.engine.(*db.Service); ok {
		return relational.Shutdown(ctx)
	}
	return s.engine.Close(ctx)
}

func (s *Service) init(ctx context.Context) error {
	if s.config == nil {
		config, err := LoadConfig(ctx, s.configURL)
		if err != nil {
			return err
		}
		s.config = config
	}
	if s.config.TraceFile != "" {
		if err := tracing.Init("objstore", Version, s.config.TraceFile); err != nil {
			log.Printf("objstore: tracing disabled: %v", err)
		}
	}
	if s.engine == nil {
		if err := s.config.Validate(); err != nil {
			return err
		}
		engine, err := s.newEngine(ctx)
		if err != nil {
			return err
		}
		s.engine = engine
	}
	if err := s.engine.Reload(ctx); err != nil {
		if relational, ok := s.engine.(*db.Service); ok {
			_ = relational.Shutdown(ctx)
		}
		return err
	}
	return nil
}

func (s *Service) newEngine(ctx context.Context) (storage.Engine, error) {
	switch s.config.Type {
	case StorageDB:
		engine, err := db.New(ctx, &s.config.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect storage: %w", err)
		}
		return engine, nil
	default:
		return file.New(file.WithURL(s.config.File.URL)), nil
	}
}

// New creates a Service: it resolves the configuration, constructs the
// selected engine and reloads it.
func New(ctx context.Context, options ...Option) (*Service, error) {
	ret := &Service{}
	for _, option := range options {
		option(ret)
	}
	if err := ret.init(ctx); err != nil {
		return nil, err
	}
	return ret, nil
}
