package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"

	"github.com/viant/objstore/model"
	"github.com/viant/objstore/service/storage"
	"github.com/viant/objstore/tracing"
)

// Service implements a relational storage engine. Each concrete kind maps to
// one table; all operations run through the current Session, which is
// created by Reload (or lazily after Close) and committed by Save.
type Service struct {
	config  *Config
	db      *sql.DB
	dialect dialect
	session *Session
}

// Ensure Service implements storage.Engine
var _ storage.Engine = (*Service)(nil)

// All returns the entities of kind, or of every concrete kind when kind is
// empty. Kinds without a table yield storage.ErrUnknownKind.
func (s *Service) All(ctx context.Context, kind model.Kind) (map[string]model.Entity, error) {
	session, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if kind != "" {
		return session.Query(ctx, kind)
	}
	result := map[string]model.Entity{}
	for _, candidate := range model.Kinds() {
		entities, err := session.Query(ctx, candidate)
		if err != nil {
			return nil, err
		}
		for key, entity := range entities {
			result[key] = entity
		}
	}
	return result, nil
}

// New adds entity to the current session.
func (s *Service) New(ctx context.Context, entity model.Entity) error {
	if entity == nil {
		return storage.ErrNilEntity
	}
	session, err := s.current(ctx)
	if err != nil {
		return err
	}
	session.Add(entity)
	return nil
}

// Save commits the current session.
func (s *Service) Save(ctx context.Context) (err error) {
	ctx, span := tracing.StartSpan(ctx, "db.save", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	session, err := s.current(ctx)
	if err != nil {
		return err
	}
	span.WithAttributes(map[string]string{"driver": s.dialect.driverName(), "pending": strconv.Itoa(len(session.pending))})
	return session.Commit(ctx)
}

// RollbackSession discards uncommitted work, keeping the engine usable.
func (s *Service) RollbackSession(ctx context.Context) error {
	if s.session == nil {
		return nil
	}
	log.Printf("objstore: rolling back session")
	return s.session.Rollback(ctx)
}

// Delete removes the row of entity and commits; untracked entities are
// ignored.
func (s *Service) Delete(ctx context.Context, entity model.Entity) error {
	if entity == nil {
		return nil
	}
	session, err := s.current(ctx)
	if err != nil {
		return err
	}
	deleted, err := session.Remove(ctx, entity)
	if err != nil || !deleted {
		return err
	}
	if span, ok := tracing.SpanFromContext(ctx); ok {
		span.WithAttributes(map[string]string{"deleted": model.KeyOf(entity)})
	}
	return s.Save(ctx)
}

// DeleteAll removes every row of every table and commits.
func (s *Service) DeleteAll(ctx context.Context) (err error) {
	ctx, span := tracing.StartSpan(ctx, "db.deleteAll", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()

	session, err := s.current(ctx)
	if err != nil {
		return err
	}
	if err = session.Purge(ctx); err != nil {
		return err
	}
	return s.Save(ctx)
}

// Reload creates missing tables and opens a fresh session.
func (s *Service) Reload(ctx context.Context) error {
	_, err := s.Begin(ctx)
	return err
}

// Begin creates missing tables, releases the current session and returns a
// new one, which becomes current.
func (s *Service) Begin(ctx context.Context) (session *Session, err error) {
	ctx, span := tracing.StartSpan(ctx, "db.reload", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"driver": s.dialect.driverName()})

	if err = s.Close(ctx); err != nil {
		return nil, err
	}
	if err = createSchema(ctx, s.db, s.dialect); err != nil {
		return nil, err
	}
	if session, err = openSession(ctx, s.db, s.dialect); err != nil {
		return nil, err
	}
	s.session = session
	return session, nil
}

// Session returns the current session, nil after Close.
func (s *Service) Session() *Session {
	return s.session
}

// Close releases the current session; the next operation opens a new one.
func (s *Service) Close(ctx context.Context) error {
	if s.session == nil {
		return nil
	}
	session := s.session
	s.session = nil
	if err := session.Release(ctx); err != nil {
		return fmt.Errorf("release session: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, kind model.Kind, id string) (model.Entity, error) {
	return storage.Get(ctx, s, kind, id)
}

func (s *Service) Count(ctx context.Context, kind model.Kind) (int, error) {
	return storage.Count(ctx, s, kind)
}

// Shutdown releases the session and closes the connection pool.
func (s *Service) Shutdown(ctx context.Context) error {
	if err := s.Close(ctx); err != nil {
		log.Printf("objstore: %v", err)
	}
	return s.db.Close()
}

func (s *Service) current(ctx context.Context) (*Session, error) {
	if s.session != nil {
		return s.session, nil
	}
	session, err := openSession(ctx, s.db, s.dialect)
	if err != nil {
		return nil, err
	}
	s.session = session
	return session, nil
}

// New connects to the configured database. In the test environment every
// table is dropped before returning. Call Reload before use.
func New(ctx context.Context, config *Config) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	d, err := dialectFor(config.Driver)
	if err != nil {
		return nil, err
	}
	if err = resolveCredentials(ctx, config); err != nil {
		return nil, err
	}
	dsn, err := d.dsn(config)
	if err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", d.driverName(), err)
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s db: %w", d.driverName(), err)
	}
	if config.IsTest() {
		log.Printf("objstore: %s environment, dropping all tables", TestEnv)
		if err = dropSchema(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}
	return &Service{config: config, db: sqlDB, dialect: d}, nil
}
