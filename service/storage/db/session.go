package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/objstore/model"
	"github.com/viant/objstore/service/storage"
)

// Session is a unit of work bound to one connection and one open
// transaction. Added entities stay pending until the next flush; every query
// flushes first so pending entities are visible inside the session. Loaded
// and added entities are tracked in an identity map, so one row maps to one
// instance for the session lifetime.
//
// A failed flush or commit marks the session failed: every later call
// returns storage.ErrSessionFailed until Rollback.
type Session struct {
	conn     *sql.Conn
	tx       *sql.Tx
	dialect  dialect
	pending  []model.Entity
	identity map[string]model.Entity
	failure  error
}

func openSession(ctx context.Context, db *sql.DB, d dialect) (*Session, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	ret := &Session{conn: conn, dialect: d, identity: map[string]model.Entity{}}
	if err = ret.begin(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return ret, nil
}

// begin opens the next transaction. It outlives the call that opens it, so
// cancelling the caller context must not roll it back.
func (s *Session) begin(ctx context.Context) error {
	tx, err := s.conn.BeginTx(context.WithoutCancel(ctx), nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.tx = tx
	return nil
}

// Add tracks entity as pending; re-adding an entity replaces its pending state.
func (s *Session) Add(entity model.Entity) {
	key := model.KeyOf(entity)
	s.identity[key] = entity
	for i, candidate := range s.pending {
		if model.KeyOf(candidate) == key {
			s.pending[i] = entity
			return
		}
	}
	s.pending = append(s.pending, entity)
}

// Flush writes pending entities inside the open transaction.
func (s *Session) Flush(ctx context.Context) error {
	if s.failure != nil {
		return s.failed()
	}
	order := map[model.Kind]int{}
	for i, kind := range model.Kinds() {
		order[kind] = i
	}
	sort.SliceStable(s.pending, func(i, j int) bool {
		return order[s.pending[i].Kind()] < order[s.pending[j].Kind()]
	})
	for len(s.pending) > 0 {
		if err := s.write(ctx, s.pending[0]); err != nil {
			return s.fail(err)
		}
		s.pending = s.pending[1:]
	}
	return nil
}

// Query returns the entities of kind visible in the session.
func (s *Session) Query(ctx context.Context, kind model.Kind) (map[string]model.Entity, error) {
	schema, err := tableOf(kind)
	if err != nil {
		return nil, err
	}
	if err = s.Flush(ctx); err != nil {
		return nil, err
	}
	rows, err := s.tx.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %s", joinColumns(schema), schema.Table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", schema.Table, err)
	}
	result := map[string]model.Entity{}
	loaded := map[string]model.Entity{}
	for rows.Next() {
		entity, _ := model.Construct(kind)
		if err = rows.Scan(scanTargets(schema, entity)...); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan %s: %w", schema.Table, err)
		}
		key := model.KeyOf(entity)
		if tracked, ok := s.identity[key]; ok {
			result[key] = tracked
			continue
		}
		loaded[entity.Identity()] = entity
		result[key] = entity
	}
	if err = rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate %s: %w", schema.Table, err)
	}
	_ = rows.Close()
	if schema.Association != nil && len(loaded) > 0 {
		if err = s.loadLinks(ctx, schema.Association, loaded); err != nil {
			return nil, err
		}
	}
	for key, entity := range result {
		s.identity[key] = entity
	}
	return result, nil
}

// Remove deletes the row of entity; it reports whether a row was deleted.
func (s *Session) Remove(ctx context.Context, entity model.Entity) (bool, error) {
	schema, err := tableOf(entity.Kind())
	if err != nil {
		return false, nil
	}
	if err = s.Flush(ctx); err != nil {
		return false, err
	}
	result, err := s.tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", schema.Table), entity.Identity())
	if err != nil {
		return false, s.fail(fmt.Errorf("delete %s: %w", model.KeyOf(entity), err))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, s.fail(err)
	}
	delete(s.identity, model.KeyOf(entity))
	return affected > 0, nil
}

// Purge deletes every row of every table.
func (s *Session) Purge(ctx context.Context) error {
	if err := s.Flush(ctx); err != nil {
		return err
	}
	for _, table := range tables() {
		if _, err := s.tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return s.fail(fmt.Errorf("purge %s: %w", table, err))
		}
	}
	s.identity = map[string]model.Entity{}
	return nil
}

// Commit flushes pending entities, commits and opens the next transaction.
func (s *Session) Commit(ctx context.Context) error {
	if err := s.Flush(ctx); err != nil {
		return err
	}
	if err := s.tx.Commit(); err != nil {
		return s.fail(fmt.Errorf("commit: %w", err))
	}
	if err := s.begin(ctx); err != nil {
		return s.fail(err)
	}
	return nil
}

// Rollback discards pending and uncommitted work and opens the next
// transaction, clearing a failed state.
func (s *Session) Rollback(ctx context.Context) error {
	s.abort(ctx)
	s.pending = nil
	s.identity = map[string]model.Entity{}
	s.failure = nil
	return s.begin(ctx)
}

// Release rolls back uncommitted work and returns the connection to the pool.
func (s *Session) Release(ctx context.Context) error {
	s.abort(ctx)
	s.pending = nil
	s.identity = nil
	return s.conn.Close()
}

// Failed reports whether the session requires a rollback.
func (s *Session) Failed() bool {
	return s.failure != nil
}

func (s *Session) abort(ctx context.Context) {
	if s.tx != nil {
		if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.failure = err
		}
		s.tx = nil
	}
	// a failed COMMIT can leave the transaction open on the connection
	_, _ = s.conn.ExecContext(ctx, "ROLLBACK")
}

func (s *Session) write(ctx context.Context, entity model.Entity) error {
	schema, err := tableOf(entity.Kind())
	if err != nil {
		return err
	}
	statement := s.dialect.upsert(schema.Table, schema.ColumnNames())
	if _, err = s.tx.ExecContext(ctx, statement, bindValues(schema, entity)...); err != nil {
		return fmt.Errorf("write %s: %w", model.KeyOf(entity), err)
	}
	association := schema.Association
	linked, ok := entity.(model.Linked)
	if association == nil || !ok {
		return nil
	}
	unlink := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", association.Table, association.OwnerColumn)
	if _, err = s.tx.ExecContext(ctx, unlink, entity.Identity()); err != nil {
		return fmt.Errorf("unlink %s: %w", model.KeyOf(entity), err)
	}
	link := insert(association.Table, []string{association.OwnerColumn, association.TargetColumn})
	for _, target := range *linked.Links() {
		if _, err = s.tx.ExecContext(ctx, link, entity.Identity(), target); err != nil {
			return fmt.Errorf("link %s to %s: %w", model.KeyOf(entity), target, err)
		}
	}
	return nil
}

func (s *Session) loadLinks(ctx context.Context, association *model.Association, owners map[string]model.Entity) error {
	query := fmt.Sprintf("SELECT %s, %s FROM %s ORDER BY %s, %s", association.OwnerColumn, association.TargetColumn,
		association.Table, association.OwnerColumn, association.TargetColumn)
	rows, err := s.tx.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("query %s: %w", association.Table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var owner, target string
		if err = rows.Scan(&owner, &target); err != nil {
			return fmt.Errorf("scan %s: %w", association.Table, err)
		}
		entity, ok := owners[owner]
		if !ok {
			continue
		}
		if linked, ok := entity.(model.Linked); ok {
			links := linked.Links()
			*links = append(*links, target)
		}
	}
	return rows.Err()
}

func (s *Session) fail(err error) error {
	s.failure = err
	return fmt.Errorf("%w: %w", storage.ErrSessionFailed, err)
}

func (s *Session) failed() error {
	return fmt.Errorf("%w: %v", storage.ErrSessionFailed, s.failure)
}

func joinColumns(schema *model.Schema) string {
	return strings.Join(schema.ColumnNames(), ", ")
}
