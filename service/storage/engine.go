package storage

import (
	"context"
	"errors"

	"github.com/viant/objstore/model"
)

// Engine is the persistence contract shared by the relational and file
// engines. A kind of "" means every kind. Lookup misses never produce
// errors: Get returns nil and Delete is a no-op.
type Engine interface {
	// All returns the entities of kind keyed by identity key.
	All(ctx context.Context, kind model.Kind) (map[string]model.Entity, error)

	// New tracks an entity; nothing is persisted until Save.
	New(ctx context.Context, entity model.Entity) error

	// Save durably persists all tracked state.
	Save(ctx context.Context) error

	// Delete removes a tracked entity and saves immediately.
	Delete(ctx context.Context, entity model.Entity) error

	// DeleteAll removes every entity and persists the empty state.
	DeleteAll(ctx context.Context) error

	// Reload re-initialises the working state from the backing store.
	Reload(ctx context.Context) error

	// Close releases the working state.
	Close(ctx context.Context) error

	// Get returns the entity addressed by kind and id, or nil.
	Get(ctx context.Context, kind model.Kind, id string) (model.Entity, error)

	// Count returns the number of entities of kind.
	Count(ctx context.Context, kind model.Kind) (int, error)
}

// Get implements Engine.Get on top of All: the identity key is looked up in
// the entities of the requested kind.
func Get(ctx context.Context, engine Engine, kind model.Kind, id string) (model.Entity, error) {
	if kind == "" || id == "" {
		return nil, nil
	}
	if _, ok := model.Lookup(string(kind)); !ok {
		return nil, nil
	}
	entities, err := engine.All(ctx, kind)
	if errors.Is(err, ErrUnknownKind) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entities[model.Key(kind, id)], nil
}

// Count implements Engine.Count as the size of All.
func Count(ctx context.Context, engine Engine, kind model.Kind) (int, error) {
	entities, err := engine.All(ctx, kind)
	if err != nil {
		return 0, err
	}
	return len(entities), nil
}
