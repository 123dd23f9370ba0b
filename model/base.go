package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/viant/objstore/internal/clock"
	"github.com/viant/objstore/internal/idgen"
)

// Entity is implemented by every persisted kind.
type Entity interface {
	// Kind returns the discriminator.
	Kind() Kind
	// Identity returns the immutable identifier.
	Identity() string
	// Meta returns the shared identifier and timestamps.
	Meta() *Base
	// Values returns field values in schema column order.
	Values() []interface{}
	// Targets returns pointers to fields in schema column order.
	Targets() []interface{}
	// Validate checks required attributes.
	Validate() error
	// Touch refreshes the update timestamp.
	Touch()
}

// Linked is implemented by kinds owning an association (see Schema.Association).
type Linked interface {
	Links() *[]string
}

// Base carries the attributes shared by all kinds.
type Base struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// BaseModel is the generic fallback kind, carrying base attributes only.
type BaseModel struct {
	Base
}

func newBase() Base {
	now := clock.Now()
	return Base{ID: idgen.New(), CreatedAt: now, UpdatedAt: now}
}

// NewBaseModel creates a fallback entity.
func NewBaseModel() *BaseModel {
	return &BaseModel{Base: newBase()}
}

func (b *Base) Identity() string {
	return b.ID
}

func (b *Base) Meta() *Base {
	return b
}

func (b *Base) Touch() {
	b.UpdatedAt = clock.Now()
}

func (b *Base) values() []interface{} {
	return []interface{}{b.ID, b.CreatedAt, b.UpdatedAt}
}

func (b *Base) targets() []interface{} {
	return []interface{}{&b.ID, &b.CreatedAt, &b.UpdatedAt}
}

func (b *Base) validate(kind Kind) error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("%w: %s: id is required", ErrInvalidEntity, kind)
	}
	return nil
}

func (m *BaseModel) Kind() Kind { return KindBase }

func (m *BaseModel) Values() []interface{} { return m.values() }

func (m *BaseModel) Targets() []interface{} { return m.targets() }

func (m *BaseModel) Validate() error { return m.validate(KindBase) }

// required reports the first empty attribute among name/value pairs.
func required(kind Kind, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return fmt.Errorf("%w: %s: %s is required", ErrInvalidEntity, kind, pairs[i])
		}
	}
	return nil
}
