package idgen

import "github.com/google/uuid"

// NewFunc generates a new entity identifier. Override in tests for
// deterministic keys.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier.
func New() string { return NewFunc() }
