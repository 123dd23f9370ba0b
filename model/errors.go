package model

import "errors"

var (
	// ErrUnknownKind is returned when a discriminator does not name a known kind.
	ErrUnknownKind = errors.New("model: unknown kind")

	// ErrInvalidEntity is returned when attributes cannot form a valid entity.
	ErrInvalidEntity = errors.New("model: invalid entity")
)
