// Package model contains the closed set of entity kinds persisted by the
// storage engines.
//
// Every entity embeds Base (identifier and timestamps) and implements Entity,
// which exposes the kind discriminator and an ordered, typed view of its
// fields (see Schema). The JSON codec in this package produces the per-entity
// attribute document used by the file engine:
//
//	{"id": "...", "created_at": "...", "name": "...", "__class__": "State"}
//
// Decode dispatches on the "__class__" discriminator; unknown kinds and
// entities failing Validate are reported as errors.
package model
