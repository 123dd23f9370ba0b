// Package idgen produces entity identifiers. It wraps the UUID generator so
// that tests can pin identifiers; callers must treat ids as opaque strings.
package idgen
