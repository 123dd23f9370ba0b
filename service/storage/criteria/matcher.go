package criteria

import "github.com/viant/objstore/model"

// MatchKind returns a predicate accepting entities of kind; an empty kind
// accepts every entity.
func MatchKind(kind model.Kind) func(model.Entity) bool {
	if kind == "" {
		return nil
	}
	return func(e model.Entity) bool {
		return e.Kind() == kind
	}
}
