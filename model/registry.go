package model

import "fmt"

var constructors = map[Kind]func() Entity{
	KindBase:    func() Entity { return &BaseModel{} },
	KindAmenity: func() Entity { return &Amenity{} },
	KindCity:    func() Entity { return &City{} },
	KindPlace:   func() Entity { return &Place{} },
	KindReview:  func() Entity { return &Review{} },
	KindState:   func() Entity { return &State{} },
	KindUser:    func() Entity { return &User{} },
}

// Construct returns a zero entity of kind.
func Construct(kind Kind) (Entity, error) {
	fn, ok := constructors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return fn(), nil
}

// Lookup resolves a kind name; ok is false for unknown names.
func Lookup(name string) (Kind, bool) {
	kind := Kind(name)
	_, ok := constructors[kind]
	return kind, ok
}
