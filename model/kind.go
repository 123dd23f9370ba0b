package model

// Kind is the entity type discriminator, e.g. "User".
type Kind string

const (
	KindBase    Kind = "BaseModel"
	KindAmenity Kind = "Amenity"
	KindCity    Kind = "City"
	KindPlace   Kind = "Place"
	KindReview  Kind = "Review"
	KindState   Kind = "State"
	KindUser    Kind = "User"
)

// String returns the discriminator value.
func (k Kind) String() string {
	return string(k)
}

// IsConcrete reports whether k names one of the six table-backed kinds.
func (k Kind) IsConcrete() bool {
	switch k {
	case KindAmenity, KindCity, KindPlace, KindReview, KindState, KindUser:
		return true
	}
	return false
}

// Kinds returns the concrete kinds ordered so that referenced kinds precede
// the kinds referencing them.
func Kinds() []Kind {
	return []Kind{KindState, KindCity, KindUser, KindAmenity, KindPlace, KindReview}
}

// Key returns the identity key "{Kind}.{id}".
func Key(kind Kind, id string) string {
	return string(kind) + "." + id
}

// KeyOf returns the identity key of e.
func KeyOf(e Entity) string {
	return Key(e.Kind(), e.Identity())
}
