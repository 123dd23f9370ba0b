package model

// Amenity is a feature a place can offer.
type Amenity struct {
	Base
	Name string `json:"name" yaml:"name"`
}

// NewAmenity creates an amenity.
func NewAmenity(name string) *Amenity {
	return &Amenity{Base: newBase(), Name: name}
}

func (a *Amenity) Kind() Kind { return KindAmenity }

func (a *Amenity) Values() []interface{} {
	return append(a.values(), a.Name)
}

func (a *Amenity) Targets() []interface{} {
	return append(a.targets(), &a.Name)
}

func (a *Amenity) Validate() error {
	if err := a.validate(KindAmenity); err != nil {
		return err
	}
	return required(KindAmenity, "name", a.Name)
}
