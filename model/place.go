package model

// Place is a rentable location in a city, hosted by a user.
type Place struct {
	Base
	CityID          string   `json:"city_id" yaml:"city_id"`
	UserID          string   `json:"user_id" yaml:"user_id"`
	Name            string   `json:"name" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	NumberRooms     int      `json:"number_rooms" yaml:"number_rooms"`
	NumberBathrooms int      `json:"number_bathrooms" yaml:"number_bathrooms"`
	MaxGuest        int      `json:"max_guest" yaml:"max_guest"`
	PriceByNight    int      `json:"price_by_night" yaml:"price_by_night"`
	Latitude        float64  `json:"latitude" yaml:"latitude"`
	Longitude       float64  `json:"longitude" yaml:"longitude"`
	AmenityIDs      []string `json:"amenity_ids" yaml:"amenity_ids"`
}

// NewPlace creates a place hosted by userID in cityID.
func NewPlace(cityID, userID, name string) *Place {
	return &Place{Base: newBase(), CityID: cityID, UserID: userID, Name: name}
}

func (p *Place) Kind() Kind { return KindPlace }

func (p *Place) Values() []interface{} {
	return append(p.values(), p.CityID, p.UserID, p.Name, p.Description,
		p.NumberRooms, p.NumberBathrooms, p.MaxGuest, p.PriceByNight,
		p.Latitude, p.Longitude)
}

func (p *Place) Targets() []interface{} {
	return append(p.targets(), &p.CityID, &p.UserID, &p.Name, &p.Description,
		&p.NumberRooms, &p.NumberBathrooms, &p.MaxGuest, &p.PriceByNight,
		&p.Latitude, &p.Longitude)
}

// Links returns the amenity ids linked through place_amenity.
func (p *Place) Links() *[]string {
	return &p.AmenityIDs
}

// AddAmenity links an amenity once.
func (p *Place) AddAmenity(amenityID string) {
	for _, id := range p.AmenityIDs {
		if id == amenityID {
			return
		}
	}
	p.AmenityIDs = append(p.AmenityIDs, amenityID)
}

func (p *Place) Validate() error {
	if err := p.validate(KindPlace); err != nil {
		return err
	}
	return required(KindPlace, "city_id", p.CityID, "user_id", p.UserID, "name", p.Name)
}
