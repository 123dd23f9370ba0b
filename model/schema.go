package model

import "fmt"

// ColumnType describes how a field is stored.
type ColumnType int

const (
	// String is a bounded character column (Size holds the bound).
	String ColumnType = iota
	// Text is an unbounded character column.
	Text
	// Int is a 64-bit integer column.
	Int
	// Float is a double precision column.
	Float
	// Timestamp is a UTC instant kept with microsecond precision.
	Timestamp
)

// Column describes a single persisted field.
type Column struct {
	Name       string
	Type       ColumnType
	Size       int
	Required   bool
	References Kind // non-empty for foreign keys
}

// Association describes a many-to-many link table owned by a kind.
type Association struct {
	Table        string
	OwnerColumn  string
	TargetColumn string
	Target       Kind
}

// Schema is the ordered field list of a kind. Entity.Values and
// Entity.Targets follow the Columns order.
type Schema struct {
	Kind        Kind
	Table       string
	Columns     []Column
	Association *Association
}

// ColumnNames returns the column names in schema order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, column := range s.Columns {
		names[i] = column.Name
	}
	return names
}

var baseColumns = []Column{
	{Name: "id", Type: String, Size: 60, Required: true},
	{Name: "created_at", Type: Timestamp, Required: true},
	{Name: "updated_at", Type: Timestamp, Required: true},
}

func withBase(columns ...Column) []Column {
	return append(append([]Column{}, baseColumns...), columns...)
}

var schemas = map[Kind]*Schema{
	KindBase: {Kind: KindBase, Columns: withBase()},
	KindState: {Kind: KindState, Table: "states", Columns: withBase(
		Column{Name: "name", Type: String, Size: 128, Required: true},
	)},
	KindCity: {Kind: KindCity, Table: "cities", Columns: withBase(
		Column{Name: "state_id", Type: String, Size: 60, Required: true, References: KindState},
		Column{Name: "name", Type: String, Size: 128, Required: true},
	)},
	KindUser: {Kind: KindUser, Table: "users", Columns: withBase(
		Column{Name: "email", Type: String, Size: 128, Required: true},
		Column{Name: "password", Type: String, Size: 128, Required: true},
		Column{Name: "first_name", Type: String, Size: 128},
		Column{Name: "last_name", Type: String, Size: 128},
	)},
	KindAmenity: {Kind: KindAmenity, Table: "amenities", Columns: withBase(
		Column{Name: "name", Type: String, Size: 128, Required: true},
	)},
	KindPlace: {Kind: KindPlace, Table: "places", Columns: withBase(
		Column{Name: "city_id", Type: String, Size: 60, Required: true, References: KindCity},
		Column{Name: "user_id", Type: String, Size: 60, Required: true, References: KindUser},
		Column{Name: "name", Type: String, Size: 128, Required: true},
		Column{Name: "description", Type: Text},
		Column{Name: "number_rooms", Type: Int},
		Column{Name: "number_bathrooms", Type: Int},
		Column{Name: "max_guest", Type: Int},
		Column{Name: "price_by_night", Type: Int},
		Column{Name: "latitude", Type: Float},
		Column{Name: "longitude", Type: Float},
	), Association: &Association{
		Table:        "place_amenity",
		OwnerColumn:  "place_id",
		TargetColumn: "amenity_id",
		Target:       KindAmenity,
	}},
	KindReview: {Kind: KindReview, Table: "reviews", Columns: withBase(
		Column{Name: "place_id", Type: String, Size: 60, Required: true, References: KindPlace},
		Column{Name: "user_id", Type: String, Size: 60, Required: true, References: KindUser},
		Column{Name: "text", Type: String, Size: 1024, Required: true},
	)},
}

// SchemaOf returns the schema of kind.
func SchemaOf(kind Kind) (*Schema, error) {
	schema, ok := schemas[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return schema, nil
}
