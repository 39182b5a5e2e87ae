package model

import "parkspot/shared/model"

const (
	TableName  = "facilities"
	EntityName = "facility"

	FieldID                = "id"
	FieldOwnerID           = "owner_id"
	FieldOwnerEmail        = "owner_email"
	FieldName              = "name"
	FieldAddress           = "address"
	FieldLatitude          = "latitude"
	FieldLongitude         = "longitude"
	FieldTwoWheelerSpaces  = "two_wheeler_spaces"
	FieldFourWheelerSpaces = "four_wheeler_spaces"
	FieldTwoWheelerRate    = "two_wheeler_rate"
	FieldFourWheelerRate   = "four_wheeler_rate"
	FieldHasCCTV           = "has_cctv"
	FieldHasGuard          = "has_guard"
	FieldPhoto             = "photo"
	FieldActive            = "active"
)

// Facility is a parking operator location. Space counts and rates are the
// capacity configuration consumed by the stats ledger; bookings never mutate
// them.
type Facility struct {
	ID                string  `db:"id"`
	OwnerID           string  `db:"owner_id"`
	OwnerEmail        string  `db:"owner_email"`
	Name              string  `db:"name"`
	Address           string  `db:"address"`
	Latitude          float64 `db:"latitude"`
	Longitude         float64 `db:"longitude"`
	TwoWheelerSpaces  int     `db:"two_wheeler_spaces"`
	FourWheelerSpaces int     `db:"four_wheeler_spaces"`
	TwoWheelerRate    float64 `db:"two_wheeler_rate"`
	FourWheelerRate   float64 `db:"four_wheeler_rate"`
	HasCCTV           bool    `db:"has_cctv"`
	HasGuard          bool    `db:"has_guard"`
	Photo             string  `db:"photo"`
	Active            bool    `db:"active"`
	model.Metadata
}
