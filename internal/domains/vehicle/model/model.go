package model

import "parkspot/shared/model"

const (
	TableName  = "vehicles"
	EntityName = "vehicle"

	FieldID       = "id"
	FieldUserID   = "user_id"
	FieldLabel    = "label"
	FieldPlate    = "plate"
	FieldState    = "state"
	FieldCategory = "category"
)

// Vehicle categories are the two capacity pools tracked per facility.
const (
	CategoryTwoWheeler  = "two-wheeler"
	CategoryFourWheeler = "four-wheeler"
)

type Vehicle struct {
	ID       string `db:"id"`
	UserID   string `db:"user_id"`
	Label    string `db:"label"`
	Plate    string `db:"plate"`
	State    string `db:"state"`
	Category string `db:"category"`
	model.Metadata
}
