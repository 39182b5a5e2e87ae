package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"parkspot/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldReference       = "reference"
	FieldUserID          = "user_id"
	FieldFacilityID      = "facility_id"
	FieldVehicleID       = "vehicle_id"
	FieldVehicleDetails  = "vehicle_details"
	FieldLocationName    = "location_name"
	FieldLocationAddress = "location_address"
	FieldLatitude        = "latitude"
	FieldLongitude       = "longitude"
	FieldBookingDate     = "booking_date"
	FieldStartTime       = "start_time"
	FieldEndTime         = "end_time"
	FieldDurationHours   = "duration_hours"
	FieldAmount          = "amount"
	FieldPhone           = "phone"
	FieldStatus          = "status"
	FieldPaymentStatus   = "payment_status"
	FieldIsOffline       = "is_offline"
)

const (
	StatusActive    = "Active"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
	StatusPending   = "Pending"
)

const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"
	PaymentStatusFailed  = "Failed"
)

// VehicleDetails is the synthesized vehicle of an offline walk-in booking.
// It is stored inline; there is no vehicle registry entry behind it.
type VehicleDetails struct {
	Label    string `json:"label"`
	Plate    string `json:"plate"`
	State    string `json:"state,omitempty"`
	Category string `json:"category"`
}

func (v VehicleDetails) Value() (driver.Value, error) {
	return json.Marshal(v) //nolint:wrapcheck
}

func (v *VehicleDetails) Scan(src any) error {
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, v) //nolint:wrapcheck
	case string:
		return json.Unmarshal([]byte(data), v) //nolint:wrapcheck
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported vehicle details source type %T", src)
	}
}

// Booking is a ledger entry. Records are never deleted, only superseded by
// status. The stored status is written once at creation and never advanced
// by any background process; the displayed status is re-derived on every
// read (see DeriveStatus).
type Booking struct {
	ID              string          `db:"id"`
	Reference       string          `db:"reference"`
	UserID          string          `db:"user_id"`
	FacilityID      string          `db:"facility_id"`
	VehicleID       *string         `db:"vehicle_id"`
	VehicleDetails  *VehicleDetails `db:"vehicle_details"`
	LocationName    string          `db:"location_name"`
	LocationAddress string          `db:"location_address"`
	Latitude        float64         `db:"latitude"`
	Longitude       float64         `db:"longitude"`
	BookingDate     time.Time       `db:"booking_date"`
	StartTime       *time.Time      `db:"start_time"`
	EndTime         *time.Time      `db:"end_time"`
	DurationHours   float64         `db:"duration_hours"`
	Amount          float64         `db:"amount"`
	Phone           *string         `db:"phone"`
	Status          string          `db:"status"`
	PaymentStatus   string          `db:"payment_status"`
	IsOffline       bool            `db:"is_offline"`
	model.Metadata
}
