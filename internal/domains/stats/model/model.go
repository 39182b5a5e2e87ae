package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"parkspot/shared/model"
	"time"
)

const (
	TableName  = "facility_stats"
	EntityName = "facilityStats"

	FieldFacilityID           = "facility_id"
	FieldFacilityName         = "facility_name"
	FieldTwoWheelerTotal      = "two_wheeler_total"
	FieldFourWheelerTotal     = "four_wheeler_total"
	FieldTwoWheelerAvailable  = "two_wheeler_available"
	FieldFourWheelerAvailable = "four_wheeler_available"
	FieldRevenue              = "revenue"
	FieldActiveBookings       = "active_bookings"
)

// ActiveBooking is the denormalized summary appended to a facility's stats
// record when a booking lands. Every field is required on the append path.
type ActiveBooking struct {
	BookingID     string    `json:"booking_id"`
	VehicleID     string    `json:"vehicle_id"`
	UserID        string    `json:"user_id"`
	VehicleType   string    `json:"vehicle_type"`
	Amount        float64   `json:"amount"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	DurationHours float64   `json:"duration"`
	IsOffline     bool      `json:"is_offline"`
}

type ActiveBookings []ActiveBooking

func (a ActiveBookings) Value() (driver.Value, error) {
	if a == nil {
		a = ActiveBookings{}
	}

	return json.Marshal(a) //nolint:wrapcheck
}

func (a *ActiveBookings) Scan(src any) error {
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, a) //nolint:wrapcheck
	case string:
		return json.Unmarshal([]byte(data), a) //nolint:wrapcheck
	case nil:
		*a = ActiveBookings{}

		return nil
	default:
		return fmt.Errorf("unsupported active bookings source type %T", src)
	}
}

// FacilityStats is the per-facility capacity ledger. The available counters
// are decremented on the append path and only restored by Reconcile; they
// drift when a booking's window elapses. Consumers that need a live number
// derive it from the booking ledger instead.
type FacilityStats struct {
	FacilityID           string         `db:"facility_id"`
	FacilityName         string         `db:"facility_name"`
	TwoWheelerTotal      int            `db:"two_wheeler_total"`
	FourWheelerTotal     int            `db:"four_wheeler_total"`
	TwoWheelerAvailable  int            `db:"two_wheeler_available"`
	FourWheelerAvailable int            `db:"four_wheeler_available"`
	Revenue              float64        `db:"revenue"`
	ActiveBookings       ActiveBookings `db:"active_bookings"`
	model.Metadata
}

// Spaces is a per-class pair used by the dashboard derivations.
type Spaces struct {
	TwoWheeler  int `json:"two_wheeler"`
	FourWheeler int `json:"four_wheeler"`
}

func (s FacilityStats) TotalSpaces() Spaces {
	return Spaces{TwoWheeler: s.TwoWheelerTotal, FourWheeler: s.FourWheelerTotal}
}

func (s FacilityStats) AvailableSpaces() Spaces {
	return Spaces{TwoWheeler: s.TwoWheelerAvailable, FourWheeler: s.FourWheelerAvailable}
}
