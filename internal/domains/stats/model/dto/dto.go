package dto

import (
	"parkspot/internal/domains/stats/model"
	"time"
)

// BookingSummary is the shape consumed from the booking created topic and
// appended to a facility's stats record. All fields are mandatory; the
// append is refused whole when any is missing.
type BookingSummary struct {
	BookingID     string    `json:"booking_id"`
	Reference     string    `json:"reference"`
	FacilityID    string    `json:"facility_id"`
	UserID        string    `json:"user_id"`
	VehicleID     string    `json:"vehicle_id"`
	VehicleType   string    `json:"vehicle_type"`
	Amount        float64   `json:"amount"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	DurationHours float64   `json:"duration_hours"`
	IsOffline     bool      `json:"is_offline"`
}

func (s BookingSummary) ToActiveBooking() model.ActiveBooking {
	return model.ActiveBooking{
		BookingID:     s.BookingID,
		VehicleID:     s.VehicleID,
		UserID:        s.UserID,
		VehicleType:   s.VehicleType,
		Amount:        s.Amount,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		DurationHours: s.DurationHours,
		IsOffline:     s.IsOffline,
	}
}

type SpacesResponse struct {
	TwoWheeler  int `json:"two_wheeler"`
	FourWheeler int `json:"four_wheeler"`
}

type FacilityStatsResponse struct {
	FacilityID      string                `json:"facility_id"`
	FacilityName    string                `json:"facility_name"`
	TotalSpaces     SpacesResponse        `json:"total_spaces"`
	AvailableSpaces SpacesResponse        `json:"available_spaces"`
	Revenue         float64               `json:"revenue"`
	ActiveBookings  []model.ActiveBooking `json:"active_bookings"`
}

func (r *FacilityStatsResponse) FromModel(mod model.FacilityStats) {
	r.FacilityID = mod.FacilityID
	r.FacilityName = mod.FacilityName
	r.TotalSpaces = SpacesResponse{TwoWheeler: mod.TwoWheelerTotal, FourWheeler: mod.FourWheelerTotal}
	r.AvailableSpaces = SpacesResponse{TwoWheeler: mod.TwoWheelerAvailable, FourWheeler: mod.FourWheelerAvailable}
	r.Revenue = mod.Revenue
	r.ActiveBookings = mod.ActiveBookings

	if r.ActiveBookings == nil {
		r.ActiveBookings = []model.ActiveBooking{}
	}
}
