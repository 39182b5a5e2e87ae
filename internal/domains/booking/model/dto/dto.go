package dto

import (
	"parkspot/internal/domains/booking/model"
	"parkspot/shared"
	"parkspot/shared/constant"
	gDto "parkspot/shared/dto"
	gModel "parkspot/shared/model"
	"parkspot/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type Location struct {
	Name        string      `json:"name"    validate:"required,max=100"`
	Address     string      `json:"address" validate:"omitempty,max=255"`
	Coordinates Coordinates `json:"coordinates"`
}

type Coordinates struct {
	Latitude  float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Longitude float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
}

type CreateBookingRequest struct {
	FacilityID    string   `json:"facility_id"    validate:"required"`
	VehicleID     string   `json:"vehicle_id"     validate:"required"`
	Location      Location `json:"location"       validate:"required"`
	StartTime     string   `json:"start_time"     validate:"required"`
	DurationHours float64  `json:"duration_hours" validate:"required,gt=0"`
	Total         float64  `json:"total"          validate:"required,gt=0"`
	Phone         string   `json:"phone"          validate:"omitempty,max=20"`
}

// ToModel builds the ledger entry for an online booking. The end time is
// fixed at creation; the stored status starts Active and is never advanced.
func (c *CreateBookingRequest) ToModel(user, reference string) (model.Booking, error) {
	start, err := time.Parse(constant.DateFormat, c.StartTime)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	end := start.Add(time.Duration(c.DurationHours * float64(time.Hour)))

	var phone *string
	if c.Phone != constant.Empty {
		phone = &c.Phone
	}

	vehicleID := c.VehicleID

	return model.Booking{
		ID:              uuid.NewString(),
		Reference:       reference,
		UserID:          user,
		FacilityID:      c.FacilityID,
		VehicleID:       &vehicleID,
		LocationName:    c.Location.Name,
		LocationAddress: c.Location.Address,
		Latitude:        c.Location.Coordinates.Latitude,
		Longitude:       c.Location.Coordinates.Longitude,
		BookingDate:     start,
		StartTime:       &start,
		EndTime:         &end,
		DurationHours:   c.DurationHours,
		Amount:          c.Total,
		Phone:           phone,
		Status:          model.StatusActive,
		PaymentStatus:   model.PaymentStatusPaid,
		IsOffline:       false,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type OfflineVehicleDetails struct {
	Label    string `json:"label"    validate:"required,min=2,max=50"`
	Plate    string `json:"plate"    validate:"required,min=2,max=15"`
	State    string `json:"state"    validate:"omitempty,len=2"`
	Category string `json:"category" validate:"required,oneof=two-wheeler four-wheeler"`
}

type CreateOfflineBookingRequest struct {
	VehicleDetails OfflineVehicleDetails `json:"vehicle_details" validate:"required"`
	StartTime      string                `json:"start_time"      validate:"required"`
	DurationHours  float64               `json:"duration_hours"  validate:"required,gt=0"`
	Total          float64               `json:"total"           validate:"required,gt=0"`
	Phone          string                `json:"phone"           validate:"omitempty,max=20"`
}

// ToModel builds a walk-in ledger entry initiated by the facility operator.
// There is no registry vehicle behind it; the details are synthesized.
func (c *CreateOfflineBookingRequest) ToModel(operator, reference, facilityID, facilityName, facilityAddress string) (model.Booking, error) {
	start, err := time.Parse(constant.DateFormat, c.StartTime)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	end := start.Add(time.Duration(c.DurationHours * float64(time.Hour)))

	var phone *string
	if c.Phone != constant.Empty {
		phone = &c.Phone
	}

	return model.Booking{
		ID:         uuid.NewString(),
		Reference:  reference,
		UserID:     operator,
		FacilityID: facilityID,
		VehicleDetails: &model.VehicleDetails{
			Label:    c.VehicleDetails.Label,
			Plate:    c.VehicleDetails.Plate,
			State:    c.VehicleDetails.State,
			Category: c.VehicleDetails.Category,
		},
		LocationName:    facilityName,
		LocationAddress: facilityAddress,
		BookingDate:     start,
		StartTime:       &start,
		EndTime:         &end,
		DurationHours:   c.DurationHours,
		Amount:          c.Total,
		Phone:           phone,
		Status:          model.StatusActive,
		PaymentStatus:   model.PaymentStatusPaid,
		IsOffline:       true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  operator,
			ModifiedBy: operator,
		},
	}, nil
}

type BookingResponse struct {
	ID             string                `json:"id"`
	Reference      string                `json:"reference"`
	UserID         string                `json:"user_id"`
	FacilityID     string                `json:"facility_id"`
	VehicleID      string                `json:"vehicle_id,omitempty"`
	VehicleDetails *model.VehicleDetails `json:"vehicle_details,omitempty"`
	Location       Location              `json:"location"`
	StartTime      string                `json:"start_time,omitempty"`
	EndTime        string                `json:"end_time,omitempty"`
	DurationHours  float64               `json:"duration_hours"`
	Total          float64               `json:"total"`
	Phone          string                `json:"phone,omitempty"`
	Status         string                `json:"status"`
	PaymentStatus  string                `json:"payment_status"`
	IsOffline      bool                  `json:"is_offline"`
	gDto.Metadata
}

// FromModel maps a ledger entry to its response shape. The status field is
// the derived display status, not the stored one.
func (r *BookingResponse) FromModel(mod model.Booking) {
	r.FromModelAt(mod, timezone.Now())
}

func (r *BookingResponse) FromModelAt(mod model.Booking, now time.Time) {
	r.ID = mod.ID
	r.Reference = mod.Reference
	r.UserID = mod.UserID
	r.FacilityID = mod.FacilityID

	if mod.VehicleID != nil {
		r.VehicleID = *mod.VehicleID
	}

	r.VehicleDetails = mod.VehicleDetails
	r.Location = Location{
		Name:    mod.LocationName,
		Address: mod.LocationAddress,
		Coordinates: Coordinates{
			Latitude:  mod.Latitude,
			Longitude: mod.Longitude,
		},
	}

	if mod.StartTime != nil {
		r.StartTime = timezone.Format(*mod.StartTime, constant.DateFormat)
	}

	if mod.EndTime != nil {
		r.EndTime = timezone.Format(*mod.EndTime, constant.DateFormat)
	}

	r.DurationHours = mod.DurationHours
	r.Total = mod.Amount

	if mod.Phone != nil {
		r.Phone = *mod.Phone
	}

	r.Status = model.DeriveStatus(mod, now)
	r.PaymentStatus = mod.PaymentStatus
	r.IsOffline = mod.IsOffline
	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingCreatedEvent is the best-effort notification published after a
// ledger insert. The capacity updater consumes it at most once; a lost or
// failed event leaves the ledger authoritative and the capacity record
// stale until the next reconcile.
type BookingCreatedEvent struct {
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
