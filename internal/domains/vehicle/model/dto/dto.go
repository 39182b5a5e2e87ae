package dto

import (
	"parkspot/internal/domains/vehicle/model"
	"parkspot/shared"
	gDto "parkspot/shared/dto"
	gModel "parkspot/shared/model"
	"parkspot/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type CreateVehicleRequest struct {
	Label    string `json:"label"    validate:"required,min=2,max=50"`
	Plate    string `json:"plate"    validate:"required,min=2,max=15"`
	State    string `json:"state"    validate:"required,len=2"`
	Category string `json:"category" validate:"required,oneof=two-wheeler four-wheeler"`
}

// ToModel normalizes plate and state to upper case before persisting.
func (c *CreateVehicleRequest) ToModel(user string) model.Vehicle {
	return model.Vehicle{
		ID:       uuid.NewString(),
		UserID:   user,
		Label:    c.Label,
		Plate:    strings.ToUpper(strings.TrimSpace(c.Plate)),
		State:    strings.ToUpper(strings.TrimSpace(c.State)),
		Category: c.Category,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type VehicleResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Label    string `json:"label"`
	Plate    string `json:"plate"`
	State    string `json:"state"`
	Category string `json:"category"`
	gDto.Metadata
}

func (r *VehicleResponse) FromModel(model model.Vehicle) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.Label = model.Label
	r.Plate = model.Plate
	r.State = model.State
	r.Category = model.Category
	r.Metadata.FromModel(model.Metadata)
}

type GetVehiclesResponse struct {
	Vehicles  []VehicleResponse `json:"vehicles"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetVehiclesResponse) FromModels(models []model.Vehicle, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Vehicles = make([]VehicleResponse, len(models))
	for i, mod := range models {
		r.Vehicles[i].FromModel(mod)
	}
}
