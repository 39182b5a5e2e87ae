package dto

import (
	"parkspot/internal/domains/facility/model"
	"parkspot/shared"
	gDto "parkspot/shared/dto"
	gModel "parkspot/shared/model"
	"parkspot/shared/timezone"

	"github.com/google/uuid"
)

type RegisterFacilityRequest struct {
	Name              string  `json:"name"                validate:"required,min=2,max=100"`
	Address           string  `json:"address"             validate:"required,max=255"`
	Latitude          float64 `json:"latitude"            validate:"omitempty,gte=-90,lte=90"`
	Longitude         float64 `json:"longitude"           validate:"omitempty,gte=-180,lte=180"`
	TwoWheelerSpaces  int     `json:"two_wheeler_spaces"  validate:"gte=0"`
	FourWheelerSpaces int     `json:"four_wheeler_spaces" validate:"gte=0"`
	TwoWheelerRate    float64 `json:"two_wheeler_rate"    validate:"gte=0"`
	FourWheelerRate   float64 `json:"four_wheeler_rate"   validate:"gte=0"`
	HasCCTV           bool    `json:"has_cctv"`
	HasGuard          bool    `json:"has_guard"`
	Photo             string  `json:"photo,omitempty"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
}

func (c *RegisterFacilityRequest) ToModel(user, email, photoURL string) model.Facility {
	return model.Facility{
		ID:                uuid.NewString(),
		OwnerID:           user,
		OwnerEmail:        email,
		Name:              c.Name,
		Address:           c.Address,
		Latitude:          c.Latitude,
		Longitude:         c.Longitude,
		TwoWheelerSpaces:  c.TwoWheelerSpaces,
		FourWheelerSpaces: c.FourWheelerSpaces,
		TwoWheelerRate:    c.TwoWheelerRate,
		FourWheelerRate:   c.FourWheelerRate,
		HasCCTV:           c.HasCCTV,
		HasGuard:          c.HasGuard,
		Photo:             photoURL,
		Active:            true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateFacilityRequest carries only mutable presentation fields. Space
// counts and rates are immutable capacity configuration.
type UpdateFacilityRequest struct {
	Name     string `db:"name"      json:"name"            validate:"omitempty,min=2,max=100"`
	Address  string `db:"address"   json:"address"         validate:"omitempty,max=255"`
	HasCCTV  *bool  `db:"has_cctv"  json:"has_cctv"`
	HasGuard *bool  `db:"has_guard" json:"has_guard"`
	Photo    string `json:"photo,omitempty"                validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
}

type FacilityResponse struct {
	ID                string  `json:"id"`
	OwnerID           string  `json:"owner_id"`
	Name              string  `json:"name"`
	Address           string  `json:"address"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	TwoWheelerSpaces  int     `json:"two_wheeler_spaces"`
	FourWheelerSpaces int     `json:"four_wheeler_spaces"`
	TwoWheelerRate    float64 `json:"two_wheeler_rate"`
	FourWheelerRate   float64 `json:"four_wheeler_rate"`
	HasCCTV           bool    `json:"has_cctv"`
	HasGuard          bool    `json:"has_guard"`
	Photo             string  `json:"photo,omitempty"`
	Active            bool    `json:"active"`
	gDto.Metadata
}

func (r *FacilityResponse) FromModel(model model.Facility) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.Name = model.Name
	r.Address = model.Address
	r.Latitude = model.Latitude
	r.Longitude = model.Longitude
	r.TwoWheelerSpaces = model.TwoWheelerSpaces
	r.FourWheelerSpaces = model.FourWheelerSpaces
	r.TwoWheelerRate = model.TwoWheelerRate
	r.FourWheelerRate = model.FourWheelerRate
	r.HasCCTV = model.HasCCTV
	r.HasGuard = model.HasGuard
	r.Photo = model.Photo
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetFacilitiesResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetFacilitiesResponse) FromModels(models []model.Facility, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Facilities = make([]FacilityResponse, len(models))
	for i, mod := range models {
		r.Facilities[i].FromModel(mod)
	}
}

type SearchFacilitiesResponse struct {
	Center     Coordinates        `json:"center"`
	Facilities []FacilityResponse `json:"facilities"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
