package dto

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"musafir/internal/domains/hotel/model"
	"musafir/shared"
	"musafir/shared/constant"
	gDto "musafir/shared/dto"
	gModel "musafir/shared/model"
	"musafir/shared/timezone"
)

type CreateHotelRequest struct {
	Name          string   `json:"name"           validate:"required,max=150"`
	Description   string   `json:"description"    validate:"omitempty,max=2000"`
	Address       string   `json:"address"        validate:"omitempty,max=250"`
	City          string   `json:"city"           validate:"omitempty,max=100"`
	State         string   `json:"state"          validate:"omitempty,max=100"`
	Zip           string   `json:"zip"            validate:"omitempty,max=20"`
	Country       string   `json:"country"        validate:"omitempty,max=100"`
	StarRating    int      `json:"star_rating"    validate:"omitempty,min=1,max=5"`
	AveragePrice  float64  `json:"average_price"  validate:"omitempty,min=0"`
	CheckInTime   string   `json:"check_in_time"  validate:"omitempty,max=8"`
	CheckOutTime  string   `json:"check_out_time" validate:"omitempty,max=8"`
	AvailableFrom string   `json:"available_from" validate:"omitempty,datetime=2006-01-02"`
	AvailableTo   string   `json:"available_to"   validate:"omitempty,datetime=2006-01-02"`
	Amenities     []string `json:"amenities"      validate:"omitempty,dive,max=50"`
	Tags          []string `json:"tags"           validate:"omitempty,dive,max=50"`
}

func (c *CreateHotelRequest) ToModel(user string) model.Hotel {
	return model.Hotel{
		ID:               uuid.NewString(),
		Name:             c.Name,
		Description:      c.Description,
		Address:          c.Address,
		City:             c.City,
		State:            c.State,
		Zip:              c.Zip,
		Country:          c.Country,
		StarRating:       c.StarRating,
		AveragePrice:     c.AveragePrice,
		CheckInTime:      c.CheckInTime,
		CheckOutTime:     c.CheckOutTime,
		AvailableFrom:    parseDate(c.AvailableFrom),
		AvailableTo:      parseDate(c.AvailableTo),
		Amenities:        c.Amenities,
		Tags:             shared.CleanTagList(c.Tags),
		Status:           constant.StatusDraft,
		RegistrationStep: model.StepBasicInfo,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateHotelRequest struct {
	Name          *string  `db:"name"           json:"name"           validate:"omitempty,max=150"`
	Description   *string  `db:"description"    json:"description"    validate:"omitempty,max=2000"`
	Address       *string  `db:"address"        json:"address"        validate:"omitempty,max=250"`
	City          *string  `db:"city"           json:"city"           validate:"omitempty,max=100"`
	State         *string  `db:"state"          json:"state"          validate:"omitempty,max=100"`
	Zip           *string  `db:"zip"            json:"zip"            validate:"omitempty,max=20"`
	Country       *string  `db:"country"        json:"country"        validate:"omitempty,max=100"`
	StarRating    *int     `db:"star_rating"    json:"star_rating"    validate:"omitempty,min=1,max=5"`
	AveragePrice  *float64 `db:"average_price"  json:"average_price"  validate:"omitempty,min=0"`
	CheckInTime   *string  `db:"check_in_time"  json:"check_in_time"  validate:"omitempty,max=8"`
	CheckOutTime  *string  `db:"check_out_time" json:"check_out_time" validate:"omitempty,max=8"`
	AvailableFrom *string  `json:"available_from" validate:"omitempty,datetime=2006-01-02"`
	AvailableTo   *string  `json:"available_to"   validate:"omitempty,datetime=2006-01-02"`
	Amenities     []string `json:"amenities"      validate:"omitempty,dive,max=50"`
	Tags          []string `json:"tags"           validate:"omitempty,dive,max=50"`
}

// Apply copies the provided fields onto an existing hotel, leaving absent
// fields untouched.
func (u *UpdateHotelRequest) Apply(h *model.Hotel, user string) {
	if u.Name != nil {
		h.Name = *u.Name
	}
	if u.Description != nil {
		h.Description = *u.Description
	}
	if u.Address != nil {
		h.Address = *u.Address
	}
	if u.City != nil {
		h.City = *u.City
	}
	if u.State != nil {
		h.State = *u.State
	}
	if u.Zip != nil {
		h.Zip = *u.Zip
	}
	if u.Country != nil {
		h.Country = *u.Country
	}
	if u.StarRating != nil {
		h.StarRating = *u.StarRating
	}
	if u.AveragePrice != nil {
		h.AveragePrice = *u.AveragePrice
	}
	if u.CheckInTime != nil {
		h.CheckInTime = *u.CheckInTime
	}
	if u.CheckOutTime != nil {
		h.CheckOutTime = *u.CheckOutTime
	}
	if u.AvailableFrom != nil {
		h.AvailableFrom = parseDate(*u.AvailableFrom)
	}
	if u.AvailableTo != nil {
		h.AvailableTo = parseDate(*u.AvailableTo)
	}
	if u.Amenities != nil {
		h.Amenities = u.Amenities
	}
	if u.Tags != nil {
		h.Tags = shared.CleanTagList(u.Tags)
	}
	h.ModifiedAt = timezone.Now()
	h.ModifiedBy = user
}

type StepRequest struct {
	Action string `json:"action" validate:"required,oneof=next previous goto"`
	Target string `json:"target" validate:"omitempty,max=30"`
}

type StepResponse struct {
	Step     string `json:"step"`
	Position int    `json:"position"`
	Total    int    `json:"total"`
	IsFirst  bool   `json:"is_first"`
	IsLast   bool   `json:"is_last"`
}

type UploadImagesRequest struct {
	Images     []*multipart.FileHeader `json:"images" validate:"required,min=1,dive,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFiles []multipart.File        `json:"-"`
}

type RegistrationStatusResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Step    string `json:"step"`
	Percent int    `json:"percent"`
	Missing string `json:"missing,omitempty"`
}

func (r *RegistrationStatusResponse) FromModel(mod model.Hotel) {
	r.ID = mod.ID
	r.Status = mod.Status
	r.Step = mod.RegistrationStep
	r.Percent = mod.RegistrationPercent()
	if label, unmet := mod.FirstUnmetRequirement(); unmet {
		r.Missing = label
	}
}

type HotelResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	Zip              string   `json:"zip"`
	Country          string   `json:"country"`
	StarRating       int      `json:"star_rating"`
	AveragePrice     float64  `json:"average_price"`
	CheckInTime      string   `json:"check_in_time"`
	CheckOutTime     string   `json:"check_out_time"`
	AvailableFrom    string   `json:"available_from,omitempty"`
	AvailableTo      string   `json:"available_to,omitempty"`
	Amenities        []string `json:"amenities"`
	Tags             []string `json:"tags"`
	Images           []string `json:"images"`
	Status           string   `json:"status"`
	RegistrationStep string   `json:"registration_step"`
	Percent          int      `json:"registration_percent"`
	gDto.Metadata
}

func (r *HotelResponse) FromModel(mod model.Hotel) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Description = mod.Description
	r.Address = mod.Address
	r.City = mod.City
	r.State = mod.State
	r.Zip = mod.Zip
	r.Country = mod.Country
	r.StarRating = mod.StarRating
	r.AveragePrice = mod.AveragePrice
	r.CheckInTime = mod.CheckInTime
	r.CheckOutTime = mod.CheckOutTime
	r.AvailableFrom = formatDate(mod.AvailableFrom)
	r.AvailableTo = formatDate(mod.AvailableTo)
	r.Amenities = mod.Amenities
	r.Tags = mod.Tags
	r.Images = mod.Images
	r.Status = mod.Status
	r.RegistrationStep = mod.RegistrationStep
	r.Percent = mod.RegistrationPercent()
	r.Metadata.FromModel(mod.Metadata)
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		r.Hotels[i].FromModel(mod)
	}
}

type StatsResponse struct {
	Hotels   int     `json:"hotels"`
	Rooms    int     `json:"rooms"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(constant.DateOnlyFormat, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(constant.DateOnlyFormat)
}
