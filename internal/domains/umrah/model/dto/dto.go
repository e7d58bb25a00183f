package dto

import (
	"time"

	"github.com/google/uuid"

	"musafir/internal/domains/umrah/model"
	"musafir/shared"
	"musafir/shared/constant"
	gDto "musafir/shared/dto"
	gModel "musafir/shared/model"
	"musafir/shared/timezone"
)

type CreatePackageRequest struct {
	Name            string   `json:"name"             validate:"required,max=150"`
	Description     string   `json:"description"      validate:"omitempty,max=2000"`
	DurationDays    int      `json:"duration_days"    validate:"required,min=1"`
	DepartureDate   string   `json:"departure_date"   validate:"required,datetime=2006-01-02"`
	ReturnDate      string   `json:"return_date"      validate:"required,datetime=2006-01-02"`
	PriceSingle     float64  `json:"price_single"     validate:"required,min=0"`
	PriceDouble     float64  `json:"price_double"     validate:"required,min=0"`
	PriceTriple     float64  `json:"price_triple"     validate:"required,min=0"`
	PriceQuad       float64  `json:"price_quad"       validate:"required,min=0"`
	DiscountPercent float64  `json:"discount_percent" validate:"omitempty,min=0,max=100"`
	Inclusions      []string `json:"inclusions"       validate:"omitempty,dive,max=100"`
	Active          *bool    `json:"active"           validate:"omitempty"`
}

func (c *CreatePackageRequest) ToModel(user string) (model.Package, error) {
	departure, err := time.Parse(constant.DateOnlyFormat, c.DepartureDate)
	if err != nil {
		return model.Package{}, err
	}

	returnDate, err := time.Parse(constant.DateOnlyFormat, c.ReturnDate)
	if err != nil {
		return model.Package{}, err
	}

	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Package{
		ID:              uuid.NewString(),
		Name:            c.Name,
		Description:     c.Description,
		DurationDays:    c.DurationDays,
		DepartureDate:   departure,
		ReturnDate:      returnDate,
		PriceSingle:     c.PriceSingle,
		PriceDouble:     c.PriceDouble,
		PriceTriple:     c.PriceTriple,
		PriceQuad:       c.PriceQuad,
		DiscountPercent: c.DiscountPercent,
		Inclusions:      c.Inclusions,
		Active:          active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdatePackageRequest struct {
	Name            string   `db:"name"             json:"name"             validate:"omitempty,max=150"`
	Description     string   `db:"description"      json:"description"      validate:"omitempty,max=2000"`
	DurationDays    *int     `db:"duration_days"    json:"duration_days"    validate:"omitempty,min=1"`
	PriceSingle     *float64 `db:"price_single"     json:"price_single"     validate:"omitempty,min=0"`
	PriceDouble     *float64 `db:"price_double"     json:"price_double"     validate:"omitempty,min=0"`
	PriceTriple     *float64 `db:"price_triple"     json:"price_triple"     validate:"omitempty,min=0"`
	PriceQuad       *float64 `db:"price_quad"       json:"price_quad"       validate:"omitempty,min=0"`
	DiscountPercent *float64 `db:"discount_percent" json:"discount_percent" validate:"omitempty,min=0,max=100"`
	Active          *bool    `db:"active"           json:"active"           validate:"omitempty"`
}

type PackageResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	DurationDays    int      `json:"duration_days"`
	DepartureDate   string   `json:"departure_date"`
	ReturnDate      string   `json:"return_date"`
	PriceSingle     float64  `json:"price_single"`
	PriceDouble     float64  `json:"price_double"`
	PriceTriple     float64  `json:"price_triple"`
	PriceQuad       float64  `json:"price_quad"`
	DiscountPercent float64  `json:"discount_percent"`
	Inclusions      []string `json:"inclusions"`
	Images          []string `json:"images"`
	Active          bool     `json:"active"`
	gDto.Metadata
}

func (r *PackageResponse) FromModel(mod model.Package) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Description = mod.Description
	r.DurationDays = mod.DurationDays
	r.DepartureDate = mod.DepartureDate.Format(constant.DateOnlyFormat)
	r.ReturnDate = mod.ReturnDate.Format(constant.DateOnlyFormat)
	r.PriceSingle = mod.PriceSingle
	r.PriceDouble = mod.PriceDouble
	r.PriceTriple = mod.PriceTriple
	r.PriceQuad = mod.PriceQuad
	r.DiscountPercent = mod.DiscountPercent
	r.Inclusions = mod.Inclusions
	r.Images = mod.Images
	r.Active = mod.Active
	r.Metadata.FromModel(mod.Metadata)
}

type GetPackagesResponse struct {
	Packages  []PackageResponse `json:"packages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPackagesResponse) FromModels(models []model.Package, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Packages = make([]PackageResponse, len(models))
	for i, mod := range models {
		r.Packages[i].FromModel(mod)
	}
}

// QuoteRequest prices a package for a tier and group size without creating
// a booking.
type QuoteRequest struct {
	SharingTier string `json:"sharing_tier" validate:"required,oneof=single double triple quad"`
	Travelers   int    `json:"travelers"    validate:"required,min=1"`
}

type QuoteResponse struct {
	PackageID       string  `json:"package_id"`
	SharingTier     string  `json:"sharing_tier"`
	Travelers       int     `json:"travelers"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
	Total           float64 `json:"total"`
}
