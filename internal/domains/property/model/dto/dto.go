package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"musafir/internal/domains/property/model"
	"musafir/shared"
	gDto "musafir/shared/dto"
	gModel "musafir/shared/model"
	"musafir/shared/timezone"
)

// PropertySortKeys whitelists the public sort keys for property search.
var PropertySortKeys = map[string]gDto.SortKey{
	"price_asc":  {Column: model.FieldPrice, Direction: gDto.SortDirAsc},
	"price_desc": {Column: model.FieldPrice, Direction: gDto.SortDirDesc},
	"newest":     {Column: model.FieldCreatedAt, Direction: gDto.SortDirDesc},
	"bedrooms":   {Column: model.FieldBedrooms, Direction: gDto.SortDirDesc},
	"area":       {Column: model.FieldAreaSqm, Direction: gDto.SortDirDesc},
}

type CreatePropertyRequest struct {
	Title        string   `json:"title"         validate:"required,max=150"`
	Description  string   `json:"description"   validate:"omitempty,max=2000"`
	PropertyType string   `json:"property_type" validate:"required,oneof=apartment villa house land office"`
	Purpose      string   `json:"purpose"       validate:"required,oneof=sale rent"`
	City         string   `json:"city"          validate:"required,max=100"`
	Address      string   `json:"address"       validate:"omitempty,max=250"`
	Price        float64  `json:"price"         validate:"required,min=0"`
	Bedrooms     int      `json:"bedrooms"      validate:"omitempty,min=0,max=50"`
	Bathrooms    int      `json:"bathrooms"     validate:"omitempty,min=0,max=50"`
	AreaSqm      float64  `json:"area_sqm"      validate:"omitempty,min=0"`
	Amenities    []string `json:"amenities"     validate:"omitempty,dive,max=50"`
	Active       *bool    `json:"active"        validate:"omitempty"`
}

func (c *CreatePropertyRequest) ToModel(user string) model.Property {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Property{
		ID:           uuid.NewString(),
		Title:        c.Title,
		Description:  c.Description,
		PropertyType: c.PropertyType,
		Purpose:      c.Purpose,
		City:         c.City,
		Address:      c.Address,
		Price:        c.Price,
		Bedrooms:     c.Bedrooms,
		Bathrooms:    c.Bathrooms,
		AreaSqm:      c.AreaSqm,
		Amenities:    c.Amenities,
		Active:       active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePropertyRequest struct {
	Title       string   `db:"title"       json:"title"       validate:"omitempty,max=150"`
	Description string   `db:"description" json:"description" validate:"omitempty,max=2000"`
	City        string   `db:"city"        json:"city"        validate:"omitempty,max=100"`
	Address     string   `db:"address"     json:"address"     validate:"omitempty,max=250"`
	Price       *float64 `db:"price"       json:"price"       validate:"omitempty,min=0"`
	Bedrooms    *int     `db:"bedrooms"    json:"bedrooms"    validate:"omitempty,min=0,max=50"`
	Bathrooms   *int     `db:"bathrooms"   json:"bathrooms"   validate:"omitempty,min=0,max=50"`
	AreaSqm     *float64 `db:"area_sqm"    json:"area_sqm"    validate:"omitempty,min=0"`
	Active      *bool    `db:"active"      json:"active"      validate:"omitempty"`
}

// SearchPropertiesRequest carries the public search panel filters. All
// fields are optional; absent ones simply add no constraint.
type SearchPropertiesRequest struct {
	City         string   `json:"city"          validate:"omitempty,max=100"`
	PropertyType string   `json:"property_type" validate:"omitempty,oneof=apartment villa house land office"`
	Purpose      string   `json:"purpose"       validate:"omitempty,oneof=sale rent"`
	MinPrice     *float64 `json:"min_price"     validate:"omitempty,min=0"`
	MaxPrice     *float64 `json:"max_price"     validate:"omitempty,min=0"`
	Bedrooms     *int     `json:"bedrooms"      validate:"omitempty,min=0,max=50"`
	Sort         string   `json:"sort"          validate:"omitempty,max=20"`
}

type UploadImagesRequest struct {
	Images     []*multipart.FileHeader `json:"images" validate:"required,min=1,dive,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFiles []multipart.File        `json:"-"`
}

type PropertyResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	PropertyType string   `json:"property_type"`
	Purpose      string   `json:"purpose"`
	City         string   `json:"city"`
	Address      string   `json:"address"`
	Price        float64  `json:"price"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	AreaSqm      float64  `json:"area_sqm"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
	Active       bool     `json:"active"`
	gDto.Metadata
}

func (r *PropertyResponse) FromModel(mod model.Property) {
	r.ID = mod.ID
	r.Title = mod.Title
	r.Description = mod.Description
	r.PropertyType = mod.PropertyType
	r.Purpose = mod.Purpose
	r.City = mod.City
	r.Address = mod.Address
	r.Price = mod.Price
	r.Bedrooms = mod.Bedrooms
	r.Bathrooms = mod.Bathrooms
	r.AreaSqm = mod.AreaSqm
	r.Amenities = mod.Amenities
	r.Images = mod.Images
	r.Active = mod.Active
	r.Metadata.FromModel(mod.Metadata)
}

type GetPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetPropertiesResponse) FromModels(models []model.Property, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Properties = make([]PropertyResponse, len(models))
	for i, mod := range models {
		r.Properties[i].FromModel(mod)
	}
}
