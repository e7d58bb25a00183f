package model

import (
	"github.com/lib/pq"

	"musafir/shared/model"
)

const (
	TableName  = "properties"
	EntityName = "property"

	FieldID           = "id"
	FieldTitle        = "title"
	FieldPropertyType = "property_type"
	FieldPurpose      = "purpose"
	FieldCity         = "city"
	FieldPrice        = "price"
	FieldBedrooms     = "bedrooms"
	FieldBathrooms    = "bathrooms"
	FieldAreaSqm      = "area_sqm"
	FieldAmenities    = "amenities"
	FieldImages       = "images"
	FieldActive       = "active"
	FieldCreatedAt    = "created_at"
)

// Listing purposes.
const (
	PurposeSale = "sale"
	PurposeRent = "rent"
)

type Property struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Description  string         `db:"description"`
	PropertyType string         `db:"property_type"`
	Purpose      string         `db:"purpose"`
	City         string         `db:"city"`
	Address      string         `db:"address"`
	Price        float64        `db:"price"`
	Bedrooms     int            `db:"bedrooms"`
	Bathrooms    int            `db:"bathrooms"`
	AreaSqm      float64        `db:"area_sqm"`
	Amenities    pq.StringArray `db:"amenities"`
	Images       pq.StringArray `db:"images"`
	Active       bool           `db:"active"`
	model.Metadata
}
