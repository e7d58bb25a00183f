package model

import (
	"time"

	"github.com/lib/pq"

	"musafir/shared/model"
)

const (
	TableName  = "umrah_packages"
	EntityName = "umrah_package"

	FieldID              = "id"
	FieldName            = "name"
	FieldDurationDays    = "duration_days"
	FieldDepartureDate   = "departure_date"
	FieldDiscountPercent = "discount_percent"
	FieldActive          = "active"
	FieldCreatedBy       = "created_by"
)

// Room sharing tiers. The tier picks which per-person price applies.
const (
	TierSingle = "single"
	TierDouble = "double"
	TierTriple = "triple"
	TierQuad   = "quad"
)

type Package struct {
	ID              string         `db:"id"`
	Name            string         `db:"name"`
	Description     string         `db:"description"`
	DurationDays    int            `db:"duration_days"`
	DepartureDate   time.Time      `db:"departure_date"`
	ReturnDate      time.Time      `db:"return_date"`
	PriceSingle     float64        `db:"price_single"`
	PriceDouble     float64        `db:"price_double"`
	PriceTriple     float64        `db:"price_triple"`
	PriceQuad       float64        `db:"price_quad"`
	DiscountPercent float64        `db:"discount_percent"`
	Inclusions      pq.StringArray `db:"inclusions"`
	Images          pq.StringArray `db:"images"`
	Active          bool           `db:"active"`
	model.Metadata
}

// TierPrice returns the per-person price for a sharing tier, or false when
// the tier is unknown.
func (p Package) TierPrice(tier string) (float64, bool) {
	switch tier {
	case TierSingle:
		return p.PriceSingle, true
	case TierDouble:
		return p.PriceDouble, true
	case TierTriple:
		return p.PriceTriple, true
	case TierQuad:
		return p.PriceQuad, true
	default:
		return 0, false
	}
}
