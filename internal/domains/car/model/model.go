package model

import (
	"github.com/lib/pq"

	"musafir/shared/model"
)

const (
	TableName  = "cars"
	EntityName = "car"

	FieldID           = "id"
	FieldMake         = "make"
	FieldCarModel     = "car_model"
	FieldYear         = "year"
	FieldSeats        = "seats"
	FieldTransmission = "transmission"
	FieldFuelType     = "fuel_type"
	FieldPricePerDay  = "price_per_day"
	FieldCity         = "city"
	FieldStatus       = "status"
	FieldCreatedBy    = "created_by"
)

// Car listing statuses. A listing only becomes bookable once an admin
// approves it.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusBlocked  = "blocked"
)

type Car struct {
	ID           string         `db:"id"`
	Make         string         `db:"make"`
	CarModel     string         `db:"car_model"`
	Year         int            `db:"year"`
	Seats        int            `db:"seats"`
	Transmission string         `db:"transmission"`
	FuelType     string         `db:"fuel_type"`
	PricePerDay  float64        `db:"price_per_day"`
	City         string         `db:"city"`
	Status       string         `db:"status"`
	Images       pq.StringArray `db:"images"`
	model.Metadata
}
