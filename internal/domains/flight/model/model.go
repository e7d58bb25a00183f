package model

import (
	"time"

	"musafir/shared/model"
)

const (
	TableName  = "flight_tickets"
	EntityName = "flight"

	FieldID              = "id"
	FieldAirline         = "airline"
	FieldFlightNumber    = "flight_number"
	FieldOrigin          = "origin"
	FieldDestination     = "destination"
	FieldDepartureAt     = "departure_at"
	FieldArrivalAt       = "arrival_at"
	FieldPrice           = "price"
	FieldDiscountPercent = "discount_percent"
	FieldSeatsAvailable  = "seats_available"
	FieldCabin           = "cabin"
	FieldActive          = "active"
)

type Ticket struct {
	ID              string    `db:"id"`
	Airline         string    `db:"airline"`
	FlightNumber    string    `db:"flight_number"`
	Origin          string    `db:"origin"`
	Destination     string    `db:"destination"`
	DepartureAt     time.Time `db:"departure_at"`
	ArrivalAt       time.Time `db:"arrival_at"`
	Price           float64   `db:"price"`
	DiscountPercent float64   `db:"discount_percent"`
	SeatsAvailable  int       `db:"seats_available"`
	Cabin           string    `db:"cabin"`
	Active          bool      `db:"active"`
	model.Metadata
}
