package model

import (
	"time"

	"github.com/lib/pq"

	"musafir/shared/model"
)

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID               = "id"
	FieldName             = "name"
	FieldDescription      = "description"
	FieldAddress          = "address"
	FieldCity             = "city"
	FieldState            = "state"
	FieldZip              = "zip"
	FieldCountry          = "country"
	FieldStarRating       = "star_rating"
	FieldAveragePrice     = "average_price"
	FieldCheckInTime      = "check_in_time"
	FieldCheckOutTime     = "check_out_time"
	FieldAvailableFrom    = "available_from"
	FieldAvailableTo      = "available_to"
	FieldAmenities        = "amenities"
	FieldTags             = "tags"
	FieldImages           = "images"
	FieldStatus           = "status"
	FieldRegistrationStep = "registration_step"
	FieldCreatedBy        = "created_by"
)

// Registration wizard steps, in order.
const (
	StepBasicInfo = "basic_info"
	StepLocation  = "location"
	StepAmenities = "amenities"
	StepImages    = "images"
	StepTags      = "tags"
)

// RegistrationSteps returns the wizard step sequence for hotel registration.
func RegistrationSteps() []string {
	return []string{StepBasicInfo, StepLocation, StepAmenities, StepImages, StepTags}
}

type Hotel struct {
	ID               string         `db:"id"`
	Name             string         `db:"name"`
	Description      string         `db:"description"`
	Address          string         `db:"address"`
	City             string         `db:"city"`
	State            string         `db:"state"`
	Zip              string         `db:"zip"`
	Country          string         `db:"country"`
	StarRating       int            `db:"star_rating"`
	AveragePrice     float64        `db:"average_price"`
	CheckInTime      string         `db:"check_in_time"`
	CheckOutTime     string         `db:"check_out_time"`
	AvailableFrom    *time.Time     `db:"available_from"`
	AvailableTo      *time.Time     `db:"available_to"`
	Amenities        pq.StringArray `db:"amenities"`
	Tags             pq.StringArray `db:"tags"`
	Images           pq.StringArray `db:"images"`
	Status           string         `db:"status"`
	RegistrationStep string         `db:"registration_step"`
	model.Metadata
}
