package model

import (
	"time"

	"musafir/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldVendorID        = "vendor_id"
	FieldVertical        = "vertical"
	FieldItemID          = "item_id"
	FieldItemName        = "item_name"
	FieldSharingTier     = "sharing_tier"
	FieldCheckIn         = "check_in"
	FieldCheckOut        = "check_out"
	FieldTravelDate      = "travel_date"
	FieldTravelers       = "travelers"
	FieldUnitPrice       = "unit_price"
	FieldDiscountPercent = "discount_percent"
	FieldTotal           = "total"
	FieldCurrency        = "currency"
	FieldStatus          = "status"
	FieldPNR             = "pnr"
)

// Booking verticals.
const (
	VerticalHotel  = "hotel"
	VerticalCar    = "car"
	VerticalFlight = "flight"
	VerticalUmrah  = "umrah"
)

type Booking struct {
	ID               string     `db:"id"`
	UserID           string     `db:"user_id"`
	VendorID         string     `db:"vendor_id"`
	Vertical         string     `db:"vertical"`
	ItemID           string     `db:"item_id"`
	ItemName         string     `db:"item_name"`
	SharingTier      string     `db:"sharing_tier"`
	CheckIn          *time.Time `db:"check_in"`
	CheckOut         *time.Time `db:"check_out"`
	TravelDate       *time.Time `db:"travel_date"`
	Travelers        int        `db:"travelers"`
	UnitPrice        float64    `db:"unit_price"`
	DiscountPercent  float64    `db:"discount_percent"`
	Total            float64    `db:"total"`
	Currency         string     `db:"currency"`
	Status           string     `db:"status"`
	TermsAccepted    bool       `db:"terms_accepted"`
	PNR              string     `db:"pnr"`
	PaymentSessionID string     `db:"payment_session_id"`
	PaymentURL       string     `db:"payment_url"`
	model.Metadata
}
