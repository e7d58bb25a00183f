package dto

import (
	"time"

	"musafir/internal/domains/booking/model"
	"musafir/shared"
	"musafir/shared/constant"
	gDto "musafir/shared/dto"
)

type CreateBookingRequest struct {
	Vertical      string `json:"vertical"       validate:"required,oneof=hotel car flight umrah"`
	ItemID        string `json:"item_id"        validate:"required,uuid"`
	CheckIn       string `json:"check_in"       validate:"omitempty,datetime=2006-01-02"`
	CheckOut      string `json:"check_out"      validate:"omitempty,datetime=2006-01-02"`
	TravelDate    string `json:"travel_date"    validate:"omitempty,datetime=2006-01-02"`
	Travelers     int    `json:"travelers"      validate:"required,min=1"`
	SharingTier   string `json:"sharing_tier"   validate:"omitempty,oneof=single double triple quad"`
	TermsAccepted bool   `json:"terms_accepted" validate:"omitempty"`
	Currency      string `json:"currency"       validate:"omitempty,len=3"`
}

type BookingEvent struct {
	ID         string    `json:"id"`
	Vertical   string    `json:"vertical"`
	Status     string    `json:"status"`
	UserID     string    `json:"user_id"`
	VendorID   string    `json:"vendor_id"`
	Total      float64   `json:"total"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

type CheckoutResponse struct {
	BookingID  string  `json:"booking_id"`
	SessionID  string  `json:"session_id"`
	PaymentURL string  `json:"payment_url"`
	Total      float64 `json:"total"`
	Currency   string  `json:"currency"`
}

type BookingResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	VendorID        string  `json:"vendor_id"`
	Vertical        string  `json:"vertical"`
	ItemID          string  `json:"item_id"`
	ItemName        string  `json:"item_name"`
	SharingTier     string  `json:"sharing_tier,omitempty"`
	CheckIn         string  `json:"check_in,omitempty"`
	CheckOut        string  `json:"check_out,omitempty"`
	TravelDate      string  `json:"travel_date,omitempty"`
	Travelers       int     `json:"travelers"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
	Total           float64 `json:"total"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
	PNR             string  `json:"pnr,omitempty"`
	PaymentURL      string  `json:"payment_url,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.UserID = mod.UserID
	r.VendorID = mod.VendorID
	r.Vertical = mod.Vertical
	r.ItemID = mod.ItemID
	r.ItemName = mod.ItemName
	r.SharingTier = mod.SharingTier
	r.CheckIn = formatDate(mod.CheckIn)
	r.CheckOut = formatDate(mod.CheckOut)
	r.TravelDate = formatDate(mod.TravelDate)
	r.Travelers = mod.Travelers
	r.UnitPrice = mod.UnitPrice
	r.DiscountPercent = mod.DiscountPercent
	r.Total = mod.Total
	r.Currency = mod.Currency
	r.Status = mod.Status
	r.PNR = mod.PNR
	r.PaymentURL = mod.PaymentURL
	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(constant.DateOnlyFormat)
}
