package dto

import (
	"time"

	"github.com/google/uuid"

	bookingDto "musafir/internal/domains/booking/model/dto"
	"musafir/internal/domains/flight/model"
	"musafir/shared"
	"musafir/shared/constant"
	gDto "musafir/shared/dto"
	gModel "musafir/shared/model"
	"musafir/shared/timezone"
)

type CreateTicketRequest struct {
	Airline         string  `json:"airline"          validate:"required,max=100"`
	FlightNumber    string  `json:"flight_number"    validate:"required,max=10"`
	Origin          string  `json:"origin"           validate:"required,len=3,alpha"`
	Destination     string  `json:"destination"      validate:"required,len=3,alpha,nefield=Origin"`
	DepartureAt     string  `json:"departure_at"     validate:"required"`
	ArrivalAt       string  `json:"arrival_at"       validate:"required"`
	Price           float64 `json:"price"            validate:"required,min=0"`
	DiscountPercent float64 `json:"discount_percent" validate:"omitempty,min=0,max=100"`
	SeatsAvailable  int     `json:"seats_available"  validate:"required,min=1"`
	Cabin           string  `json:"cabin"            validate:"required,oneof=economy business first"`
	Active          *bool   `json:"active"           validate:"omitempty"`
}

func (c *CreateTicketRequest) ToModel(user string) (model.Ticket, error) {
	departure, err := time.Parse(constant.DateFormat, c.DepartureAt)
	if err != nil {
		return model.Ticket{}, err
	}

	arrival, err := time.Parse(constant.DateFormat, c.ArrivalAt)
	if err != nil {
		return model.Ticket{}, err
	}

	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Ticket{
		ID:              uuid.NewString(),
		Airline:         c.Airline,
		FlightNumber:    c.FlightNumber,
		Origin:          c.Origin,
		Destination:     c.Destination,
		DepartureAt:     departure,
		ArrivalAt:       arrival,
		Price:           c.Price,
		DiscountPercent: c.DiscountPercent,
		SeatsAvailable:  c.SeatsAvailable,
		Cabin:           c.Cabin,
		Active:          active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateTicketRequest struct {
	Price           *float64 `db:"price"            json:"price"            validate:"omitempty,min=0"`
	DiscountPercent *float64 `db:"discount_percent" json:"discount_percent" validate:"omitempty,min=0,max=100"`
	SeatsAvailable  *int     `db:"seats_available"  json:"seats_available"  validate:"omitempty,min=0"`
	Active          *bool    `db:"active"           json:"active"           validate:"omitempty"`
}

type SearchTicketsRequest struct {
	Origin      string `json:"origin"      validate:"omitempty,len=3,alpha"`
	Destination string `json:"destination" validate:"omitempty,len=3,alpha"`
	Date        string `json:"date"        validate:"omitempty,datetime=2006-01-02"`
	Cabin       string `json:"cabin"       validate:"omitempty,oneof=economy business first"`
}

type TicketResponse struct {
	ID              string  `json:"id"`
	Airline         string  `json:"airline"`
	FlightNumber    string  `json:"flight_number"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	DepartureAt     string  `json:"departure_at"`
	ArrivalAt       string  `json:"arrival_at"`
	Price           float64 `json:"price"`
	DiscountPercent float64 `json:"discount_percent"`
	SeatsAvailable  int     `json:"seats_available"`
	Cabin           string  `json:"cabin"`
	Active          bool    `json:"active"`
	gDto.Metadata
}

func (r *TicketResponse) FromModel(mod model.Ticket) {
	r.ID = mod.ID
	r.Airline = mod.Airline
	r.FlightNumber = mod.FlightNumber
	r.Origin = mod.Origin
	r.Destination = mod.Destination
	r.DepartureAt = mod.DepartureAt.Format(constant.DateFormat)
	r.ArrivalAt = mod.ArrivalAt.Format(constant.DateFormat)
	r.Price = mod.Price
	r.DiscountPercent = mod.DiscountPercent
	r.SeatsAvailable = mod.SeatsAvailable
	r.Cabin = mod.Cabin
	r.Active = mod.Active
	r.Metadata.FromModel(mod.Metadata)
}

type GetTicketsResponse struct {
	Tickets   []TicketResponse `json:"tickets"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetTicketsResponse) FromModels(models []model.Ticket, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tickets = make([]TicketResponse, len(models))
	for i, mod := range models {
		r.Tickets[i].FromModel(mod)
	}
}

// MyFlightsResponse partitions a traveler's flight bookings around now.
type MyFlightsResponse struct {
	Upcoming []bookingDto.BookingResponse `json:"upcoming"`
	Past     []bookingDto.BookingResponse `json:"past"`
}
