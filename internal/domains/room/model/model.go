package model

import (
	"github.com/lib/pq"

	"musafir/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldHotelID       = "hotel_id"
	FieldName          = "name"
	FieldRoomType      = "room_type"
	FieldCapacity      = "capacity"
	FieldPricePerNight = "price_per_night"
	FieldQuantity      = "quantity"
	FieldActive        = "active"
)

type Room struct {
	ID            string         `db:"id"`
	HotelID       string         `db:"hotel_id"`
	Name          string         `db:"name"`
	RoomType      string         `db:"room_type"`
	Capacity      int            `db:"capacity"`
	PricePerNight float64        `db:"price_per_night"`
	Quantity      int            `db:"quantity"`
	Amenities     pq.StringArray `db:"amenities"`
	Images        pq.StringArray `db:"images"`
	Active        bool           `db:"active"`
	model.Metadata
}
