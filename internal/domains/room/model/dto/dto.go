package dto

import (
	"github.com/google/uuid"

	"musafir/internal/domains/room/model"
	"musafir/shared"
	gDto "musafir/shared/dto"
	gModel "musafir/shared/model"
	"musafir/shared/timezone"
)

type CreateRoomRequest struct {
	HotelID       string   `json:"hotel_id"        validate:"required,uuid"`
	Name          string   `json:"name"            validate:"required,max=100"`
	RoomType      string   `json:"room_type"       validate:"required,oneof=single double twin suite family"`
	Capacity      int      `json:"capacity"        validate:"required,min=1"`
	PricePerNight float64  `json:"price_per_night" validate:"required,min=0"`
	Quantity      int      `json:"quantity"        validate:"required,min=1"`
	Amenities     []string `json:"amenities"       validate:"omitempty,dive,max=50"`
	Active        *bool    `json:"active"          validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Room{
		ID:            uuid.NewString(),
		HotelID:       c.HotelID,
		Name:          c.Name,
		RoomType:      c.RoomType,
		Capacity:      c.Capacity,
		PricePerNight: c.PricePerNight,
		Quantity:      c.Quantity,
		Amenities:     c.Amenities,
		Active:        active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name          string   `db:"name"            json:"name"            validate:"omitempty,max=100"`
	RoomType      string   `db:"room_type"       json:"room_type"       validate:"omitempty,oneof=single double twin suite family"`
	Capacity      *int     `db:"capacity"        json:"capacity"        validate:"omitempty,min=1"`
	PricePerNight *float64 `db:"price_per_night" json:"price_per_night" validate:"omitempty,min=0"`
	Quantity      *int     `db:"quantity"        json:"quantity"        validate:"omitempty,min=1"`
	Active        *bool    `db:"active"          json:"active"          validate:"omitempty"`
}

type RoomResponse struct {
	ID            string   `json:"id"`
	HotelID       string   `json:"hotel_id"`
	Name          string   `json:"name"`
	RoomType      string   `json:"room_type"`
	Capacity      int      `json:"capacity"`
	PricePerNight float64  `json:"price_per_night"`
	Quantity      int      `json:"quantity"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	Active        bool     `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(mod model.Room) {
	r.ID = mod.ID
	r.HotelID = mod.HotelID
	r.Name = mod.Name
	r.RoomType = mod.RoomType
	r.Capacity = mod.Capacity
	r.PricePerNight = mod.PricePerNight
	r.Quantity = mod.Quantity
	r.Amenities = mod.Amenities
	r.Images = mod.Images
	r.Active = mod.Active
	r.Metadata.FromModel(mod.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
