package dto

import (
	"github.com/google/uuid"

	"musafir/internal/domains/car/model"
	"musafir/shared"
	gDto "musafir/shared/dto"
	gModel "musafir/shared/model"
	"musafir/shared/timezone"
)

type CreateCarRequest struct {
	Make         string  `json:"make"          validate:"required,max=50"`
	CarModel     string  `json:"car_model"     validate:"required,max=50"`
	Year         int     `json:"year"          validate:"required,min=1980,max=2100"`
	Seats        int     `json:"seats"         validate:"required,min=1,max=20"`
	Transmission string  `json:"transmission"  validate:"required,oneof=manual automatic"`
	FuelType     string  `json:"fuel_type"     validate:"required,oneof=petrol diesel hybrid electric"`
	PricePerDay  float64 `json:"price_per_day" validate:"required,min=0"`
	City         string  `json:"city"          validate:"required,max=100"`
}

func (c *CreateCarRequest) ToModel(user string) model.Car {
	return model.Car{
		ID:           uuid.NewString(),
		Make:         c.Make,
		CarModel:     c.CarModel,
		Year:         c.Year,
		Seats:        c.Seats,
		Transmission: c.Transmission,
		FuelType:     c.FuelType,
		PricePerDay:  c.PricePerDay,
		City:         c.City,
		Status:       model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCarRequest struct {
	Make         string   `db:"make"          json:"make"          validate:"omitempty,max=50"`
	CarModel     string   `db:"car_model"     json:"car_model"     validate:"omitempty,max=50"`
	Year         *int     `db:"year"          json:"year"          validate:"omitempty,min=1980,max=2100"`
	Seats        *int     `db:"seats"         json:"seats"         validate:"omitempty,min=1,max=20"`
	Transmission string   `db:"transmission"  json:"transmission"  validate:"omitempty,oneof=manual automatic"`
	FuelType     string   `db:"fuel_type"     json:"fuel_type"     validate:"omitempty,oneof=petrol diesel hybrid electric"`
	PricePerDay  *float64 `db:"price_per_day" json:"price_per_day" validate:"omitempty,min=0"`
	City         string   `db:"city"          json:"city"          validate:"omitempty,max=100"`
}

type CarResponse struct {
	ID           string   `json:"id"`
	Make         string   `json:"make"`
	CarModel     string   `json:"car_model"`
	Year         int      `json:"year"`
	Seats        int      `json:"seats"`
	Transmission string   `json:"transmission"`
	FuelType     string   `json:"fuel_type"`
	PricePerDay  float64  `json:"price_per_day"`
	City         string   `json:"city"`
	Status       string   `json:"status"`
	Images       []string `json:"images"`
	gDto.Metadata
}

func (r *CarResponse) FromModel(mod model.Car) {
	r.ID = mod.ID
	r.Make = mod.Make
	r.CarModel = mod.CarModel
	r.Year = mod.Year
	r.Seats = mod.Seats
	r.Transmission = mod.Transmission
	r.FuelType = mod.FuelType
	r.PricePerDay = mod.PricePerDay
	r.City = mod.City
	r.Status = mod.Status
	r.Images = mod.Images
	r.Metadata.FromModel(mod.Metadata)
}

type GetCarsResponse struct {
	Cars      []CarResponse `json:"cars"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetCarsResponse) FromModels(models []model.Car, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Cars = make([]CarResponse, len(models))
	for i, mod := range models {
		r.Cars[i].FromModel(mod)
	}
}

type CarStatsResponse struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Blocked  int `json:"blocked"`
	Bookings int `json:"bookings"`
}
