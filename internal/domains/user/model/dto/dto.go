package dto

import (
	"musafir/internal/domains/user/model"
	"musafir/shared"
	gDto "musafir/shared/dto"
)

// UpdateUserRequest is the admin-side update payload.
type UpdateUserRequest struct {
	Name   *string `db:"name"   json:"name"   validate:"omitempty,min=2,max=100"`
	Phone  *string `db:"phone"  json:"phone"  validate:"omitempty,max=20"`
	Role   *string `db:"role"   json:"role"   validate:"omitempty,oneof=admin vendor operator agent user"`
	Active *bool   `db:"active" json:"active"`
}

// UpdateProfileRequest is the self-service update payload.
type UpdateProfileRequest struct {
	Name  *string `db:"name"  json:"name"  validate:"omitempty,min=2,max=100"`
	Phone *string `db:"phone" json:"phone" validate:"omitempty,max=20"`
}

type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Name = user.Name
	r.Email = user.Email
	r.Phone = user.Phone
	r.Role = user.Role
	r.Active = user.Active
	r.Metadata.FromModel(user.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(users []model.User, total, limit int) {
	r.Users = make([]UserResponse, len(users))
	for i, user := range users {
		r.Users[i].FromModel(user)
	}

	r.TotalData = total
	r.TotalPage = shared.CalculateTotalPage(total, limit)
}
