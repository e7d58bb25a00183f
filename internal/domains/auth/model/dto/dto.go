package dto

import (
	"github.com/google/uuid"

	"musafir/infras/jwt"
	"musafir/internal/domains/user/model"
	"musafir/shared/constant"
	gModel "musafir/shared/model"
	"musafir/shared/timezone"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Phone    string `json:"phone"    validate:"omitempty,max=20"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin vendor operator agent user"`
}

func (r *RegisterRequest) ToModel(hashedPassword string) model.User {
	role := constant.RoleUser
	if r.Role != "" {
		role = r.Role
	}

	id := uuid.NewString()

	return model.User{
		ID:       id,
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Password: hashedPassword,
		Role:     role,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  id,
			ModifiedBy: id,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Tokens jwt.TokenPair
}

func (r *TokenResponse) FromModel(user model.User, tokens *jwt.TokenPair) {
	r.UserID = user.ID
	r.Name = user.Name
	r.Email = user.Email
	r.Role = user.Role
	r.Tokens = *tokens
}
