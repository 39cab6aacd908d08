// file: internals/features/users/auth/dto/auth_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	umodel "sekolahku_backend/internals/features/users/auth/model"
)

type RegisterDTO struct {
	UserEmail    string `json:"user_email" validate:"required,email,max=120"`
	UserPassword string `json:"user_password" validate:"required,min=8,max=72"`
	UserFullName string `json:"user_full_name" validate:"required,max=120"`
	UserRole     string `json:"user_role" validate:"omitempty,oneof=user teacher accountant admin owner"`
	UserSchoolID *int   `json:"user_school_id,omitempty" validate:"omitempty,min=0,max=9999"`
}

type LoginDTO struct {
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required"`
}

type UserResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	UserEmail    string    `json:"user_email"`
	UserFullName string    `json:"user_full_name"`
	UserRole     string    `json:"user_role"`
	UserSchoolID *int      `json:"user_school_id,omitempty"`
	UserCreatedAt time.Time `json:"user_created_at"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

func ToUserResponse(m umodel.User) UserResponse {
	return UserResponse{
		UserID:        m.UserID,
		UserEmail:     m.UserEmail,
		UserFullName:  m.UserFullName,
		UserRole:      m.UserRole,
		UserSchoolID:  m.UserSchoolID,
		UserCreatedAt: m.UserCreatedAt,
	}
}
