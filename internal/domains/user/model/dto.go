package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"full_name"`
	CampusStatus string `json:"campus_status"`
}

func (r RegisterRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email is not valid"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 72).Error("password must be 8-72 characters"),
		),
		validation.Field(&r.FullName,
			validation.Required.Error("full_name is required"),
			validation.Length(2, 100),
		),
	)
	if err != nil {
		return err
	}

	if r.CampusStatus != "" && !ValidCampusStatus(r.CampusStatus) {
		return ErrInvalidCampus
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required.Error("refresh_token is required")),
	)
}

type UpdateProfileRequest struct {
	FullName     *string `json:"full_name,omitempty"`
	CampusStatus *string `json:"campus_status,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	if r.FullName != nil {
		if err := validation.Validate(*r.FullName, validation.Required, validation.Length(2, 100)); err != nil {
			return err
		}
	}
	if r.CampusStatus != nil && !ValidCampusStatus(*r.CampusStatus) {
		return ErrInvalidCampus
	}
	return nil
}

type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	CampusStatus string    `json:"campus_status"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         u.Role,
		CampusStatus: u.CampusStatus,
		CreatedAt:    u.CreatedAt,
	}
}

type AuthResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresAt    time.Time     `json:"expires_at"`
	User         *UserResponse `json:"user"`
}
