package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Campus status values. The status doubles as the promotion audience
// tag carried in the access token.
const (
	CampusNone    = "NONE"
	CampusStudent = "STUDENT"
	CampusStaff   = "STAFF"
	CampusAlumni  = "ALUMNI"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	CampusStatus string    `json:"campus_status" db:"campus_status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func ValidCampusStatus(status string) bool {
	switch status {
	case CampusNone, CampusStudent, CampusStaff, CampusAlumni:
		return true
	}
	return false
}
