package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// SignupRequest registers a staff account. ADMIN sign-ups must carry the
// configured admin registration key.
type SignupRequest struct {
	FirstName      string     `json:"first_name" validate:"required,min=2,max=50"`
	LastName       string     `json:"last_name" validate:"required,min=2,max=50"`
	Email          string     `json:"email" validate:"required,email"`
	Password       string     `json:"password" validate:"required,min=6"`
	Role           string     `json:"role" validate:"required"`
	AdminKey       string     `json:"admin_key" validate:"omitempty"`
	DepartmentID   *uuid.UUID `json:"department_id" validate:"omitempty"`
	PhoneNumber    string     `json:"phone_number" validate:"omitempty,max=30"`
	Specialization string     `json:"specialization" validate:"omitempty,max=150"`
	LicenseNumber  string     `json:"license_number" validate:"omitempty,max=100"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	FullName       string     `json:"full_name"`
	Role           string     `json:"role"`
	Status         string     `json:"status"`
	DepartmentID   *uuid.UUID `json:"department_id,omitempty"`
	DepartmentName string     `json:"department_name,omitempty"`
	PhoneNumber    string     `json:"phone_number,omitempty"`
	Specialization string     `json:"specialization,omitempty"`
	LicenseNumber  string     `json:"license_number,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
}
