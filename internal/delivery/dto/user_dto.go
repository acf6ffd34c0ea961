package dto

import "github.com/google/uuid"

// Request DTOs

type CreateUserRequest struct {
	FirstName      string     `json:"first_name" validate:"required,min=2,max=50"`
	LastName       string     `json:"last_name" validate:"required,min=2,max=50"`
	Email          string     `json:"email" validate:"required,email"`
	Password       string     `json:"password" validate:"required,min=6"`
	Role           string     `json:"role" validate:"required"`
	DepartmentID   *uuid.UUID `json:"department_id" validate:"omitempty"`
	PhoneNumber    string     `json:"phone_number" validate:"omitempty,max=30"`
	Specialization string     `json:"specialization" validate:"omitempty,max=150"`
	LicenseNumber  string     `json:"license_number" validate:"omitempty,max=100"`
	Status         string     `json:"status" validate:"omitempty"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
