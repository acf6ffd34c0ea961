package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDepartmentRequest struct {
	Name               string     `json:"name" validate:"required,min=2,max=150"`
	Description        string     `json:"description" validate:"omitempty"`
	Location           string     `json:"location" validate:"omitempty,max=255"`
	PhoneNumber        string     `json:"phone_number" validate:"omitempty,max=30"`
	Email              string     `json:"email" validate:"omitempty,email"`
	HeadOfDepartmentID *uuid.UUID `json:"head_of_department_id" validate:"omitempty"`
	Capacity           int        `json:"capacity" validate:"gte=0"`
	Specialization     string     `json:"specialization" validate:"omitempty,max=150"`
}

type UpdateDepartmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type DepartmentResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description,omitempty"`
	Location           string     `json:"location,omitempty"`
	PhoneNumber        string     `json:"phone_number,omitempty"`
	Email              string     `json:"email,omitempty"`
	HeadOfDepartmentID *uuid.UUID `json:"head_of_department_id,omitempty"`
	HeadOfDepartment   string     `json:"head_of_department,omitempty"`
	Status             string     `json:"status"`
	Capacity           int        `json:"capacity"`
	Specialization     string     `json:"specialization,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	Total       int                  `json:"total"`
}

type DepartmentDoctorCountResponse struct {
	DepartmentID uuid.UUID `json:"department_id"`
	DoctorCount  int64     `json:"doctor_count"`
}
