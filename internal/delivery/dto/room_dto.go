package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateRoomRequest struct {
	RoomNumber   string          `json:"room_number" validate:"required,max=20"`
	RoomType     string          `json:"room_type" validate:"required"`
	DepartmentID *uuid.UUID      `json:"department_id" validate:"omitempty"`
	Floor        string          `json:"floor" validate:"omitempty,max=20"`
	Building     string          `json:"building" validate:"omitempty,max=100"`
	Capacity     int             `json:"capacity" validate:"omitempty,gte=1"`
	Description  string          `json:"description" validate:"omitempty"`
	Equipment    string          `json:"equipment" validate:"omitempty"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type AssignRoomRequest struct {
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
}

// Response DTOs

type RoomResponse struct {
	ID                 uuid.UUID       `json:"id"`
	RoomNumber         string          `json:"room_number"`
	RoomType           string          `json:"room_type"`
	Status             string          `json:"status"`
	DepartmentID       *uuid.UUID      `json:"department_id,omitempty"`
	DepartmentName     string          `json:"department_name,omitempty"`
	Floor              string          `json:"floor,omitempty"`
	Building           string          `json:"building,omitempty"`
	Capacity           int             `json:"capacity"`
	Description        string          `json:"description,omitempty"`
	Equipment          string          `json:"equipment,omitempty"`
	DailyRate          decimal.Decimal `json:"daily_rate"`
	CurrentPatientID   *uuid.UUID      `json:"current_patient_id,omitempty"`
	CurrentPatientName string          `json:"current_patient_name,omitempty"`
	LastCleaned        *time.Time      `json:"last_cleaned,omitempty"`
	LastMaintenance    *time.Time      `json:"last_maintenance,omitempty"`
}

type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	Total int            `json:"total"`
}
