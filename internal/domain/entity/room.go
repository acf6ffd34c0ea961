package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Room struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoomNumber       string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"room_number"`
	RoomType         RoomType        `gorm:"type:varchar(30);not null;index" json:"room_type"`
	DepartmentID     *uuid.UUID      `gorm:"type:uuid;index" json:"department_id,omitempty"`
	Status           RoomStatus      `gorm:"type:varchar(20);not null;default:AVAILABLE;index" json:"status"`
	Floor            string          `gorm:"type:varchar(20)" json:"floor,omitempty"`
	Building         string          `gorm:"type:varchar(100)" json:"building,omitempty"`
	Capacity         int             `gorm:"not null;default:1" json:"capacity"`
	Description      string          `gorm:"type:text" json:"description,omitempty"`
	Equipment        string          `gorm:"type:text" json:"equipment,omitempty"`
	DailyRate        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"daily_rate"`
	CurrentPatientID *uuid.UUID      `gorm:"type:uuid" json:"current_patient_id,omitempty"`
	LastCleaned      *time.Time      `json:"last_cleaned,omitempty"`
	LastMaintenance  *time.Time      `json:"last_maintenance,omitempty"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Department     *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	CurrentPatient *Patient    `gorm:"foreignKey:CurrentPatientID" json:"current_patient,omitempty"`
}

func (Room) TableName() string {
	return "rooms"
}
