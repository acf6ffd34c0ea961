package entity

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID                  uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID            uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentDateTime time.Time         `gorm:"not null;index" json:"appointment_date_time"`
	AppointmentType     AppointmentType   `gorm:"type:varchar(30);not null;index" json:"appointment_type"`
	Status              AppointmentStatus `gorm:"type:varchar(20);not null;default:SCHEDULED;index" json:"status"`
	Notes               string            `gorm:"type:text" json:"notes,omitempty"`
	Symptoms            string            `gorm:"type:text" json:"symptoms,omitempty"`
	Diagnosis           string            `gorm:"type:text" json:"diagnosis,omitempty"`
	Prescription        string            `gorm:"type:text" json:"prescription,omitempty"`
	CreatedAt           time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
