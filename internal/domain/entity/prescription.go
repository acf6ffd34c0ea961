package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultPrescriptionDays is used to compute the expiry date when no duration is given.
const DefaultPrescriptionDays = 30

type Prescription struct {
	ID               uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentID    *uuid.UUID         `gorm:"type:uuid" json:"appointment_id,omitempty"`
	PrescriptionDate time.Time          `gorm:"not null" json:"prescription_date"`
	MedicationName   string             `gorm:"type:varchar(255);not null" json:"medication_name"`
	Dosage           string             `gorm:"type:varchar(100);not null" json:"dosage"`
	Frequency        string             `gorm:"type:varchar(100);not null" json:"frequency"`
	DurationDays     *int               `json:"duration_days,omitempty"`
	Instructions     string             `gorm:"type:text" json:"instructions,omitempty"`
	Route            string             `gorm:"type:varchar(50)" json:"route,omitempty"`
	Strength         string             `gorm:"type:varchar(50)" json:"strength,omitempty"`
	Quantity         *int               `json:"quantity,omitempty"`
	Refills          *int               `json:"refills,omitempty"`
	ExpiryDate       time.Time          `gorm:"type:date" json:"expiry_date"`
	Status           PrescriptionStatus `gorm:"type:varchar(20);not null;default:ACTIVE;index" json:"status"`
	Notes            string             `gorm:"type:text" json:"notes,omitempty"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// PrescriptionExpiry returns the calendar date a prescription written at
// issued stops being valid.
func PrescriptionExpiry(issued time.Time, durationDays *int) time.Time {
	days := DefaultPrescriptionDays
	if durationDays != nil && *durationDays > 0 {
		days = *durationDays
	}
	y, m, d := issued.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, issued.Location()).AddDate(0, 0, days)
}
