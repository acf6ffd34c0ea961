package entity

import (
	"time"

	"github.com/google/uuid"
)

type MedicalRecord struct {
	ID                      uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID               uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID                uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentID           *uuid.UUID `gorm:"type:uuid" json:"appointment_id,omitempty"`
	RecordDate              time.Time  `gorm:"not null;index" json:"record_date"`
	ChiefComplaint          string     `gorm:"type:text" json:"chief_complaint,omitempty"`
	HistoryOfPresentIllness string     `gorm:"type:text" json:"history_of_present_illness,omitempty"`
	PhysicalExamination     string     `gorm:"type:text" json:"physical_examination,omitempty"`
	Diagnosis               string     `gorm:"type:text" json:"diagnosis,omitempty"`
	TreatmentPlan           string     `gorm:"type:text" json:"treatment_plan,omitempty"`
	Notes                   string     `gorm:"type:text" json:"notes,omitempty"`
	VitalSigns              string     `gorm:"type:text" json:"vital_signs,omitempty"`
	Allergies               string     `gorm:"type:text" json:"allergies,omitempty"`
	Medications             string     `gorm:"type:text" json:"medications,omitempty"`
	RecordType              RecordType `gorm:"type:varchar(30);not null;index" json:"record_type"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *User    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
