package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a person registered for care. PatientCode is the human-facing
// identifier of the form P0001 and is unique across all patients.
type Patient struct {
	ID                    uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientCode           string        `gorm:"type:varchar(20);uniqueIndex;not null" json:"patient_id"`
	FirstName             string        `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName              string        `gorm:"type:varchar(100);not null;index" json:"last_name"`
	Email                 string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone                 string        `gorm:"type:varchar(30);not null" json:"phone"`
	DateOfBirth           time.Time     `gorm:"type:date;not null" json:"date_of_birth"`
	Gender                Gender        `gorm:"type:varchar(10);not null;index" json:"gender"`
	Address               string        `gorm:"type:text;not null" json:"address"`
	City                  string        `gorm:"type:varchar(100)" json:"city,omitempty"`
	State                 string        `gorm:"type:varchar(100)" json:"state,omitempty"`
	ZipCode               string        `gorm:"type:varchar(20)" json:"zip_code,omitempty"`
	Country               string        `gorm:"type:varchar(100)" json:"country,omitempty"`
	Nationality           string        `gorm:"type:varchar(100)" json:"nationality,omitempty"`
	BloodGroup            *BloodGroup   `gorm:"type:varchar(20);index" json:"blood_group,omitempty"`
	MaritalStatus         MaritalStatus `gorm:"type:varchar(20)" json:"marital_status,omitempty"`
	Occupation            string        `gorm:"type:varchar(150)" json:"occupation,omitempty"`
	MedicalHistory        string        `gorm:"type:text" json:"medical_history,omitempty"`
	Allergies             string        `gorm:"type:text" json:"allergies,omitempty"`
	CurrentMedications    string        `gorm:"type:text" json:"current_medications,omitempty"`
	EmergencyContact      string        `gorm:"type:varchar(150)" json:"emergency_contact,omitempty"`
	EmergencyPhone        string        `gorm:"type:varchar(30)" json:"emergency_phone,omitempty"`
	EmergencyRelation     string        `gorm:"type:varchar(50)" json:"emergency_relation,omitempty"`
	InsuranceProvider     string        `gorm:"type:varchar(150)" json:"insurance_provider,omitempty"`
	InsurancePolicyNumber string        `gorm:"type:varchar(100)" json:"insurance_policy_number,omitempty"`
	InsuranceGroupNumber  string        `gorm:"type:varchar(100)" json:"insurance_group_number,omitempty"`
	Status                PatientStatus `gorm:"type:varchar(20);not null;default:ACTIVE;index" json:"status"`
	DoctorID              *uuid.UUID    `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	RegistrationDate      time.Time     `gorm:"not null;index" json:"registration_date"`
	LastVisit             *time.Time    `json:"last_visit,omitempty"`
	Notes                 string        `gorm:"type:text" json:"notes,omitempty"`

	// Relationships
	Doctor *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
