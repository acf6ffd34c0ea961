package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreatePatientRequest registers a patient. PatientID is optional; when it is
// empty a code is generated.
type CreatePatientRequest struct {
	PatientID             string     `json:"patient_id" validate:"omitempty,max=20"`
	FirstName             string     `json:"first_name" validate:"required,min=2,max=50"`
	LastName              string     `json:"last_name" validate:"required,min=2,max=50"`
	Email                 string     `json:"email" validate:"required,email"`
	Phone                 string     `json:"phone" validate:"required,max=30"`
	DateOfBirth           string     `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender                string     `json:"gender" validate:"required"`
	Address               string     `json:"address" validate:"required"`
	City                  string     `json:"city" validate:"omitempty,max=100"`
	State                 string     `json:"state" validate:"omitempty,max=100"`
	ZipCode               string     `json:"zip_code" validate:"omitempty,max=20"`
	Country               string     `json:"country" validate:"omitempty,max=100"`
	Nationality           string     `json:"nationality" validate:"omitempty,max=100"`
	BloodGroup            string     `json:"blood_group" validate:"omitempty"`
	MaritalStatus         string     `json:"marital_status" validate:"omitempty"`
	Occupation            string     `json:"occupation" validate:"omitempty,max=150"`
	MedicalHistory        string     `json:"medical_history" validate:"omitempty"`
	Allergies             string     `json:"allergies" validate:"omitempty"`
	CurrentMedications    string     `json:"current_medications" validate:"omitempty"`
	EmergencyContact      string     `json:"emergency_contact" validate:"omitempty,max=150"`
	EmergencyPhone        string     `json:"emergency_phone" validate:"omitempty,max=30"`
	EmergencyRelation     string     `json:"emergency_relation" validate:"omitempty,max=50"`
	InsuranceProvider     string     `json:"insurance_provider" validate:"omitempty,max=150"`
	InsurancePolicyNumber string     `json:"insurance_policy_number" validate:"omitempty,max=100"`
	InsuranceGroupNumber  string     `json:"insurance_group_number" validate:"omitempty,max=100"`
	Status                string     `json:"status" validate:"omitempty"`
	DoctorID              *uuid.UUID `json:"doctor_id" validate:"omitempty"`
	Notes                 string     `json:"notes" validate:"omitempty"`
}

// UpdatePatientRequest changes the supplied fields. Patient ID and
// registration date cannot be changed.
type UpdatePatientRequest struct {
	FirstName          string     `json:"first_name" validate:"omitempty,min=2,max=50"`
	LastName           string     `json:"last_name" validate:"omitempty,min=2,max=50"`
	Email              string     `json:"email" validate:"omitempty,email"`
	Phone              string     `json:"phone" validate:"omitempty,max=30"`
	Address            string     `json:"address" validate:"omitempty"`
	City               string     `json:"city" validate:"omitempty,max=100"`
	State              string     `json:"state" validate:"omitempty,max=100"`
	ZipCode            string     `json:"zip_code" validate:"omitempty,max=20"`
	Country            string     `json:"country" validate:"omitempty,max=100"`
	BloodGroup         string     `json:"blood_group" validate:"omitempty"`
	MaritalStatus      string     `json:"marital_status" validate:"omitempty"`
	Occupation         string     `json:"occupation" validate:"omitempty,max=150"`
	MedicalHistory     string     `json:"medical_history" validate:"omitempty"`
	Allergies          string     `json:"allergies" validate:"omitempty"`
	CurrentMedications string     `json:"current_medications" validate:"omitempty"`
	EmergencyContact   string     `json:"emergency_contact" validate:"omitempty,max=150"`
	EmergencyPhone     string     `json:"emergency_phone" validate:"omitempty,max=30"`
	DoctorID           *uuid.UUID `json:"doctor_id" validate:"omitempty"`
	Notes              string     `json:"notes" validate:"omitempty"`
}

type UpdatePatientStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type PatientResponse struct {
	ID                 uuid.UUID  `json:"id"`
	PatientID          string     `json:"patient_id"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	FullName           string     `json:"full_name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	DateOfBirth        string     `json:"date_of_birth"`
	Gender             string     `json:"gender"`
	Address            string     `json:"address"`
	City               string     `json:"city,omitempty"`
	State              string     `json:"state,omitempty"`
	ZipCode            string     `json:"zip_code,omitempty"`
	Country            string     `json:"country,omitempty"`
	Nationality        string     `json:"nationality,omitempty"`
	BloodGroup         string     `json:"blood_group,omitempty"`
	MaritalStatus      string     `json:"marital_status,omitempty"`
	Occupation         string     `json:"occupation,omitempty"`
	MedicalHistory     string     `json:"medical_history,omitempty"`
	Allergies          string     `json:"allergies,omitempty"`
	CurrentMedications string     `json:"current_medications,omitempty"`
	EmergencyContact   string     `json:"emergency_contact,omitempty"`
	EmergencyPhone     string     `json:"emergency_phone,omitempty"`
	InsuranceProvider  string     `json:"insurance_provider,omitempty"`
	Status             string     `json:"status"`
	DoctorID           *uuid.UUID `json:"doctor_id,omitempty"`
	DoctorName         string     `json:"doctor_name,omitempty"`
	RegistrationDate   time.Time  `json:"registration_date"`
	LastVisit          *time.Time `json:"last_visit,omitempty"`
	Notes              string     `json:"notes,omitempty"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

type PatientIdentifierResponse struct {
	PatientID string `json:"patient_id"`
}
