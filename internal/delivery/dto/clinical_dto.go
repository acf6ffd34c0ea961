package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID           uuid.UUID `json:"patient_id" validate:"required"`
	AppointmentDateTime time.Time `json:"appointment_date_time" validate:"required"`
	AppointmentType     string    `json:"appointment_type" validate:"required"`
	Notes               string    `json:"notes" validate:"omitempty"`
	Symptoms            string    `json:"symptoms" validate:"omitempty"`
}

type UpdateAppointmentRequest struct {
	Status       string `json:"status" validate:"omitempty"`
	Notes        string `json:"notes" validate:"omitempty"`
	Diagnosis    string `json:"diagnosis" validate:"omitempty"`
	Prescription string `json:"prescription" validate:"omitempty"`
}

type MedicalRecordRequest struct {
	PatientID               uuid.UUID  `json:"patient_id" validate:"required"`
	AppointmentID           *uuid.UUID `json:"appointment_id" validate:"omitempty"`
	RecordType              string     `json:"record_type" validate:"required"`
	ChiefComplaint          string     `json:"chief_complaint" validate:"omitempty"`
	HistoryOfPresentIllness string     `json:"history_of_present_illness" validate:"omitempty"`
	PhysicalExamination     string     `json:"physical_examination" validate:"omitempty"`
	Diagnosis               string     `json:"diagnosis" validate:"omitempty"`
	TreatmentPlan           string     `json:"treatment_plan" validate:"omitempty"`
	Notes                   string     `json:"notes" validate:"omitempty"`
	VitalSigns              string     `json:"vital_signs" validate:"omitempty"`
	Allergies               string     `json:"allergies" validate:"omitempty"`
	Medications             string     `json:"medications" validate:"omitempty"`
}

type CreatePrescriptionRequest struct {
	PatientID      uuid.UUID  `json:"patient_id" validate:"required"`
	AppointmentID  *uuid.UUID `json:"appointment_id" validate:"omitempty"`
	MedicationName string     `json:"medication_name" validate:"required,max=255"`
	Dosage         string     `json:"dosage" validate:"required,max=100"`
	Frequency      string     `json:"frequency" validate:"required,max=100"`
	DurationDays   *int       `json:"duration_days" validate:"omitempty,gte=1"`
	Instructions   string     `json:"instructions" validate:"omitempty"`
	Route          string     `json:"route" validate:"omitempty,max=50"`
	Strength       string     `json:"strength" validate:"omitempty,max=50"`
	Quantity       *int       `json:"quantity" validate:"omitempty,gte=1"`
	Refills        *int       `json:"refills" validate:"omitempty,gte=0"`
	Notes          string     `json:"notes" validate:"omitempty"`
}

type UpdatePrescriptionStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                  uuid.UUID `json:"id"`
	PatientID           uuid.UUID `json:"patient_id"`
	PatientName         string    `json:"patient_name,omitempty"`
	DoctorID            uuid.UUID `json:"doctor_id"`
	DoctorName          string    `json:"doctor_name,omitempty"`
	AppointmentDateTime time.Time `json:"appointment_date_time"`
	AppointmentType     string    `json:"appointment_type"`
	Status              string    `json:"status"`
	Notes               string    `json:"notes,omitempty"`
	Symptoms            string    `json:"symptoms,omitempty"`
	Diagnosis           string    `json:"diagnosis,omitempty"`
	Prescription        string    `json:"prescription,omitempty"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type MedicalRecordResponse struct {
	ID                      uuid.UUID  `json:"id"`
	PatientID               uuid.UUID  `json:"patient_id"`
	PatientName             string     `json:"patient_name,omitempty"`
	DoctorID                uuid.UUID  `json:"doctor_id"`
	DoctorName              string     `json:"doctor_name,omitempty"`
	AppointmentID           *uuid.UUID `json:"appointment_id,omitempty"`
	RecordDate              time.Time  `json:"record_date"`
	RecordType              string     `json:"record_type"`
	ChiefComplaint          string     `json:"chief_complaint,omitempty"`
	HistoryOfPresentIllness string     `json:"history_of_present_illness,omitempty"`
	PhysicalExamination     string     `json:"physical_examination,omitempty"`
	Diagnosis               string     `json:"diagnosis,omitempty"`
	TreatmentPlan           string     `json:"treatment_plan,omitempty"`
	Notes                   string     `json:"notes,omitempty"`
	VitalSigns              string     `json:"vital_signs,omitempty"`
	Allergies               string     `json:"allergies,omitempty"`
	Medications             string     `json:"medications,omitempty"`
}

type MedicalRecordListResponse struct {
	Records []MedicalRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}

type PrescriptionResponse struct {
	ID               uuid.UUID  `json:"id"`
	PatientID        uuid.UUID  `json:"patient_id"`
	PatientName      string     `json:"patient_name,omitempty"`
	DoctorID         uuid.UUID  `json:"doctor_id"`
	DoctorName       string     `json:"doctor_name,omitempty"`
	AppointmentID    *uuid.UUID `json:"appointment_id,omitempty"`
	PrescriptionDate time.Time  `json:"prescription_date"`
	MedicationName   string     `json:"medication_name"`
	Dosage           string     `json:"dosage"`
	Frequency        string     `json:"frequency"`
	DurationDays     *int       `json:"duration_days,omitempty"`
	Instructions     string     `json:"instructions,omitempty"`
	Route            string     `json:"route,omitempty"`
	Strength         string     `json:"strength,omitempty"`
	Quantity         *int       `json:"quantity,omitempty"`
	Refills          *int       `json:"refills,omitempty"`
	ExpiryDate       string     `json:"expiry_date"`
	Status           string     `json:"status"`
	Notes            string     `json:"notes,omitempty"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}
