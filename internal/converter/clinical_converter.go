package converter

import (
	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/domain/entity"
)

func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                  appointment.ID,
		PatientID:           appointment.PatientID,
		DoctorID:            appointment.DoctorID,
		AppointmentDateTime: appointment.AppointmentDateTime,
		AppointmentType:     string(appointment.AppointmentType),
		Status:              string(appointment.Status),
		Notes:               appointment.Notes,
		Symptoms:            appointment.Symptoms,
		Diagnosis:           appointment.Diagnosis,
		Prescription:        appointment.Prescription,
	}
	if appointment.Patient != nil {
		response.PatientName = appointment.Patient.FullName()
	}
	if appointment.Doctor != nil {
		response.DoctorName = appointment.Doctor.FullName()
	}

	return response
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	response := &dto.MedicalRecordResponse{
		ID:                      record.ID,
		PatientID:               record.PatientID,
		DoctorID:                record.DoctorID,
		AppointmentID:           record.AppointmentID,
		RecordDate:              record.RecordDate,
		RecordType:              string(record.RecordType),
		ChiefComplaint:          record.ChiefComplaint,
		HistoryOfPresentIllness: record.HistoryOfPresentIllness,
		PhysicalExamination:     record.PhysicalExamination,
		Diagnosis:               record.Diagnosis,
		TreatmentPlan:           record.TreatmentPlan,
		Notes:                   record.Notes,
		VitalSigns:              record.VitalSigns,
		Allergies:               record.Allergies,
		Medications:             record.Medications,
	}
	if record.Patient != nil {
		response.PatientName = record.Patient.FullName()
	}
	if record.Doctor != nil {
		response.DoctorName = record.Doctor.FullName()
	}

	return response
}

func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		responses[i] = *MedicalRecordToResponse(&records[i])
	}
	return responses
}

func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	response := &dto.PrescriptionResponse{
		ID:               prescription.ID,
		PatientID:        prescription.PatientID,
		DoctorID:         prescription.DoctorID,
		AppointmentID:    prescription.AppointmentID,
		PrescriptionDate: prescription.PrescriptionDate,
		MedicationName:   prescription.MedicationName,
		Dosage:           prescription.Dosage,
		Frequency:        prescription.Frequency,
		DurationDays:     prescription.DurationDays,
		Instructions:     prescription.Instructions,
		Route:            prescription.Route,
		Strength:         prescription.Strength,
		Quantity:         prescription.Quantity,
		Refills:          prescription.Refills,
		ExpiryDate:       prescription.ExpiryDate.Format("2006-01-02"),
		Status:           string(prescription.Status),
		Notes:            prescription.Notes,
	}
	if prescription.Patient != nil {
		response.PatientName = prescription.Patient.FullName()
	}
	if prescription.Doctor != nil {
		response.DoctorName = prescription.Doctor.FullName()
	}

	return response
}

func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i := range prescriptions {
		responses[i] = *PrescriptionToResponse(&prescriptions[i])
	}
	return responses
}
