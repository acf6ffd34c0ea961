package converter

import (
	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO.
// Blood group is rendered in its short notation, e.g. "O+".
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:                 patient.ID,
		PatientID:          patient.PatientCode,
		FirstName:          patient.FirstName,
		LastName:           patient.LastName,
		FullName:           patient.FullName(),
		Email:              patient.Email,
		Phone:              patient.Phone,
		DateOfBirth:        patient.DateOfBirth.Format("2006-01-02"),
		Gender:             string(patient.Gender),
		Address:            patient.Address,
		City:               patient.City,
		State:              patient.State,
		ZipCode:            patient.ZipCode,
		Country:            patient.Country,
		Nationality:        patient.Nationality,
		MaritalStatus:      string(patient.MaritalStatus),
		Occupation:         patient.Occupation,
		MedicalHistory:     patient.MedicalHistory,
		Allergies:          patient.Allergies,
		CurrentMedications: patient.CurrentMedications,
		EmergencyContact:   patient.EmergencyContact,
		EmergencyPhone:     patient.EmergencyPhone,
		InsuranceProvider:  patient.InsuranceProvider,
		Status:             string(patient.Status),
		DoctorID:           patient.DoctorID,
		RegistrationDate:   patient.RegistrationDate,
		LastVisit:          patient.LastVisit,
		Notes:              patient.Notes,
	}

	if patient.BloodGroup != nil {
		response.BloodGroup = patient.BloodGroup.DisplayName()
	}
	if patient.Doctor != nil {
		response.DoctorName = patient.Doctor.FullName()
	}

	return response
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
