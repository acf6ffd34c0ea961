package handler

import (
	"net/http"

	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/delivery/http/middleware"
	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/usecase"
	"hospital-management-system/pkg/response"
	"hospital-management-system/pkg/validator"

	"github.com/google/uuid"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// patientFilterFromQuery reads search, status, gender, blood_group and
// doctor_id. Absent parameters leave the criterion unset.
func patientFilterFromQuery(r *http.Request) (entity.PatientFilter, error) {
	q := r.URL.Query()
	filter := entity.PatientFilter{Search: q.Get("search")}

	if v := q.Get("status"); v != "" {
		status, err := entity.ParsePatientStatus(v)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	if v := q.Get("gender"); v != "" {
		gender, err := entity.ParseGender(v)
		if err != nil {
			return filter, err
		}
		filter.Gender = &gender
	}
	if v := q.Get("blood_group"); v != "" {
		bloodGroup, err := entity.ParseBloodGroup(v)
		if err != nil {
			return filter, err
		}
		filter.BloodGroup = &bloodGroup
	}
	if v := q.Get("doctor_id"); v != "" {
		doctorID, err := uuid.Parse(v)
		if err != nil {
			return filter, usecase.ErrInvalidInput
		}
		filter.DoctorID = &doctorID
	}
	return filter, nil
}

func (h *PatientHandler) FilterPatients(w http.ResponseWriter, r *http.Request) {
	filter, err := patientFilterFromQuery(r)
	if err != nil {
		writeError(w, err, "Failed to get patients")
		return
	}

	patients, err := h.patientUsecase.FilterPatients(r.Context(), filter)
	if err != nil {
		writeError(w, err, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) NextPatientIdentifier(w http.ResponseWriter, r *http.Request) {
	code, err := h.patientUsecase.NextPatientIdentifier(r.Context())
	if err != nil {
		writeError(w, err, "Failed to generate patient ID")
		return
	}

	response.Success(w, http.StatusOK, "Patient ID generated successfully", dto.PatientIdentifierResponse{PatientID: code})
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.CreatePatient(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

// AddPatient registers a patient under the calling doctor.
func (h *PatientHandler) AddPatient(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreatePatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	req.DoctorID = &doctorID

	patient, err := h.patientUsecase.CreatePatient(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to add patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient added successfully", patient)
}

func (h *PatientHandler) GetMyPatients(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patients, err := h.patientUsecase.GetDoctorPatients(r.Context(), doctorID)
	if err != nil {
		writeError(w, err, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), patientID)
	if err != nil {
		writeError(w, err, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	var req dto.UpdatePatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.UpdatePatient(r.Context(), patientID, &req)
	if err != nil {
		writeError(w, err, "Failed to update patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) UpdatePatientStatus(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	var req dto.UpdatePatientStatusRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	status, err := entity.ParsePatientStatus(req.Status)
	if err != nil {
		writeError(w, err, "Failed to update patient status")
		return
	}

	patient, err := h.patientUsecase.UpdatePatientStatus(r.Context(), patientID, status)
	if err != nil {
		writeError(w, err, "Failed to update patient status")
		return
	}

	response.Success(w, http.StatusOK, "Patient status updated successfully", patient)
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	if err := h.patientUsecase.DeletePatient(r.Context(), patientID); err != nil {
		writeError(w, err, "Failed to delete patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}
