package handler

import (
	"net/http"

	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/usecase"
	"hospital-management-system/pkg/response"
	"hospital-management-system/pkg/validator"
)

type MedicalRecordHandler struct {
	recordUsecase usecase.MedicalRecordUsecase
	validator     *validator.CustomValidator
}

func NewMedicalRecordHandler(recordUsecase usecase.MedicalRecordUsecase, validator *validator.CustomValidator) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		recordUsecase: recordUsecase,
		validator:     validator,
	}
}

func (h *MedicalRecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req dto.MedicalRecordRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	record, err := h.recordUsecase.CreateRecord(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create medical record")
		return
	}

	response.Success(w, http.StatusCreated, "Medical record created successfully", record)
}

func (h *MedicalRecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathID(w, r, "id", "medical record")
	if !ok {
		return
	}

	var req dto.MedicalRecordRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	record, err := h.recordUsecase.UpdateRecord(r.Context(), recordID, &req)
	if err != nil {
		writeError(w, err, "Failed to update medical record")
		return
	}

	response.Success(w, http.StatusOK, "Medical record updated successfully", record)
}

func (h *MedicalRecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathID(w, r, "id", "medical record")
	if !ok {
		return
	}

	record, err := h.recordUsecase.GetRecord(r.Context(), recordID)
	if err != nil {
		writeError(w, err, "Failed to get medical record")
		return
	}

	response.Success(w, http.StatusOK, "Medical record retrieved successfully", record)
}

func (h *MedicalRecordHandler) GetPatientRecords(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(w, r, "patientId", "patient")
	if !ok {
		return
	}

	records, err := h.recordUsecase.GetPatientRecords(r.Context(), patientID)
	if err != nil {
		writeError(w, err, "Failed to get medical records")
		return
	}

	response.Success(w, http.StatusOK, "Medical records retrieved successfully", records)
}

func (h *MedicalRecordHandler) GetMyRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.recordUsecase.GetMyRecords(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get medical records")
		return
	}

	response.Success(w, http.StatusOK, "Medical records retrieved successfully", records)
}
