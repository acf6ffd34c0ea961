package handler

import (
	"net/http"

	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/usecase"
	"hospital-management-system/pkg/response"
	"hospital-management-system/pkg/validator"
)

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
}

func NewPrescriptionHandler(prescriptionUsecase usecase.PrescriptionUsecase, validator *validator.CustomValidator) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
	}
}

func (h *PrescriptionHandler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePrescriptionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	prescription, err := h.prescriptionUsecase.CreatePrescription(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create prescription")
		return
	}

	response.Success(w, http.StatusCreated, "Prescription created successfully", prescription)
}

func (h *PrescriptionHandler) GetPrescription(w http.ResponseWriter, r *http.Request) {
	prescriptionID, ok := pathID(w, r, "id", "prescription")
	if !ok {
		return
	}

	prescription, err := h.prescriptionUsecase.GetPrescription(r.Context(), prescriptionID)
	if err != nil {
		writeError(w, err, "Failed to get prescription")
		return
	}

	response.Success(w, http.StatusOK, "Prescription retrieved successfully", prescription)
}

func (h *PrescriptionHandler) GetPatientPrescriptions(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(w, r, "patientId", "patient")
	if !ok {
		return
	}

	prescriptions, err := h.prescriptionUsecase.GetPatientPrescriptions(r.Context(), patientID)
	if err != nil {
		writeError(w, err, "Failed to get prescriptions")
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions)
}

func (h *PrescriptionHandler) GetMyPrescriptions(w http.ResponseWriter, r *http.Request) {
	prescriptions, err := h.prescriptionUsecase.GetMyPrescriptions(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get prescriptions")
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions)
}

func (h *PrescriptionHandler) UpdatePrescriptionStatus(w http.ResponseWriter, r *http.Request) {
	prescriptionID, ok := pathID(w, r, "id", "prescription")
	if !ok {
		return
	}

	var req dto.UpdatePrescriptionStatusRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	status, err := entity.ParsePrescriptionStatus(req.Status)
	if err != nil {
		writeError(w, err, "Failed to update prescription status")
		return
	}

	prescription, err := h.prescriptionUsecase.UpdatePrescriptionStatus(r.Context(), prescriptionID, status)
	if err != nil {
		writeError(w, err, "Failed to update prescription status")
		return
	}

	response.Success(w, http.StatusOK, "Prescription status updated successfully", prescription)
}
