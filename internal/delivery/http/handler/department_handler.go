package handler

import (
	"net/http"

	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/usecase"
	"hospital-management-system/pkg/response"
	"hospital-management-system/pkg/validator"
)

type DepartmentHandler struct {
	departmentUsecase usecase.DepartmentUsecase
	validator         *validator.CustomValidator
}

func NewDepartmentHandler(departmentUsecase usecase.DepartmentUsecase, validator *validator.CustomValidator) *DepartmentHandler {
	return &DepartmentHandler{
		departmentUsecase: departmentUsecase,
		validator:         validator,
	}
}

func (h *DepartmentHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDepartmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	department, err := h.departmentUsecase.CreateDepartment(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create department")
		return
	}

	response.Success(w, http.StatusCreated, "Department created successfully", department)
}

func (h *DepartmentHandler) GetAllDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.departmentUsecase.GetAllDepartments(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get departments")
		return
	}

	response.Success(w, http.StatusOK, "Departments retrieved successfully", departments)
}

func (h *DepartmentHandler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	departmentID, ok := pathID(w, r, "id", "department")
	if !ok {
		return
	}

	department, err := h.departmentUsecase.GetDepartment(r.Context(), departmentID)
	if err != nil {
		writeError(w, err, "Failed to get department")
		return
	}

	response.Success(w, http.StatusOK, "Department retrieved successfully", department)
}

func (h *DepartmentHandler) UpdateDepartmentStatus(w http.ResponseWriter, r *http.Request) {
	departmentID, ok := pathID(w, r, "id", "department")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentStatusRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	status, err := entity.ParseDepartmentStatus(req.Status)
	if err != nil {
		writeError(w, err, "Failed to update department status")
		return
	}

	department, err := h.departmentUsecase.UpdateDepartmentStatus(r.Context(), departmentID, status)
	if err != nil {
		writeError(w, err, "Failed to update department status")
		return
	}

	response.Success(w, http.StatusOK, "Department status updated successfully", department)
}

func (h *DepartmentHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	departmentID, ok := pathID(w, r, "id", "department")
	if !ok {
		return
	}

	if err := h.departmentUsecase.DeleteDepartment(r.Context(), departmentID); err != nil {
		writeError(w, err, "Failed to delete department")
		return
	}

	response.Success(w, http.StatusOK, "Department deleted successfully", nil)
}

func (h *DepartmentHandler) CountDoctors(w http.ResponseWriter, r *http.Request) {
	departmentID, ok := pathID(w, r, "id", "department")
	if !ok {
		return
	}

	count, err := h.departmentUsecase.CountDoctors(r.Context(), departmentID)
	if err != nil {
		writeError(w, err, "Failed to count department doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctor count retrieved successfully", count)
}
