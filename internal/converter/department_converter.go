package converter

import (
	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/domain/entity"
)

func DepartmentToResponse(department *entity.Department) *dto.DepartmentResponse {
	if department == nil {
		return nil
	}

	response := &dto.DepartmentResponse{
		ID:                 department.ID,
		Name:               department.Name,
		Description:        department.Description,
		Location:           department.Location,
		PhoneNumber:        department.PhoneNumber,
		Email:              department.Email,
		HeadOfDepartmentID: department.HeadOfDepartmentID,
		Status:             string(department.Status),
		Capacity:           department.Capacity,
		Specialization:     department.Specialization,
		CreatedAt:          department.CreatedAt,
	}
	if department.HeadOfDepartment != nil {
		response.HeadOfDepartment = department.HeadOfDepartment.FullName()
	}

	return response
}

func DepartmentsToResponses(departments []entity.Department) []dto.DepartmentResponse {
	responses := make([]dto.DepartmentResponse, len(departments))
	for i := range departments {
		responses[i] = *DepartmentToResponse(&departments[i])
	}
	return responses
}
