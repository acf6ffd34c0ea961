package converter

import (
	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// DepartmentName is filled only when the department is loaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		FullName:       user.FullName(),
		Role:           string(user.Role),
		Status:         string(user.Status),
		DepartmentID:   user.DepartmentID,
		PhoneNumber:    user.PhoneNumber,
		Specialization: user.Specialization,
		LicenseNumber:  user.LicenseNumber,
		CreatedAt:      user.CreatedAt,
		LastLoginAt:    user.LastLoginAt,
	}

	if user.Department != nil {
		response.DepartmentName = user.Department.Name
	}

	return response
}

// UsersToResponses converts a slice of User entities to slice of UserResponse DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}
