package converter

import (
	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/domain/entity"
)

func RoomToResponse(room *entity.Room) *dto.RoomResponse {
	if room == nil {
		return nil
	}

	response := &dto.RoomResponse{
		ID:               room.ID,
		RoomNumber:       room.RoomNumber,
		RoomType:         string(room.RoomType),
		Status:           string(room.Status),
		DepartmentID:     room.DepartmentID,
		Floor:            room.Floor,
		Building:         room.Building,
		Capacity:         room.Capacity,
		Description:      room.Description,
		Equipment:        room.Equipment,
		DailyRate:        room.DailyRate,
		CurrentPatientID: room.CurrentPatientID,
		LastCleaned:      room.LastCleaned,
		LastMaintenance:  room.LastMaintenance,
	}
	if room.Department != nil {
		response.DepartmentName = room.Department.Name
	}
	if room.CurrentPatient != nil {
		response.CurrentPatientName = room.CurrentPatient.FullName()
	}

	return response
}

func RoomsToResponses(rooms []entity.Room) []dto.RoomResponse {
	responses := make([]dto.RoomResponse, len(rooms))
	for i := range rooms {
		responses[i] = *RoomToResponse(&rooms[i])
	}
	return responses
}
