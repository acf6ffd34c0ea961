package handler

import (
	"net/http"

	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/usecase"
	"hospital-management-system/pkg/response"
	"hospital-management-system/pkg/validator"
)

type RoomHandler struct {
	roomUsecase usecase.RoomUsecase
	validator   *validator.CustomValidator
}

func NewRoomHandler(roomUsecase usecase.RoomUsecase, validator *validator.CustomValidator) *RoomHandler {
	return &RoomHandler{
		roomUsecase: roomUsecase,
		validator:   validator,
	}
}

// CreateRoom handles room creation
// @Summary Create a room
// @Tags Rooms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/rooms [post]
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRoomRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	room, err := h.roomUsecase.CreateRoom(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create room")
		return
	}

	response.Success(w, http.StatusCreated, "Room created successfully", room)
}

// GetAllRooms handles listing rooms
// @Summary Get all rooms
// @Tags Rooms
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/rooms [get]
func (h *RoomHandler) GetAllRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomUsecase.GetAllRooms(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get rooms")
		return
	}

	response.Success(w, http.StatusOK, "Rooms retrieved successfully", rooms)
}

// GetRoom handles getting a room by ID
// @Summary Get room by ID
// @Tags Rooms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/rooms/{id} [get]
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathID(w, r, "id", "room")
	if !ok {
		return
	}

	room, err := h.roomUsecase.GetRoom(r.Context(), roomID)
	if err != nil {
		writeError(w, err, "Failed to get room")
		return
	}

	response.Success(w, http.StatusOK, "Room retrieved successfully", room)
}

// UpdateRoomStatus handles a manual status change
// @Summary Update room status
// @Tags Rooms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomStatusRequest true "Status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/rooms/{id}/status [patch]
func (h *RoomHandler) UpdateRoomStatus(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathID(w, r, "id", "room")
	if !ok {
		return
	}

	var req dto.UpdateRoomStatusRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	status, err := entity.ParseRoomStatus(req.Status)
	if err != nil {
		writeError(w, err, "Failed to update room status")
		return
	}

	room, err := h.roomUsecase.UpdateRoomStatus(r.Context(), roomID, status)
	if err != nil {
		writeError(w, err, "Failed to update room status")
		return
	}

	response.Success(w, http.StatusOK, "Room status updated successfully", room)
}

// AssignPatient handles admitting a patient to a room
// @Summary Assign a patient to an available room
// @Tags Rooms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.AssignRoomRequest true "Patient"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/rooms/{id}/assign [post]
func (h *RoomHandler) AssignPatient(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathID(w, r, "id", "room")
	if !ok {
		return
	}

	var req dto.AssignRoomRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	room, err := h.roomUsecase.AssignPatient(r.Context(), roomID, req.PatientID)
	if err != nil {
		writeError(w, err, "Failed to assign patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient assigned successfully", room)
}

func (h *RoomHandler) ReleaseRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathID(w, r, "id", "room")
	if !ok {
		return
	}

	room, err := h.roomUsecase.ReleaseRoom(r.Context(), roomID)
	if err != nil {
		writeError(w, err, "Failed to release room")
		return
	}

	response.Success(w, http.StatusOK, "Room released successfully", room)
}

func (h *RoomHandler) MarkCleaned(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathID(w, r, "id", "room")
	if !ok {
		return
	}

	room, err := h.roomUsecase.MarkCleaned(r.Context(), roomID)
	if err != nil {
		writeError(w, err, "Failed to mark room as cleaned")
		return
	}

	response.Success(w, http.StatusOK, "Room marked as cleaned", room)
}

// DeleteRoom handles room deletion
// @Summary Delete a room
// @Tags Rooms
// @Security BearerAuth
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathID(w, r, "id", "room")
	if !ok {
		return
	}

	if err := h.roomUsecase.DeleteRoom(r.Context(), roomID); err != nil {
		writeError(w, err, "Failed to delete room")
		return
	}

	response.Success(w, http.StatusOK, "Room deleted successfully", nil)
}
