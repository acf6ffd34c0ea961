package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hospital-management-system/internal/converter"
	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/delivery/http/middleware"
	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/domain/repository"
	"hospital-management-system/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRoomNotFound       = fmt.Errorf("%w: room not found", ErrNotFound)
	ErrRoomNumberExists   = fmt.Errorf("%w: room number already exists", ErrValidationConflict)
	ErrRoomNotAvailable   = fmt.Errorf("%w: room is not available", ErrValidationConflict)
	ErrRoomNotOccupied    = fmt.Errorf("%w: room is not occupied", ErrValidationConflict)
	ErrRoomNotCleaning    = fmt.Errorf("%w: room is not being cleaned", ErrValidationConflict)
	ErrNegativeDailyRate  = fmt.Errorf("%w: daily rate must not be negative", ErrInvalidInput)
	ErrPatientAlreadyRoom = fmt.Errorf("%w: patient already occupies a room", ErrValidationConflict)
)

type RoomUsecase interface {
	CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)
	GetAllRooms(ctx context.Context) (*dto.RoomListResponse, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*dto.RoomResponse, error)
	UpdateRoomStatus(ctx context.Context, id uuid.UUID, status entity.RoomStatus) (*dto.RoomResponse, error)
	// AssignPatient moves an AVAILABLE room to OCCUPIED by patientID.
	AssignPatient(ctx context.Context, id, patientID uuid.UUID) (*dto.RoomResponse, error)
	// ReleaseRoom clears the occupant and sends the room to CLEANING.
	ReleaseRoom(ctx context.Context, id uuid.UUID) (*dto.RoomResponse, error)
	// MarkCleaned returns a CLEANING room to AVAILABLE.
	MarkCleaned(ctx context.Context, id uuid.UUID) (*dto.RoomResponse, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
}

type roomUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	roomRepo       repository.RoomRepository
	departmentRepo repository.DepartmentRepository
	patientRepo    repository.PatientRepository
	auditService   service.AuditService
	now            func() time.Time
}

func NewRoomUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	roomRepo repository.RoomRepository,
	departmentRepo repository.DepartmentRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) RoomUsecase {
	return &roomUsecase{
		db:             db,
		log:            log,
		roomRepo:       roomRepo,
		departmentRepo: departmentRepo,
		patientRepo:    patientRepo,
		auditService:   auditService,
		now:            time.Now,
	}
}

func (u *roomUsecase) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	roomType, err := entity.ParseRoomType(req.RoomType)
	if err != nil {
		return nil, err
	}
	if req.DailyRate.IsNegative() {
		return nil, ErrNegativeDailyRate
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}

	room := &entity.Room{
		RoomNumber:   strings.TrimSpace(req.RoomNumber),
		RoomType:     roomType,
		DepartmentID: req.DepartmentID,
		Status:       entity.RoomStatusAvailable,
		Floor:        req.Floor,
		Building:     req.Building,
		Capacity:     capacity,
		Description:  req.Description,
		Equipment:    req.Equipment,
		DailyRate:    req.DailyRate.Round(2),
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if room.DepartmentID != nil {
		department, err := u.departmentRepo.FindByID(tx, *room.DepartmentID)
		if err != nil {
			u.log.Warnf("Failed to find department: %+v", err)
			return nil, storeError(err)
		}
		if department == nil {
			return nil, ErrDepartmentNotFound
		}
		room.Department = department
	}

	if err := u.roomRepo.Create(tx, room); err != nil {
		if isDuplicateKeyError(err, "room_number") {
			return nil, ErrRoomNumberExists
		}
		u.log.Warnf("Failed to create room: %+v", err)
		return nil, storeError(err)
	}

	response := converter.RoomToResponse(room)

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionRoomCreate, "room", room.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	return response, nil
}

func (u *roomUsecase) GetAllRooms(ctx context.Context) (*dto.RoomListResponse, error) {
	rooms, err := u.roomRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all rooms: %+v", err)
		return nil, storeError(err)
	}

	return &dto.RoomListResponse{
		Rooms: converter.RoomsToResponses(rooms),
		Total: len(rooms),
	}, nil
}

func (u *roomUsecase) GetRoom(ctx context.Context, id uuid.UUID) (*dto.RoomResponse, error) {
	room, err := u.roomRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find room: %+v", err)
		return nil, storeError(err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	return converter.RoomToResponse(room), nil
}

func (u *roomUsecase) UpdateRoomStatus(ctx context.Context, id uuid.UUID, status entity.RoomStatus) (*dto.RoomResponse, error) {
	return u.transition(ctx, id, func(tx *gorm.DB, room *entity.Room) error {
		room.Status = status
		now := u.now()
		switch status {
		case entity.RoomStatusMaintenance:
			room.LastMaintenance = &now
		case entity.RoomStatusAvailable:
			room.CurrentPatientID = nil
			room.CurrentPatient = nil
		}
		return nil
	})
}

func (u *roomUsecase) AssignPatient(ctx context.Context, id, patientID uuid.UUID) (*dto.RoomResponse, error) {
	return u.transition(ctx, id, func(tx *gorm.DB, room *entity.Room) error {
		if room.Status != entity.RoomStatusAvailable {
			return ErrRoomNotAvailable
		}

		patient, err := u.patientRepo.FindByID(tx, patientID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return storeError(err)
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		rooms, err := u.roomRepo.FindAll(tx)
		if err != nil {
			u.log.Warnf("Failed to find rooms: %+v", err)
			return storeError(err)
		}
		for _, other := range rooms {
			if other.CurrentPatientID != nil && *other.CurrentPatientID == patientID {
				return ErrPatientAlreadyRoom
			}
		}

		room.Status = entity.RoomStatusOccupied
		room.CurrentPatientID = &patient.ID
		room.CurrentPatient = patient
		return nil
	})
}

func (u *roomUsecase) ReleaseRoom(ctx context.Context, id uuid.UUID) (*dto.RoomResponse, error) {
	return u.transition(ctx, id, func(_ *gorm.DB, room *entity.Room) error {
		if room.Status != entity.RoomStatusOccupied {
			return ErrRoomNotOccupied
		}
		room.Status = entity.RoomStatusCleaning
		room.CurrentPatientID = nil
		room.CurrentPatient = nil
		return nil
	})
}

func (u *roomUsecase) MarkCleaned(ctx context.Context, id uuid.UUID) (*dto.RoomResponse, error) {
	return u.transition(ctx, id, func(_ *gorm.DB, room *entity.Room) error {
		if room.Status != entity.RoomStatusCleaning {
			return ErrRoomNotCleaning
		}
		now := u.now()
		room.Status = entity.RoomStatusAvailable
		room.LastCleaned = &now
		return nil
	})
}

// transition loads the room, lets apply change it, then saves and audits the
// change in one transaction.
func (u *roomUsecase) transition(ctx context.Context, id uuid.UUID, apply func(tx *gorm.DB, room *entity.Room) error) (*dto.RoomResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	room, err := u.roomRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find room: %+v", err)
		return nil, storeError(err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	oldValue := converter.RoomToResponse(room)
	if err := apply(tx, room); err != nil {
		return nil, err
	}

	if err := u.roomRepo.Update(tx, room); err != nil {
		u.log.Warnf("Failed to update room: %+v", err)
		return nil, storeError(err)
	}

	newValue := converter.RoomToResponse(room)
	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionRoomUpdate, "room", id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	return newValue, nil
}

func (u *roomUsecase) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	room, err := u.roomRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find room: %+v", err)
		return storeError(err)
	}
	if room == nil {
		return ErrRoomNotFound
	}
	oldValue := converter.RoomToResponse(room)

	rows, err := u.roomRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete room: %+v", err)
		return storeError(err)
	}
	if rows == 0 {
		return ErrRoomNotFound
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionRoomDelete, "room", id.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return storeError(err)
	}

	return nil
}
