package usecase

import (
	"context"
	"fmt"
	"strings"

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
	ErrDepartmentNotFound   = fmt.Errorf("%w: department not found", ErrNotFound)
	ErrDepartmentNameExists = fmt.Errorf("%w: department name already exists", ErrValidationConflict)
	ErrDepartmentInUse      = fmt.Errorf("%w: department still has staff or rooms", ErrValidationConflict)
)

type DepartmentUsecase interface {
	CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetAllDepartments(ctx context.Context) (*dto.DepartmentListResponse, error)
	GetDepartment(ctx context.Context, id uuid.UUID) (*dto.DepartmentResponse, error)
	UpdateDepartmentStatus(ctx context.Context, id uuid.UUID, status entity.DepartmentStatus) (*dto.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
	// CountDoctors asks the store how many doctors reference the department.
	CountDoctors(ctx context.Context, id uuid.UUID) (*dto.DepartmentDoctorCountResponse, error)
}

type departmentUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	departmentRepo repository.DepartmentRepository
	userRepo       repository.UserRepository
	auditService   service.AuditService
}

func NewDepartmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	departmentRepo repository.DepartmentRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) DepartmentUsecase {
	return &departmentUsecase{
		db:             db,
		log:            log,
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
		auditService:   auditService,
	}
}

func (u *departmentUsecase) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	department := &entity.Department{
		Name:               strings.TrimSpace(req.Name),
		Description:        req.Description,
		Location:           req.Location,
		PhoneNumber:        req.PhoneNumber,
		Email:              req.Email,
		HeadOfDepartmentID: req.HeadOfDepartmentID,
		Status:             entity.DepartmentStatusActive,
		Capacity:           req.Capacity,
		Specialization:     req.Specialization,
	}

	if department.HeadOfDepartmentID != nil {
		head, err := u.userRepo.FindByID(tx, *department.HeadOfDepartmentID)
		if err != nil {
			u.log.Warnf("Failed to find head of department: %+v", err)
			return nil, storeError(err)
		}
		if head == nil {
			return nil, ErrUserNotFound
		}
		department.HeadOfDepartment = head
	}

	if err := u.departmentRepo.Create(tx, department); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrDepartmentNameExists
		}
		u.log.Warnf("Failed to create department: %+v", err)
		return nil, storeError(err)
	}

	response := converter.DepartmentToResponse(department)

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionDepartmentCreate, "department", department.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	return response, nil
}

func (u *departmentUsecase) GetAllDepartments(ctx context.Context) (*dto.DepartmentListResponse, error) {
	departments, err := u.departmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all departments: %+v", err)
		return nil, storeError(err)
	}

	return &dto.DepartmentListResponse{
		Departments: converter.DepartmentsToResponses(departments),
		Total:       len(departments),
	}, nil
}

func (u *departmentUsecase) GetDepartment(ctx context.Context, id uuid.UUID) (*dto.DepartmentResponse, error) {
	department, err := u.departmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find department: %+v", err)
		return nil, storeError(err)
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) UpdateDepartmentStatus(ctx context.Context, id uuid.UUID, status entity.DepartmentStatus) (*dto.DepartmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	department, err := u.departmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find department: %+v", err)
		return nil, storeError(err)
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	oldStatus := department.Status
	department.Status = status

	if err := u.departmentRepo.Update(tx, department); err != nil {
		u.log.Warnf("Failed to update department: %+v", err)
		return nil, storeError(err)
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionDepartmentUpdate, "department", id.String(),
		map[string]string{"status": string(oldStatus)}, map[string]string{"status": string(status)}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	department, err := u.departmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find department: %+v", err)
		return storeError(err)
	}
	if department == nil {
		return ErrDepartmentNotFound
	}
	oldValue := converter.DepartmentToResponse(department)

	rows, err := u.departmentRepo.Delete(tx, id)
	if err != nil {
		if isForeignKeyError(err, "department") {
			return ErrDepartmentInUse
		}
		u.log.Warnf("Failed to delete department: %+v", err)
		return storeError(err)
	}
	if rows == 0 {
		return ErrDepartmentNotFound
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionDepartmentDelete, "department", id.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return storeError(err)
	}

	return nil
}

func (u *departmentUsecase) CountDoctors(ctx context.Context, id uuid.UUID) (*dto.DepartmentDoctorCountResponse, error) {
	db := u.db.WithContext(ctx)

	department, err := u.departmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find department: %+v", err)
		return nil, storeError(err)
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	total, err := u.userRepo.CountDoctorsByDepartment(db, id)
	if err != nil {
		u.log.Warnf("Failed to count department doctors: %+v", err)
		return nil, storeError(err)
	}

	return &dto.DepartmentDoctorCountResponse{DepartmentID: id, DoctorCount: total}, nil
}
