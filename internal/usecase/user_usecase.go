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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrDoctorNotFound     = fmt.Errorf("%w: doctor not found", ErrNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("%w: email already exists", ErrValidationConflict)
	ErrDeleteSelf         = fmt.Errorf("%w: you cannot delete your own account", ErrForbidden)
)

type UserUsecase interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	GetAllUsers(ctx context.Context) (*dto.UserListResponse, error)
	GetDoctors(ctx context.Context) (*dto.UserListResponse, error)
	UpdateUserStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	userRepo       repository.UserRepository
	departmentRepo repository.DepartmentRepository
	auditService   service.AuditService
	tokens         service.TokenStore
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	departmentRepo repository.DepartmentRepository,
	auditService service.AuditService,
	tokens service.TokenStore,
) UserUsecase {
	return &userUsecase{
		db:             db,
		log:            log,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		auditService:   auditService,
		tokens:         tokens,
	}
}

// newUserFromRequest validates the enum fields of req and hashes the password.
func newUserFromRequest(req *dto.CreateUserRequest) (*entity.User, error) {
	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	status := entity.UserStatusActive
	if req.Status != "" {
		if status, err = entity.ParseUserStatus(req.Status); err != nil {
			return nil, err
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return &entity.User{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Password:       string(hashedPassword),
		Role:           role,
		Status:         status,
		DepartmentID:   req.DepartmentID,
		PhoneNumber:    req.PhoneNumber,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
	}, nil
}

// insertUser stores user after checking the email and department references.
func insertUser(db *gorm.DB, userRepo repository.UserRepository, departmentRepo repository.DepartmentRepository, user *entity.User) error {
	existing, err := userRepo.FindByEmail(db, user.Email)
	if err != nil {
		return storeError(err)
	}
	if existing != nil {
		return ErrEmailAlreadyExists
	}

	if user.DepartmentID != nil {
		department, err := departmentRepo.FindByID(db, *user.DepartmentID)
		if err != nil {
			return storeError(err)
		}
		if department == nil {
			return ErrDepartmentNotFound
		}
	}

	if err := userRepo.Create(db, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return ErrEmailAlreadyExists
		}
		if isForeignKeyError(err, "department") {
			return ErrDepartmentNotFound
		}
		return storeError(err)
	}
	return nil
}

func (u *userUsecase) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	user, err := newUserFromRequest(req)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := insertUser(tx, u.userRepo, u.departmentRepo, user); err != nil {
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	response := converter.UserToResponse(user)

	// Audit log - create user
	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionUserCreate, "user", user.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	return response, nil
}

func (u *userUsecase) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, storeError(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) GetAllUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all users: %+v", err)
		return nil, storeError(err)
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

func (u *userUsecase) GetDoctors(ctx context.Context) (*dto.UserListResponse, error) {
	doctors, err := u.userRepo.FindByRole(u.db.WithContext(ctx), entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, storeError(err)
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(doctors),
		Total: len(doctors),
	}, nil
}

func (u *userUsecase) UpdateUserStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, storeError(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	oldStatus := user.Status
	user.Status = status

	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user status: %+v", err)
		return nil, storeError(err)
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionUserUpdate, "user", id.String(),
		map[string]string{"status": string(oldStatus)}, map[string]string{"status": string(status)}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	if status != entity.UserStatusActive {
		u.revokeSessions(ctx, id)
	}

	return converter.UserToResponse(user), nil
}

// revokeSessions signs the user out everywhere. Failure is logged only; the
// status change already stops new logins and refreshes.
func (u *userUsecase) revokeSessions(ctx context.Context, id uuid.UUID) {
	if u.tokens == nil {
		return
	}
	if err := u.tokens.RevokeAll(ctx, id); err != nil {
		u.log.Warnf("Failed to revoke user tokens: %+v", err)
	}
}

func (u *userUsecase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if actorID == id {
		return ErrDeleteSelf
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return storeError(err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	oldValue := converter.UserToResponse(user)

	rows, err := u.userRepo.Delete(tx, id)
	if err != nil {
		if isForeignKeyError(err, "user") || isForeignKeyError(err, "doctor") {
			return fmt.Errorf("%w: user is still referenced by other records", ErrValidationConflict)
		}
		u.log.Warnf("Failed to delete user: %+v", err)
		return storeError(err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionUserDelete, "user", id.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return storeError(err)
	}

	u.revokeSessions(ctx, id)

	return nil
}
