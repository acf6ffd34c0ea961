package repository

import (
	"time"

	"hospital-management-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	GroupCounter
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindAll(db *gorm.DB) ([]entity.User, error)
	FindByRole(db *gorm.DB, role entity.Role) ([]entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	CountDoctorsByDepartment(db *gorm.DB, departmentID uuid.UUID) (int64, error)
	CountCreatedSince(db *gorm.DB, since time.Time) (int64, error)
}
