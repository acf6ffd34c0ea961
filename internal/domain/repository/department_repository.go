package repository

import (
	"hospital-management-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentRepository interface {
	GroupCounter
	Create(db *gorm.DB, department *entity.Department) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Department, error)
	// FindAll returns departments ordered by name with the head of department loaded.
	FindAll(db *gorm.DB) ([]entity.Department, error)
	Update(db *gorm.DB, department *entity.Department) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
