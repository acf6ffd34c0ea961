package repository

import (
	"hospital-management-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomRepository interface {
	GroupCounter
	Create(db *gorm.DB, room *entity.Room) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Room, error)
	FindAll(db *gorm.DB) ([]entity.Room, error)
	Update(db *gorm.DB, room *entity.Room) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	CountByDepartmentID(db *gorm.DB, departmentID uuid.UUID) (int64, error)
}
