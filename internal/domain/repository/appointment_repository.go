package repository

import (
	"time"

	"hospital-management-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	GroupCounter
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	// CountBetween counts appointments scheduled in [from, to).
	CountBetween(db *gorm.DB, from, to time.Time) (int64, error)
	CountByDoctorBetween(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) (int64, error)
	CountByDoctorAndStatus(db *gorm.DB, doctorID uuid.UUID, status entity.AppointmentStatus) (int64, error)
}
