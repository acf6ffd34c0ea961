package repository

import (
	"time"

	"hospital-management-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	GroupCounter
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindAll(db *gorm.DB) ([]entity.Patient, error)
	FindWithFilter(db *gorm.DB, filter entity.PatientFilter) ([]entity.Patient, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Patient, error)
	ExistsByPatientCode(db *gorm.DB, code string) (bool, error)
	ExistsByEmail(db *gorm.DB, email string) (bool, error)
	Update(db *gorm.DB, patient *entity.Patient) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	CountByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error)
	CountRegisteredSince(db *gorm.DB, since time.Time) (int64, error)
}
