package repository

import (
	"hospital-management-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	GroupCounter
	Create(db *gorm.DB, prescription *entity.Prescription) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error)
	FindAll(db *gorm.DB) ([]entity.Prescription, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Prescription, error)
	FindByPatientAndDoctor(db *gorm.DB, patientID, doctorID uuid.UUID) ([]entity.Prescription, error)
	Update(db *gorm.DB, prescription *entity.Prescription) error
	CountByDoctorAndStatus(db *gorm.DB, doctorID uuid.UUID, status entity.PrescriptionStatus) (int64, error)
}
