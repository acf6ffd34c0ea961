package repository

import (
	"errors"

	"hospital-management-system/internal/domain/entity"
	domainRepo "hospital-management-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Omit("Patient", "Doctor").Create(prescription).Error
}

func (r *prescriptionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) FindAll(db *gorm.DB) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.Preload("Patient").Preload("Doctor").Order("prescription_date DESC").Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.Preload("Doctor").Where("patient_id = ?", patientID).Order("prescription_date DESC").Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.Preload("Patient").Where("doctor_id = ?", doctorID).Order("prescription_date DESC").Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) FindByPatientAndDoctor(db *gorm.DB, patientID, doctorID uuid.UUID) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.Preload("Doctor").
		Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).
		Order("prescription_date DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) Update(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Omit("Patient", "Doctor").Save(prescription).Error
}

func (r *prescriptionRepository) Count(db *gorm.DB) (int64, error) {
	return count(db, &entity.Prescription{})
}

func (r *prescriptionRepository) CountGroupedBy(db *gorm.DB, column string) (map[string]int64, error) {
	return countGroupedBy(db, &entity.Prescription{}, column)
}

func (r *prescriptionRepository) CountByDoctorAndStatus(db *gorm.DB, doctorID uuid.UUID, status entity.PrescriptionStatus) (int64, error) {
	var total int64
	err := db.Model(&entity.Prescription{}).Where("doctor_id = ? AND status = ?", doctorID, status).Count(&total).Error
	return total, err
}
