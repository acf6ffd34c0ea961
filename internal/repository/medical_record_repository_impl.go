package repository

import (
	"errors"

	"hospital-management-system/internal/domain/entity"
	domainRepo "hospital-management-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicalRecordRepository struct{}

func NewMedicalRecordRepository() domainRepo.MedicalRecordRepository {
	return &medicalRecordRepository{}
}

func (r *medicalRecordRepository) Create(db *gorm.DB, record *entity.MedicalRecord) error {
	return db.Omit("Patient", "Doctor").Create(record).Error
}

func (r *medicalRecordRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error) {
	var record entity.MedicalRecord
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) FindAll(db *gorm.DB) ([]entity.MedicalRecord, error) {
	var records []entity.MedicalRecord
	err := db.Preload("Patient").Preload("Doctor").Order("record_date DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *medicalRecordRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.MedicalRecord, error) {
	var records []entity.MedicalRecord
	err := db.Preload("Doctor").Where("patient_id = ?", patientID).Order("record_date DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *medicalRecordRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.MedicalRecord, error) {
	var records []entity.MedicalRecord
	err := db.Preload("Patient").Where("doctor_id = ?", doctorID).Order("record_date DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *medicalRecordRepository) FindByPatientAndDoctor(db *gorm.DB, patientID, doctorID uuid.UUID) ([]entity.MedicalRecord, error) {
	var records []entity.MedicalRecord
	err := db.Preload("Doctor").
		Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).
		Order("record_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *medicalRecordRepository) Update(db *gorm.DB, record *entity.MedicalRecord) error {
	return db.Omit("Patient", "Doctor").Save(record).Error
}

func (r *medicalRecordRepository) Count(db *gorm.DB) (int64, error) {
	return count(db, &entity.MedicalRecord{})
}

func (r *medicalRecordRepository) CountGroupedBy(db *gorm.DB, column string) (map[string]int64, error) {
	return countGroupedBy(db, &entity.MedicalRecord{}, column)
}

func (r *medicalRecordRepository) CountByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	var total int64
	err := db.Model(&entity.MedicalRecord{}).Where("doctor_id = ?", doctorID).Count(&total).Error
	return total, err
}
