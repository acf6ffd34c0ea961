package repository

import (
	"errors"
	"strings"
	"time"

	"hospital-management-system/internal/domain/entity"
	domainRepo "hospital-management-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Omit("Doctor").Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Preload("Doctor").Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(db *gorm.DB) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.Preload("Doctor").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// FindWithFilter applies every present criterion of filter with AND.
// The search term matches any of the five text columns, ignoring case.
func (r *patientRepository) FindWithFilter(db *gorm.DB, filter entity.PatientFilter) ([]entity.Patient, error) {
	var patients []entity.Patient
	query := db.Model(&entity.Patient{})

	if term := filter.SearchTerm(); term != "" {
		pattern := containsPattern(term)
		query = query.Where(
			`(LOWER(first_name) LIKE LOWER(?) ESCAPE '\' OR LOWER(last_name) LIKE LOWER(?) ESCAPE '\' OR LOWER(email) LIKE LOWER(?) ESCAPE '\' OR LOWER(phone) LIKE LOWER(?) ESCAPE '\' OR LOWER(patient_code) LIKE LOWER(?) ESCAPE '\')`,
			pattern, pattern, pattern, pattern, pattern,
		)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Gender != nil {
		query = query.Where("gender = ?", *filter.Gender)
	}
	if filter.BloodGroup != nil {
		query = query.Where("blood_group = ?", *filter.BloodGroup)
	}
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}

	err := query.Preload("Doctor").Order("LOWER(last_name) ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term as a literal substring.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func (r *patientRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.Where("doctor_id = ?", doctorID).Order("LOWER(last_name) ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) ExistsByPatientCode(db *gorm.DB, code string) (bool, error) {
	var total int64
	err := db.Model(&entity.Patient{}).Where("patient_code = ?", code).Count(&total).Error
	return total > 0, err
}

func (r *patientRepository) ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	var total int64
	err := db.Model(&entity.Patient{}).Where("LOWER(email) = LOWER(?)", email).Count(&total).Error
	return total > 0, err
}

// Update never rewrites the patient code or the registration date.
func (r *patientRepository) Update(db *gorm.DB, patient *entity.Patient) error {
	return db.Omit("Doctor", "patient_code", "registration_date").Save(patient).Error
}

func (r *patientRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Patient{})
	return result.RowsAffected, result.Error
}

func (r *patientRepository) Count(db *gorm.DB) (int64, error) {
	return count(db, &entity.Patient{})
}

func (r *patientRepository) CountGroupedBy(db *gorm.DB, column string) (map[string]int64, error) {
	return countGroupedBy(db, &entity.Patient{}, column)
}

func (r *patientRepository) CountByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	var total int64
	err := db.Model(&entity.Patient{}).Where("doctor_id = ?", doctorID).Count(&total).Error
	return total, err
}

func (r *patientRepository) CountRegisteredSince(db *gorm.DB, since time.Time) (int64, error) {
	var total int64
	err := db.Model(&entity.Patient{}).Where("registration_date >= ?", since).Count(&total).Error
	return total, err
}
