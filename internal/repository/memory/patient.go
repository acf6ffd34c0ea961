package memory

import (
	"strings"
	"time"

	"hospital-management-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository struct {
	base
	patients []*entity.Patient
	// ConcurrentCodes are patient codes being written by someone else. They
	// look free until a Create collides with one; from then on the other
	// writer's patient is stored and visible.
	ConcurrentCodes map[string]bool
	// CreateCalls counts Create attempts, including rejected ones.
	CreateCalls int
}

func NewPatientRepository(patients ...*entity.Patient) *PatientRepository {
	return &PatientRepository{patients: patients, ConcurrentCodes: map[string]bool{}}
}

var patientColumns = map[string]func(*entity.Patient) string{
	"status": func(p *entity.Patient) string { return string(p.Status) },
	"gender": func(p *entity.Patient) string { return string(p.Gender) },
	"blood_group": func(p *entity.Patient) string {
		if p.BloodGroup == nil {
			return ""
		}
		return string(*p.BloodGroup)
	},
}

func (r *PatientRepository) Create(_ *gorm.DB, patient *entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CreateCalls++
	if r.Err != nil {
		return r.Err
	}
	if r.ConcurrentCodes[patient.PatientCode] {
		delete(r.ConcurrentCodes, patient.PatientCode)
		r.patients = append(r.patients, &entity.Patient{ID: uuid.New(), PatientCode: patient.PatientCode})
		return uniqueViolation("patients", "patient_code")
	}
	for _, p := range r.patients {
		if p.PatientCode == patient.PatientCode {
			return uniqueViolation("patients", "patient_code")
		}
		if strings.EqualFold(p.Email, patient.Email) {
			return uniqueViolation("patients", "email")
		}
	}
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	r.patients = append(r.patients, patient)
	return nil
}

func (r *PatientRepository) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, p := range r.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

// FindAll returns patients in insertion order.
func (r *PatientRepository) FindAll(_ *gorm.DB) ([]entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]entity.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		out = append(out, *p)
	}
	return out, nil
}

func (r *PatientRepository) FindWithFilter(_ *gorm.DB, filter entity.PatientFilter) ([]entity.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []entity.Patient
	for _, p := range r.patients {
		if filter.Matches(p) {
			out = append(out, *p)
		}
	}
	sortFold(out, func(p entity.Patient) string { return p.LastName })
	return out, nil
}

func (r *PatientRepository) FindByDoctorID(_ *gorm.DB, doctorID uuid.UUID) ([]entity.Patient, error) {
	return r.FindWithFilter(nil, entity.PatientFilter{DoctorID: &doctorID})
}

func (r *PatientRepository) ExistsByPatientCode(_ *gorm.DB, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	for _, p := range r.patients {
		if p.PatientCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *PatientRepository) ExistsByEmail(_ *gorm.DB, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	for _, p := range r.patients {
		if strings.EqualFold(p.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *PatientRepository) Update(_ *gorm.DB, patient *entity.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i, p := range r.patients {
		if p.ID == patient.ID {
			patient.PatientCode = p.PatientCode
			patient.RegistrationDate = p.RegistrationDate
			r.patients[i] = patient
		}
	}
	return nil
}

func (r *PatientRepository) Delete(_ *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	for i, p := range r.patients {
		if p.ID == id {
			r.patients = append(r.patients[:i], r.patients[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *PatientRepository) Count(_ *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.patients)), nil
}

func (r *PatientRepository) CountGroupedBy(_ *gorm.DB, column string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return groupBy(r.patients, column, patientColumns)
}

func (r *PatientRepository) CountByDoctorID(_ *gorm.DB, doctorID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var total int64
	for _, p := range r.patients {
		if p.DoctorID != nil && *p.DoctorID == doctorID {
			total++
		}
	}
	return total, nil
}

func (r *PatientRepository) CountRegisteredSince(_ *gorm.DB, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var total int64
	for _, p := range r.patients {
		if !p.RegistrationDate.Before(since) {
			total++
		}
	}
	return total, nil
}
