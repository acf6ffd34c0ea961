package memory

import (
	"hospital-management-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository struct {
	base
	prescriptions []*entity.Prescription
}

func NewPrescriptionRepository(prescriptions ...*entity.Prescription) *PrescriptionRepository {
	return &PrescriptionRepository{prescriptions: prescriptions}
}

var prescriptionColumns = map[string]func(*entity.Prescription) string{
	"status": func(p *entity.Prescription) string { return string(p.Status) },
}

func (r *PrescriptionRepository) Create(_ *gorm.DB, prescription *entity.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if prescription.ID == uuid.Nil {
		prescription.ID = uuid.New()
	}
	r.prescriptions = append(r.prescriptions, prescription)
	return nil
}

func (r *PrescriptionRepository) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, p := range r.prescriptions {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *PrescriptionRepository) FindAll(_ *gorm.DB) ([]entity.Prescription, error) {
	return r.find(func(*entity.Prescription) bool { return true })
}

func (r *PrescriptionRepository) FindByPatientID(_ *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error) {
	return r.find(func(p *entity.Prescription) bool { return p.PatientID == patientID })
}

func (r *PrescriptionRepository) FindByDoctorID(_ *gorm.DB, doctorID uuid.UUID) ([]entity.Prescription, error) {
	return r.find(func(p *entity.Prescription) bool { return p.DoctorID == doctorID })
}

func (r *PrescriptionRepository) FindByPatientAndDoctor(_ *gorm.DB, patientID, doctorID uuid.UUID) ([]entity.Prescription, error) {
	return r.find(func(p *entity.Prescription) bool { return p.PatientID == patientID && p.DoctorID == doctorID })
}

func (r *PrescriptionRepository) find(keep func(*entity.Prescription) bool) ([]entity.Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []entity.Prescription
	for _, p := range r.prescriptions {
		if keep(p) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *PrescriptionRepository) Update(_ *gorm.DB, prescription *entity.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i, p := range r.prescriptions {
		if p.ID == prescription.ID {
			r.prescriptions[i] = prescription
		}
	}
	return nil
}

func (r *PrescriptionRepository) Count(_ *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.prescriptions)), nil
}

func (r *PrescriptionRepository) CountGroupedBy(_ *gorm.DB, column string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return groupBy(r.prescriptions, column, prescriptionColumns)
}

func (r *PrescriptionRepository) CountByDoctorAndStatus(_ *gorm.DB, doctorID uuid.UUID, status entity.PrescriptionStatus) (int64, error) {
	prescriptions, err := r.find(func(p *entity.Prescription) bool { return p.DoctorID == doctorID && p.Status == status })
	return int64(len(prescriptions)), err
}
