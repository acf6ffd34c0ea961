package memory

import (
	"hospital-management-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalRecordRepository struct {
	base
	records []*entity.MedicalRecord
}

func NewMedicalRecordRepository(records ...*entity.MedicalRecord) *MedicalRecordRepository {
	return &MedicalRecordRepository{records: records}
}

var medicalRecordColumns = map[string]func(*entity.MedicalRecord) string{
	"record_type": func(m *entity.MedicalRecord) string { return string(m.RecordType) },
}

func (r *MedicalRecordRepository) Create(_ *gorm.DB, record *entity.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	r.records = append(r.records, record)
	return nil
}

func (r *MedicalRecordRepository) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, m := range r.records {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *MedicalRecordRepository) FindAll(_ *gorm.DB) ([]entity.MedicalRecord, error) {
	return r.find(func(*entity.MedicalRecord) bool { return true })
}

func (r *MedicalRecordRepository) FindByPatientID(_ *gorm.DB, patientID uuid.UUID) ([]entity.MedicalRecord, error) {
	return r.find(func(m *entity.MedicalRecord) bool { return m.PatientID == patientID })
}

func (r *MedicalRecordRepository) FindByDoctorID(_ *gorm.DB, doctorID uuid.UUID) ([]entity.MedicalRecord, error) {
	return r.find(func(m *entity.MedicalRecord) bool { return m.DoctorID == doctorID })
}

func (r *MedicalRecordRepository) FindByPatientAndDoctor(_ *gorm.DB, patientID, doctorID uuid.UUID) ([]entity.MedicalRecord, error) {
	return r.find(func(m *entity.MedicalRecord) bool { return m.PatientID == patientID && m.DoctorID == doctorID })
}

func (r *MedicalRecordRepository) find(keep func(*entity.MedicalRecord) bool) ([]entity.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []entity.MedicalRecord
	for _, m := range r.records {
		if keep(m) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *MedicalRecordRepository) Update(_ *gorm.DB, record *entity.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i, m := range r.records {
		if m.ID == record.ID {
			r.records[i] = record
		}
	}
	return nil
}

func (r *MedicalRecordRepository) Count(_ *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.records)), nil
}

func (r *MedicalRecordRepository) CountGroupedBy(_ *gorm.DB, column string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return groupBy(r.records, column, medicalRecordColumns)
}

func (r *MedicalRecordRepository) CountByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	records, err := r.FindByDoctorID(db, doctorID)
	return int64(len(records)), err
}
