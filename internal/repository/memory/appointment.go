package memory

import (
	"time"

	"hospital-management-system/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository struct {
	base
	appointments []*entity.Appointment
}

func NewAppointmentRepository(appointments ...*entity.Appointment) *AppointmentRepository {
	return &AppointmentRepository{appointments: appointments}
}

var appointmentColumns = map[string]func(*entity.Appointment) string{
	"status":           func(a *entity.Appointment) string { return string(a.Status) },
	"appointment_type": func(a *entity.Appointment) string { return string(a.AppointmentType) },
}

func (r *AppointmentRepository) Create(_ *gorm.DB, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	r.appointments = append(r.appointments, appointment)
	return nil
}

func (r *AppointmentRepository) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, a := range r.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *AppointmentRepository) FindAll(_ *gorm.DB) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]entity.Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		out = append(out, *a)
	}
	return out, nil
}

func (r *AppointmentRepository) FindByDoctorID(_ *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *AppointmentRepository) Update(_ *gorm.DB, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i, a := range r.appointments {
		if a.ID == appointment.ID {
			r.appointments[i] = appointment
		}
	}
	return nil
}

func (r *AppointmentRepository) Count(_ *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.appointments)), nil
}

func (r *AppointmentRepository) CountGroupedBy(_ *gorm.DB, column string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return groupBy(r.appointments, column, appointmentColumns)
}

func (r *AppointmentRepository) CountBetween(_ *gorm.DB, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var total int64
	for _, a := range r.appointments {
		if inRange(a.AppointmentDateTime, from, to) {
			total++
		}
	}
	return total, nil
}

func (r *AppointmentRepository) CountByDoctorBetween(_ *gorm.DB, doctorID uuid.UUID, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var total int64
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && inRange(a.AppointmentDateTime, from, to) {
			total++
		}
	}
	return total, nil
}

func (r *AppointmentRepository) CountByDoctorAndStatus(_ *gorm.DB, doctorID uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var total int64
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && a.Status == status {
			total++
		}
	}
	return total, nil
}
