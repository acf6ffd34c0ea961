package repository

import (
	"errors"
	"time"

	"hospital-management-system/internal/domain/entity"
	domainRepo "hospital-management-system/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Order("appointment_date_time DESC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Where("doctor_id = ?", doctorID).Order("appointment_date_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor").Save(appointment).Error
}

func (r *appointmentRepository) Count(db *gorm.DB) (int64, error) {
	return count(db, &entity.Appointment{})
}

func (r *appointmentRepository) CountGroupedBy(db *gorm.DB, column string) (map[string]int64, error) {
	return countGroupedBy(db, &entity.Appointment{}, column)
}

func (r *appointmentRepository) CountBetween(db *gorm.DB, from, to time.Time) (int64, error) {
	var total int64
	err := db.Model(&entity.Appointment{}).
		Where("appointment_date_time >= ? AND appointment_date_time < ?", from, to).
		Count(&total).Error
	return total, err
}

func (r *appointmentRepository) CountByDoctorBetween(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) (int64, error) {
	var total int64
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date_time >= ? AND appointment_date_time < ?", doctorID, from, to).
		Count(&total).Error
	return total, err
}

func (r *appointmentRepository) CountByDoctorAndStatus(db *gorm.DB, doctorID uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	var total int64
	err := db.Model(&entity.Appointment{}).Where("doctor_id = ? AND status = ?", doctorID, status).Count(&total).Error
	return total, err
}
