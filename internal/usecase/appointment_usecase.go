package usecase

import (
	"context"
	"fmt"

	"hospital-management-system/internal/converter"
	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/domain/repository"
	"hospital-management-system/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrAppointmentNotFound = fmt.Errorf("%w: appointment not found", ErrNotFound)

type AppointmentUsecase interface {
	// ScheduleAppointment books an appointment with the calling doctor.
	ScheduleAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) ScheduleAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appointmentType, err := entity.ParseAppointmentType(req.AppointmentType)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, storeError(err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointment := &entity.Appointment{
		PatientID:           patient.ID,
		DoctorID:            caller.ID,
		AppointmentDateTime: req.AppointmentDateTime,
		AppointmentType:     appointmentType,
		Status:              entity.AppointmentStatusScheduled,
		Notes:               req.Notes,
		Symptoms:            req.Symptoms,
		Patient:             patient,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, storeError(err)
	}

	response := converter.AppointmentToResponse(appointment)

	if err := u.auditService.LogCreate(ctx, tx, &caller.ID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	return response, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, storeError(err)
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !caller.owns(appointment.DoctorID) {
		return nil, ErrNotYourData
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), caller.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor appointments: %+v", err)
		return nil, storeError(err)
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all appointments: %+v", err)
		return nil, storeError(err)
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var status *entity.AppointmentStatus
	if req.Status != "" {
		parsed, err := entity.ParseAppointmentStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = &parsed
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, storeError(err)
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !caller.owns(appointment.DoctorID) {
		return nil, ErrNotYourData
	}

	oldValue := converter.AppointmentToResponse(appointment)

	if status != nil {
		appointment.Status = *status
	}
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}
	if req.Diagnosis != "" {
		appointment.Diagnosis = req.Diagnosis
	}
	if req.Prescription != "" {
		appointment.Prescription = req.Prescription
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, storeError(err)
	}

	newValue := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogUpdate(ctx, tx, &caller.ID, entity.AuditActionAppointmentUpdate, "appointment", id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	return newValue, nil
}
