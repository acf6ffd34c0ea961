package usecase

import (
	"context"
	"fmt"
	"time"

	"hospital-management-system/internal/converter"
	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/domain/repository"
	"hospital-management-system/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPrescriptionNotFound = fmt.Errorf("%w: prescription not found", ErrNotFound)

type PrescriptionUsecase interface {
	CreatePrescription(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	GetPrescription(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error)
	GetPatientPrescriptions(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error)
	GetMyPrescriptions(ctx context.Context) (*dto.PrescriptionListResponse, error)
	UpdatePrescriptionStatus(ctx context.Context, id uuid.UUID, status entity.PrescriptionStatus) (*dto.PrescriptionResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	patientRepo      repository.PatientRepository
	auditService     service.AuditService
	now              func() time.Time
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		patientRepo:      patientRepo,
		auditService:     auditService,
		now:              time.Now,
	}
}

func (u *prescriptionUsecase) CreatePrescription(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	caller, err := actorFromContext(ctx)
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

	issued := u.now()
	prescription := &entity.Prescription{
		PatientID:        patient.ID,
		DoctorID:         caller.ID,
		AppointmentID:    req.AppointmentID,
		PrescriptionDate: issued,
		MedicationName:   req.MedicationName,
		Dosage:           req.Dosage,
		Frequency:        req.Frequency,
		DurationDays:     req.DurationDays,
		Instructions:     req.Instructions,
		Route:            req.Route,
		Strength:         req.Strength,
		Quantity:         req.Quantity,
		Refills:          req.Refills,
		ExpiryDate:       entity.PrescriptionExpiry(issued, req.DurationDays),
		Status:           entity.PrescriptionStatusActive,
		Notes:            req.Notes,
		Patient:          patient,
	}

	if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, storeError(err)
	}

	response := converter.PrescriptionToResponse(prescription)

	if err := u.auditService.LogCreate(ctx, tx, &caller.ID, entity.AuditActionPrescriptionCreate, "prescription", prescription.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	return response, nil
}

func (u *prescriptionUsecase) GetPrescription(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, storeError(err)
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	if !caller.owns(prescription.DoctorID) {
		return nil, ErrNotYourData
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) GetPatientPrescriptions(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, storeError(err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	var prescriptions []entity.Prescription
	if caller.isAdmin() {
		prescriptions, err = u.prescriptionRepo.FindByPatientID(db, patientID)
	} else {
		prescriptions, err = u.prescriptionRepo.FindByPatientAndDoctor(db, patientID, caller.ID)
	}
	if err != nil {
		u.log.Warnf("Failed to find patient prescriptions: %+v", err)
		return nil, storeError(err)
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

func (u *prescriptionUsecase) GetMyPrescriptions(ctx context.Context) (*dto.PrescriptionListResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	prescriptions, err := u.prescriptionRepo.FindByDoctorID(u.db.WithContext(ctx), caller.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor prescriptions: %+v", err)
		return nil, storeError(err)
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

func (u *prescriptionUsecase) UpdatePrescriptionStatus(ctx context.Context, id uuid.UUID, status entity.PrescriptionStatus) (*dto.PrescriptionResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	prescription, err := u.prescriptionRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, storeError(err)
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	if !caller.owns(prescription.DoctorID) {
		return nil, ErrNotYourData
	}

	oldStatus := prescription.Status
	prescription.Status = status

	if err := u.prescriptionRepo.Update(tx, prescription); err != nil {
		u.log.Warnf("Failed to update prescription: %+v", err)
		return nil, storeError(err)
	}

	if err := u.auditService.LogUpdate(ctx, tx, &caller.ID, entity.AuditActionPrescriptionUpdate, "prescription", id.String(),
		map[string]string{"status": string(oldStatus)}, map[string]string{"status": string(status)}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	return converter.PrescriptionToResponse(prescription), nil
}
