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

var ErrMedicalRecordNotFound = fmt.Errorf("%w: medical record not found", ErrNotFound)

type MedicalRecordUsecase interface {
	// CreateRecord writes a record for the calling doctor and stamps the
	// patient's last visit.
	CreateRecord(ctx context.Context, req *dto.MedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	UpdateRecord(ctx context.Context, id uuid.UUID, req *dto.MedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*dto.MedicalRecordResponse, error)
	// GetPatientRecords lists the caller's records for a patient, or every
	// record of the patient when the caller is an administrator.
	GetPatientRecords(ctx context.Context, patientID uuid.UUID) (*dto.MedicalRecordListResponse, error)
	GetMyRecords(ctx context.Context) (*dto.MedicalRecordListResponse, error)
}

type medicalRecordUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	recordRepo      repository.MedicalRecordRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
	now             func() time.Time
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.MedicalRecordRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:              db,
		log:             log,
		recordRepo:      recordRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		now:             time.Now,
	}
}

func (u *medicalRecordUsecase) CreateRecord(ctx context.Context, req *dto.MedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	recordType, err := entity.ParseRecordType(req.RecordType)
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

	if req.AppointmentID != nil {
		if err := u.ensureAppointment(tx, *req.AppointmentID); err != nil {
			return nil, err
		}
	}

	now := u.now()
	record := &entity.MedicalRecord{
		PatientID:     patient.ID,
		DoctorID:      caller.ID,
		AppointmentID: req.AppointmentID,
		RecordDate:    now,
		RecordType:    recordType,
		Patient:       patient,
	}
	applyRecordFields(record, req)

	if err := u.recordRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, storeError(err)
	}

	patient.LastVisit = &now
	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient last visit: %+v", err)
		return nil, storeError(err)
	}

	response := converter.MedicalRecordToResponse(record)

	if err := u.auditService.LogCreate(ctx, tx, &caller.ID, entity.AuditActionRecordCreate, "medical_record", record.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	return response, nil
}

func (u *medicalRecordUsecase) ensureAppointment(db *gorm.DB, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return storeError(err)
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	return nil
}

func applyRecordFields(record *entity.MedicalRecord, req *dto.MedicalRecordRequest) {
	record.ChiefComplaint = req.ChiefComplaint
	record.HistoryOfPresentIllness = req.HistoryOfPresentIllness
	record.PhysicalExamination = req.PhysicalExamination
	record.Diagnosis = req.Diagnosis
	record.TreatmentPlan = req.TreatmentPlan
	record.Notes = req.Notes
	record.VitalSigns = req.VitalSigns
	record.Allergies = req.Allergies
	record.Medications = req.Medications
}

func (u *medicalRecordUsecase) UpdateRecord(ctx context.Context, id uuid.UUID, req *dto.MedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	recordType, err := entity.ParseRecordType(req.RecordType)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record, err := u.recordRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find medical record: %+v", err)
		return nil, storeError(err)
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}
	if !caller.owns(record.DoctorID) {
		return nil, ErrNotYourData
	}
	// A record stays attached to the patient it was written for.
	if record.PatientID != req.PatientID {
		return nil, fmt.Errorf("%w: a medical record cannot move to another patient", ErrValidationConflict)
	}

	if req.AppointmentID != nil {
		if err := u.ensureAppointment(tx, *req.AppointmentID); err != nil {
			return nil, err
		}
	}

	oldValue := converter.MedicalRecordToResponse(record)
	if req.AppointmentID != nil {
		record.AppointmentID = req.AppointmentID
	}
	record.RecordType = recordType
	applyRecordFields(record, req)

	if err := u.recordRepo.Update(tx, record); err != nil {
		u.log.Warnf("Failed to update medical record: %+v", err)
		return nil, storeError(err)
	}

	newValue := converter.MedicalRecordToResponse(record)
	if err := u.auditService.LogUpdate(ctx, tx, &caller.ID, entity.AuditActionRecordUpdate, "medical_record", id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	return newValue, nil
}

func (u *medicalRecordUsecase) GetRecord(ctx context.Context, id uuid.UUID) (*dto.MedicalRecordResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medical record: %+v", err)
		return nil, storeError(err)
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}
	if !caller.owns(record.DoctorID) {
		return nil, ErrNotYourData
	}

	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) GetPatientRecords(ctx context.Context, patientID uuid.UUID) (*dto.MedicalRecordListResponse, error) {
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

	var records []entity.MedicalRecord
	if caller.isAdmin() {
		records, err = u.recordRepo.FindByPatientID(db, patientID)
	} else {
		records, err = u.recordRepo.FindByPatientAndDoctor(db, patientID, caller.ID)
	}
	if err != nil {
		u.log.Warnf("Failed to find patient medical records: %+v", err)
		return nil, storeError(err)
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

func (u *medicalRecordUsecase) GetMyRecords(ctx context.Context) (*dto.MedicalRecordListResponse, error) {
	caller, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := u.recordRepo.FindByDoctorID(u.db.WithContext(ctx), caller.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor medical records: %+v", err)
		return nil, storeError(err)
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}
