package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"hospital-management-system/internal/converter"
	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/delivery/http/middleware"
	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/domain/repository"
	"hospital-management-system/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxPatientCodeAttempts bounds how often a generated patient code is
// replaced after losing a race with a concurrent registration.
const maxPatientCodeAttempts = 5

var (
	ErrPatientNotFound    = fmt.Errorf("%w: patient not found", ErrNotFound)
	ErrPatientEmailExists = fmt.Errorf("%w: a patient with this email already exists", ErrValidationConflict)
	ErrPatientCodeExists  = fmt.Errorf("%w: patient id already exists", ErrValidationConflict)
	ErrInvalidDateFormat  = fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", ErrInvalidInput)
)

type PatientUsecase interface {
	FilterPatients(ctx context.Context, filter entity.PatientFilter) (*dto.PatientListResponse, error)
	NextPatientIdentifier(ctx context.Context) (string, error)
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	UpdatePatientStatus(ctx context.Context, id uuid.UUID, status entity.PatientStatus) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, id uuid.UUID) error
	GetDoctorPatients(ctx context.Context, doctorID uuid.UUID) (*dto.PatientListResponse, error)
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	userRepo     repository.UserRepository
	idGenerator  service.PatientIdentifierGenerator
	auditService service.AuditService
	now          func() time.Time
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	userRepo repository.UserRepository,
	idGenerator service.PatientIdentifierGenerator,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		userRepo:     userRepo,
		idGenerator:  idGenerator,
		auditService: auditService,
		now:          time.Now,
	}
}

// FilterPatients returns the patients matching every criterion in filter.
// Without criteria it lists everyone ordered by last name, ignoring case.
func (u *patientUsecase) FilterPatients(ctx context.Context, filter entity.PatientFilter) (*dto.PatientListResponse, error) {
	db := u.db.WithContext(ctx)

	var (
		patients []entity.Patient
		err      error
	)
	if filter.IsEmpty() {
		patients, err = u.patientRepo.FindAll(db)
		if err == nil {
			sortByLastName(patients)
		}
	} else {
		patients, err = u.patientRepo.FindWithFilter(db, filter)
	}
	if err != nil {
		u.log.Warnf("Failed to filter patients: %+v", err)
		return nil, storeError(err)
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func sortByLastName(patients []entity.Patient) {
	slices.SortStableFunc(patients, func(a, b entity.Patient) int {
		return strings.Compare(strings.ToLower(a.LastName), strings.ToLower(b.LastName))
	})
}

func (u *patientUsecase) NextPatientIdentifier(ctx context.Context) (string, error) {
	code, err := u.idGenerator.Next(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to generate patient id: %+v", err)
		return "", storeError(err)
	}
	return code, nil
}

// CreatePatient registers a patient. When the request carries no patient id
// one is generated; a generated id that collides on insert is replaced.
func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := newPatientFromRequest(req)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	emailTaken, err := u.patientRepo.ExistsByEmail(db, patient.Email)
	if err != nil {
		u.log.Warnf("Failed to check patient email: %+v", err)
		return nil, storeError(err)
	}
	if emailTaken {
		return nil, ErrPatientEmailExists
	}

	if patient.DoctorID != nil {
		if err := u.ensureDoctor(db, *patient.DoctorID); err != nil {
			return nil, err
		}
	}

	generated := patient.PatientCode == ""
	if !generated {
		codeTaken, err := u.patientRepo.ExistsByPatientCode(db, patient.PatientCode)
		if err != nil {
			u.log.Warnf("Failed to check patient id: %+v", err)
			return nil, storeError(err)
		}
		if codeTaken {
			return nil, ErrPatientCodeExists
		}
	}

	patient.RegistrationDate = u.now()

	for attempt := 1; ; attempt++ {
		if generated {
			code, err := u.idGenerator.Next(ctx, db)
			if err != nil {
				u.log.Warnf("Failed to generate patient id: %+v", err)
				return nil, storeError(err)
			}
			patient.PatientCode = code
		}

		err := u.patientRepo.Create(db, patient)
		if err == nil {
			break
		}
		if isDuplicateKeyError(err, "email") {
			return nil, ErrPatientEmailExists
		}
		if isDuplicateKeyError(err, "patient_code") {
			if generated && attempt < maxPatientCodeAttempts {
				u.log.Infof("Patient id %s was taken concurrently, retrying", patient.PatientCode)
				continue
			}
			return nil, ErrPatientCodeExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, storeError(err)
	}

	response := converter.PatientToResponse(patient)

	// Audit log - create patient
	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, db, &actorID, entity.AuditActionPatientCreate, "patient", patient.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return response, nil
}

func newPatientFromRequest(req *dto.CreatePatientRequest) (*entity.Patient, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	gender, err := entity.ParseGender(req.Gender)
	if err != nil {
		return nil, err
	}

	patient := &entity.Patient{
		PatientCode:           strings.ToUpper(strings.TrimSpace(req.PatientID)),
		FirstName:             strings.TrimSpace(req.FirstName),
		LastName:              strings.TrimSpace(req.LastName),
		Email:                 strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:                 req.Phone,
		DateOfBirth:           dob,
		Gender:                gender,
		Address:               req.Address,
		City:                  req.City,
		State:                 req.State,
		ZipCode:               req.ZipCode,
		Country:               req.Country,
		Nationality:           req.Nationality,
		Occupation:            req.Occupation,
		MedicalHistory:        req.MedicalHistory,
		Allergies:             req.Allergies,
		CurrentMedications:    req.CurrentMedications,
		EmergencyContact:      req.EmergencyContact,
		EmergencyPhone:        req.EmergencyPhone,
		EmergencyRelation:     req.EmergencyRelation,
		InsuranceProvider:     req.InsuranceProvider,
		InsurancePolicyNumber: req.InsurancePolicyNumber,
		InsuranceGroupNumber:  req.InsuranceGroupNumber,
		Status:                entity.PatientStatusActive,
		DoctorID:              req.DoctorID,
		Notes:                 req.Notes,
	}

	if req.BloodGroup != "" {
		bg, err := entity.ParseBloodGroup(req.BloodGroup)
		if err != nil {
			return nil, err
		}
		patient.BloodGroup = &bg
	}
	if req.MaritalStatus != "" {
		ms, err := entity.ParseMaritalStatus(req.MaritalStatus)
		if err != nil {
			return nil, err
		}
		patient.MaritalStatus = ms
	}
	if req.Status != "" {
		status, err := entity.ParsePatientStatus(req.Status)
		if err != nil {
			return nil, err
		}
		patient.Status = status
	}

	return patient, nil
}

// ensureDoctor checks that id names a user with the DOCTOR role.
func (u *patientUsecase) ensureDoctor(db *gorm.DB, id uuid.UUID) error {
	doctor, err := u.userRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return storeError(err)
	}
	if doctor == nil || doctor.Role != entity.RoleDoctor {
		return ErrDoctorNotFound
	}
	return nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, storeError(err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

// UpdatePatient applies the non-empty fields of req. Patient id and
// registration date never change.
func (u *patientUsecase) UpdatePatient(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, storeError(err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	oldValue := converter.PatientToResponse(patient)

	if err := applyPatientUpdate(patient, req); err != nil {
		return nil, err
	}
	if req.Email != "" && !strings.EqualFold(req.Email, oldValue.Email) {
		taken, err := u.patientRepo.ExistsByEmail(tx, req.Email)
		if err != nil {
			u.log.Warnf("Failed to check patient email: %+v", err)
			return nil, storeError(err)
		}
		if taken {
			return nil, ErrPatientEmailExists
		}
		patient.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.DoctorID != nil {
		if err := u.ensureDoctor(tx, *req.DoctorID); err != nil {
			return nil, err
		}
		patient.DoctorID = req.DoctorID
		patient.Doctor = nil
	}

	if err := u.patientRepo.Update(tx, patient); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrPatientEmailExists
		}
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, storeError(err)
	}

	newValue := converter.PatientToResponse(patient)
	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionPatientUpdate, "patient", id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	return newValue, nil
}

func applyPatientUpdate(patient *entity.Patient, req *dto.UpdatePatientRequest) error {
	setIfPresent := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setIfPresent(&patient.FirstName, strings.TrimSpace(req.FirstName))
	setIfPresent(&patient.LastName, strings.TrimSpace(req.LastName))
	setIfPresent(&patient.Phone, req.Phone)
	setIfPresent(&patient.Address, req.Address)
	setIfPresent(&patient.City, req.City)
	setIfPresent(&patient.State, req.State)
	setIfPresent(&patient.ZipCode, req.ZipCode)
	setIfPresent(&patient.Country, req.Country)
	setIfPresent(&patient.Occupation, req.Occupation)
	setIfPresent(&patient.MedicalHistory, req.MedicalHistory)
	setIfPresent(&patient.Allergies, req.Allergies)
	setIfPresent(&patient.CurrentMedications, req.CurrentMedications)
	setIfPresent(&patient.EmergencyContact, req.EmergencyContact)
	setIfPresent(&patient.EmergencyPhone, req.EmergencyPhone)
	setIfPresent(&patient.Notes, req.Notes)

	if req.BloodGroup != "" {
		bg, err := entity.ParseBloodGroup(req.BloodGroup)
		if err != nil {
			return err
		}
		patient.BloodGroup = &bg
	}
	if req.MaritalStatus != "" {
		ms, err := entity.ParseMaritalStatus(req.MaritalStatus)
		if err != nil {
			return err
		}
		patient.MaritalStatus = ms
	}
	return nil
}

func (u *patientUsecase) UpdatePatientStatus(ctx context.Context, id uuid.UUID, status entity.PatientStatus) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, storeError(err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	oldStatus := patient.Status
	patient.Status = status

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient status: %+v", err)
		return nil, storeError(err)
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionPatientUpdate, "patient", id.String(),
		map[string]string{"status": string(oldStatus)}, map[string]string{"status": string(status)}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return storeError(err)
	}
	if patient == nil {
		return ErrPatientNotFound
	}
	oldValue := converter.PatientToResponse(patient)

	rows, err := u.patientRepo.Delete(tx, id)
	if err != nil {
		if isForeignKeyError(err, "patient") {
			return fmt.Errorf("%w: patient still has appointments, records or prescriptions", ErrValidationConflict)
		}
		u.log.Warnf("Failed to delete patient: %+v", err)
		return storeError(err)
	}
	if rows == 0 {
		return ErrPatientNotFound
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionPatientDelete, "patient", id.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return storeError(err)
	}

	return nil
}

func (u *patientUsecase) GetDoctorPatients(ctx context.Context, doctorID uuid.UUID) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor patients: %+v", err)
		return nil, storeError(err)
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}
