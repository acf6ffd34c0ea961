package usecase

import (
	"context"
	"testing"
	"time"

	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/delivery/http/middleware"
	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/repository/memory"
	"hospital-management-system/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clinicalFixture struct {
	appointments  AppointmentUsecase
	records       MedicalRecordUsecase
	prescriptions PrescriptionUsecase
	data          *hospitalData
	patient       *entity.Patient
	now           time.Time
}

func newClinicalFixture(t *testing.T) *clinicalFixture {
	t.Helper()
	log := quietLogger()
	db := newTestDB(t)
	data := newHospitalData()
	audit := service.NewAuditService(log, memory.NewAuditLogRepository())

	patient := storedPatient("P0001", "Mulder")
	require.NoError(t, data.patients.Create(nil, patient))

	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	records := NewMedicalRecordUsecase(db, log, data.records, data.patients, data.appointments, audit)
	records.(*medicalRecordUsecase).now = func() time.Time { return now }
	prescriptions := NewPrescriptionUsecase(db, log, data.prescriptions, data.patients, audit)
	prescriptions.(*prescriptionUsecase).now = func() time.Time { return now }

	return &clinicalFixture{
		appointments:  NewAppointmentUsecase(db, log, data.appointments, data.patients, audit),
		records:       records,
		prescriptions: prescriptions,
		data:          data,
		patient:       patient,
		now:           now,
	}
}

func asDoctor(id uuid.UUID) context.Context {
	return middleware.WithUser(context.Background(), id, "doctor@example.com", entity.RoleDoctor)
}

func asAdmin() context.Context {
	return middleware.WithUser(context.Background(), uuid.New(), "admin@example.com", entity.RoleAdmin)
}

func TestScheduleAppointment(t *testing.T) {
	f := newClinicalFixture(t)
	doctorID := uuid.New()
	at := f.now.Add(24 * time.Hour)

	res, err := f.appointments.ScheduleAppointment(asDoctor(doctorID), &dto.CreateAppointmentRequest{
		PatientID:           f.patient.ID,
		AppointmentDateTime: at,
		AppointmentType:     "follow_up",
	})
	require.NoError(t, err)

	assert.Equal(t, doctorID, res.DoctorID)
	assert.Equal(t, string(entity.AppointmentStatusScheduled), res.Status)
	assert.Equal(t, string(entity.AppointmentTypeFollowUp), res.AppointmentType)
	assert.Equal(t, at, res.AppointmentDateTime)

	mine, err := f.appointments.GetMyAppointments(asDoctor(doctorID))
	require.NoError(t, err)
	assert.Equal(t, 1, mine.Total)

	others, err := f.appointments.GetMyAppointments(asDoctor(uuid.New()))
	require.NoError(t, err)
	assert.Zero(t, others.Total)
}

func TestScheduleAppointment_Rejections(t *testing.T) {
	f := newClinicalFixture(t)

	_, err := f.appointments.ScheduleAppointment(context.Background(), &dto.CreateAppointmentRequest{PatientID: f.patient.ID, AppointmentType: "CONSULTATION"})
	assert.ErrorIs(t, err, ErrNoActor)

	_, err = f.appointments.ScheduleAppointment(asDoctor(uuid.New()), &dto.CreateAppointmentRequest{PatientID: uuid.New(), AppointmentType: "CONSULTATION"})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = f.appointments.ScheduleAppointment(asDoctor(uuid.New()), &dto.CreateAppointmentRequest{PatientID: f.patient.ID, AppointmentType: "SURGERY"})
	assert.ErrorIs(t, err, ErrInvalidEnumValue)
}

func TestUpdateAppointment_Ownership(t *testing.T) {
	f := newClinicalFixture(t)
	doctorID := uuid.New()

	created, err := f.appointments.ScheduleAppointment(asDoctor(doctorID), &dto.CreateAppointmentRequest{
		PatientID:       f.patient.ID,
		AppointmentType: "CONSULTATION",
		Notes:           "first visit",
	})
	require.NoError(t, err)

	_, err = f.appointments.UpdateAppointment(asDoctor(uuid.New()), created.ID, &dto.UpdateAppointmentRequest{Status: "CANCELLED"})
	assert.ErrorIs(t, err, ErrNotYourData)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.appointments.GetAppointment(asDoctor(uuid.New()), created.ID)
	assert.ErrorIs(t, err, ErrNotYourData)

	res, err := f.appointments.UpdateAppointment(asDoctor(doctorID), created.ID, &dto.UpdateAppointmentRequest{Status: "completed", Diagnosis: "flu"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCompleted), res.Status)
	assert.Equal(t, "flu", res.Diagnosis)
	assert.Equal(t, "first visit", res.Notes)

	res, err = f.appointments.UpdateAppointment(asAdmin(), created.ID, &dto.UpdateAppointmentRequest{Notes: "reviewed"})
	require.NoError(t, err)
	assert.Equal(t, "reviewed", res.Notes)

	_, err = f.appointments.UpdateAppointment(asDoctor(doctorID), created.ID, &dto.UpdateAppointmentRequest{Status: "LATE"})
	assert.ErrorIs(t, err, ErrInvalidEnumValue)

	_, err = f.appointments.UpdateAppointment(asDoctor(doctorID), uuid.New(), &dto.UpdateAppointmentRequest{})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCreateRecord_UpdatesLastVisit(t *testing.T) {
	f := newClinicalFixture(t)
	doctorID := uuid.New()

	res, err := f.records.CreateRecord(asDoctor(doctorID), &dto.MedicalRecordRequest{
		PatientID:  f.patient.ID,
		RecordType: "lab_results",
		Diagnosis:  "anemia",
	})
	require.NoError(t, err)

	assert.Equal(t, doctorID, res.DoctorID)
	assert.Equal(t, f.now, res.RecordDate)
	assert.Equal(t, string(entity.RecordTypeLabResults), res.RecordType)

	patient, err := f.data.patients.FindByID(nil, f.patient.ID)
	require.NoError(t, err)
	require.NotNil(t, patient.LastVisit)
	assert.Equal(t, f.now, *patient.LastVisit)

	list, err := f.records.GetPatientRecords(asDoctor(doctorID), f.patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestCreateRecord_UnknownAppointment(t *testing.T) {
	f := newClinicalFixture(t)
	missing := uuid.New()

	_, err := f.records.CreateRecord(asDoctor(uuid.New()), &dto.MedicalRecordRequest{
		PatientID:     f.patient.ID,
		AppointmentID: &missing,
		RecordType:    "CONSULTATION",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.Nil(t, f.patient.LastVisit)
}

func TestUpdateRecord(t *testing.T) {
	f := newClinicalFixture(t)
	doctorID := uuid.New()

	created, err := f.records.CreateRecord(asDoctor(doctorID), &dto.MedicalRecordRequest{PatientID: f.patient.ID, RecordType: "CONSULTATION"})
	require.NoError(t, err)

	_, err = f.records.UpdateRecord(asDoctor(uuid.New()), created.ID, &dto.MedicalRecordRequest{PatientID: f.patient.ID, RecordType: "CONSULTATION"})
	assert.ErrorIs(t, err, ErrNotYourData)

	_, err = f.records.UpdateRecord(asDoctor(doctorID), created.ID, &dto.MedicalRecordRequest{PatientID: uuid.New(), RecordType: "CONSULTATION"})
	assert.ErrorIs(t, err, ErrValidationConflict)

	res, err := f.records.UpdateRecord(asDoctor(doctorID), created.ID, &dto.MedicalRecordRequest{
		PatientID:     f.patient.ID,
		RecordType:    "FOLLOW_UP",
		TreatmentPlan: "rest",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.RecordTypeFollowUp), res.RecordType)
	assert.Equal(t, "rest", res.TreatmentPlan)

	_, err = f.records.GetRecord(asDoctor(doctorID), uuid.New())
	assert.ErrorIs(t, err, ErrMedicalRecordNotFound)
}

func TestCreatePrescription_Expiry(t *testing.T) {
	f := newClinicalFixture(t)
	doctorID := uuid.New()
	days := 7

	res, err := f.prescriptions.CreatePrescription(asDoctor(doctorID), &dto.CreatePrescriptionRequest{
		PatientID:      f.patient.ID,
		MedicationName: "Amoxicillin",
		Dosage:         "500mg",
		Frequency:      "3x daily",
		DurationDays:   &days,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-17", res.ExpiryDate)
	assert.Equal(t, string(entity.PrescriptionStatusActive), res.Status)

	res, err = f.prescriptions.CreatePrescription(asDoctor(doctorID), &dto.CreatePrescriptionRequest{
		PatientID:      f.patient.ID,
		MedicationName: "Ibuprofen",
		Dosage:         "200mg",
		Frequency:      "as needed",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-04-09", res.ExpiryDate)

	mine, err := f.prescriptions.GetMyPrescriptions(asDoctor(doctorID))
	require.NoError(t, err)
	assert.Equal(t, 2, mine.Total)
}

func TestUpdatePrescriptionStatus(t *testing.T) {
	f := newClinicalFixture(t)
	doctorID := uuid.New()

	created, err := f.prescriptions.CreatePrescription(asDoctor(doctorID), &dto.CreatePrescriptionRequest{
		PatientID:      f.patient.ID,
		MedicationName: "Amoxicillin",
		Dosage:         "500mg",
		Frequency:      "3x daily",
	})
	require.NoError(t, err)

	_, err = f.prescriptions.UpdatePrescriptionStatus(asDoctor(uuid.New()), created.ID, entity.PrescriptionStatusCancelled)
	assert.ErrorIs(t, err, ErrNotYourData)

	res, err := f.prescriptions.UpdatePrescriptionStatus(asDoctor(doctorID), created.ID, entity.PrescriptionStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PrescriptionStatusCompleted), res.Status)

	_, err = f.prescriptions.UpdatePrescriptionStatus(asDoctor(doctorID), uuid.New(), entity.PrescriptionStatusCompleted)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)
}

func TestClinicalReads_RestrictedToAuthor(t *testing.T) {
	f := newClinicalFixture(t)
	author := uuid.New()
	other := uuid.New()

	record, err := f.records.CreateRecord(asDoctor(author), &dto.MedicalRecordRequest{
		PatientID:  f.patient.ID,
		RecordType: "CONSULTATION",
		Diagnosis:  "hypertension",
	})
	require.NoError(t, err)
	prescription, err := f.prescriptions.CreatePrescription(asDoctor(author), &dto.CreatePrescriptionRequest{
		PatientID:      f.patient.ID,
		MedicationName: "Lisinopril",
		Dosage:         "10mg",
		Frequency:      "daily",
	})
	require.NoError(t, err)

	_, err = f.records.GetRecord(asDoctor(other), record.ID)
	assert.ErrorIs(t, err, ErrNotYourData)
	_, err = f.prescriptions.GetPrescription(asDoctor(other), prescription.ID)
	assert.ErrorIs(t, err, ErrNotYourData)

	records, err := f.records.GetPatientRecords(asDoctor(other), f.patient.ID)
	require.NoError(t, err)
	assert.Zero(t, records.Total)
	prescriptions, err := f.prescriptions.GetPatientPrescriptions(asDoctor(other), f.patient.ID)
	require.NoError(t, err)
	assert.Zero(t, prescriptions.Total)

	got, err := f.records.GetRecord(asDoctor(author), record.ID)
	require.NoError(t, err)
	assert.Equal(t, "hypertension", got.Diagnosis)
	records, err = f.records.GetPatientRecords(asDoctor(author), f.patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, records.Total)
	prescriptions, err = f.prescriptions.GetPatientPrescriptions(asDoctor(author), f.patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, prescriptions.Total)
}

func TestClinicalReads_AdminSeesEverything(t *testing.T) {
	f := newClinicalFixture(t)

	record, err := f.records.CreateRecord(asDoctor(uuid.New()), &dto.MedicalRecordRequest{PatientID: f.patient.ID, RecordType: "CONSULTATION"})
	require.NoError(t, err)
	_, err = f.records.CreateRecord(asDoctor(uuid.New()), &dto.MedicalRecordRequest{PatientID: f.patient.ID, RecordType: "FOLLOW_UP"})
	require.NoError(t, err)
	prescription, err := f.prescriptions.CreatePrescription(asDoctor(uuid.New()), &dto.CreatePrescriptionRequest{
		PatientID:      f.patient.ID,
		MedicationName: "Metformin",
		Dosage:         "500mg",
		Frequency:      "twice daily",
	})
	require.NoError(t, err)

	_, err = f.records.GetRecord(asAdmin(), record.ID)
	assert.NoError(t, err)
	_, err = f.prescriptions.GetPrescription(asAdmin(), prescription.ID)
	assert.NoError(t, err)

	records, err := f.records.GetPatientRecords(asAdmin(), f.patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, records.Total)
	prescriptions, err := f.prescriptions.GetPatientPrescriptions(asAdmin(), f.patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, prescriptions.Total)
}

func TestClinicalReads_Rejections(t *testing.T) {
	f := newClinicalFixture(t)

	_, err := f.prescriptions.GetPatientPrescriptions(asDoctor(uuid.New()), uuid.New())
	assert.ErrorIs(t, err, ErrPatientNotFound)
	_, err = f.records.GetPatientRecords(asDoctor(uuid.New()), uuid.New())
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = f.records.GetRecord(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoActor)
	_, err = f.prescriptions.GetPatientPrescriptions(context.Background(), f.patient.ID)
	assert.ErrorIs(t, err, ErrNoActor)
}
