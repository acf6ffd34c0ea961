//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"io"
	"sort"
	"testing"
	"time"

	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/repository"
	"hospital-management-system/internal/usecase"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createDoctor(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	doctor := &entity.User{
		FirstName: "Greg",
		LastName:  "House",
		Email:     email,
		Password:  "hash",
		Role:      entity.RoleDoctor,
		Status:    entity.UserStatusActive,
	}
	require.NoError(t, repository.NewUserRepository().Create(db, doctor))
	return doctor
}

type patientSeed struct {
	code, first, last, email, phone string
	gender                          entity.Gender
	status                          entity.PatientStatus
	bloodGroup                      *entity.BloodGroup
	doctorID                        *uuid.UUID
	registered                      time.Time
}

func createPatient(t *testing.T, db *gorm.DB, s patientSeed) *entity.Patient {
	t.Helper()
	if s.gender == "" {
		s.gender = entity.GenderOther
	}
	if s.status == "" {
		s.status = entity.PatientStatusActive
	}
	if s.registered.IsZero() {
		s.registered = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	patient := &entity.Patient{
		PatientCode:      s.code,
		FirstName:        s.first,
		LastName:         s.last,
		Email:            s.email,
		Phone:            s.phone,
		DateOfBirth:      time.Date(1980, 6, 1, 0, 0, 0, 0, time.UTC),
		Gender:           s.gender,
		Address:          "1 Main St",
		BloodGroup:       s.bloodGroup,
		Status:           s.status,
		DoctorID:         s.doctorID,
		RegistrationDate: s.registered,
	}
	require.NoError(t, repository.NewPatientRepository().Create(db, patient))
	return patient
}

func bloodGroup(b entity.BloodGroup) *entity.BloodGroup { return &b }

func patientCodes(patients []entity.Patient) []string {
	codes := make([]string, 0, len(patients))
	for _, p := range patients {
		codes = append(codes, p.PatientCode)
	}
	sort.Strings(codes)
	return codes
}

func TestPatientFilter_SearchMatchesEveryColumn(t *testing.T) {
	db := resetTables(t)
	repo := repository.NewPatientRepository()

	createPatient(t, db, patientSeed{code: "P0001", first: "Zelda", last: "Adams", email: "one@example.org", phone: "555-0001"})
	createPatient(t, db, patientSeed{code: "P0002", first: "Ann", last: "Quixote", email: "two@example.org", phone: "555-0002"})
	createPatient(t, db, patientSeed{code: "P0003", first: "Ann", last: "Brown", email: "kestrel@example.org", phone: "555-0003"})
	createPatient(t, db, patientSeed{code: "P0004", first: "Ann", last: "Green", email: "four@example.org", phone: "555-9876"})
	createPatient(t, db, patientSeed{code: "X7777", first: "Ann", last: "White", email: "five@example.org", phone: "555-0005"})

	tests := []struct {
		search string
		want   []string
	}{
		{"zelda", []string{"P0001"}},
		{"QUIX", []string{"P0002"}},
		{"Kestrel", []string{"P0003"}},
		{"9876", []string{"P0004"}},
		{"x77", []string{"X7777"}},
		{"  ann  ", []string{"P0002", "P0003", "P0004", "X7777"}},
		{"nobody", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			patients, err := repo.FindWithFilter(db, entity.PatientFilter{Search: tt.search})
			require.NoError(t, err)
			assert.Equal(t, tt.want, patientCodes(patients))
		})
	}
}

func TestPatientFilter_CombinesCriteria(t *testing.T) {
	db := resetTables(t)
	repo := repository.NewPatientRepository()
	doctor := createDoctor(t, db, "house@ppth.org")
	other := createDoctor(t, db, "wilson@ppth.org")

	createPatient(t, db, patientSeed{code: "P0001", first: "Ann", last: "Smith", email: "a@x.org", phone: "1",
		gender: entity.GenderFemale, bloodGroup: bloodGroup(entity.BloodGroupABPositive), doctorID: &doctor.ID})
	createPatient(t, db, patientSeed{code: "P0002", first: "Ann", last: "Smith", email: "b@x.org", phone: "2",
		gender: entity.GenderFemale, bloodGroup: bloodGroup(entity.BloodGroupABPositive), doctorID: &other.ID})
	createPatient(t, db, patientSeed{code: "P0003", first: "Ann", last: "Smith", email: "c@x.org", phone: "3",
		gender: entity.GenderMale, bloodGroup: bloodGroup(entity.BloodGroupABPositive), doctorID: &doctor.ID})
	createPatient(t, db, patientSeed{code: "P0004", first: "Ann", last: "Smith", email: "d@x.org", phone: "4",
		gender: entity.GenderFemale, status: entity.PatientStatusDischarged, bloodGroup: bloodGroup(entity.BloodGroupABPositive), doctorID: &doctor.ID})
	createPatient(t, db, patientSeed{code: "P0005", first: "Ann", last: "Smith", email: "e@x.org", phone: "5",
		gender: entity.GenderFemale, doctorID: &doctor.ID})

	status := entity.PatientStatusActive
	gender := entity.GenderFemale
	patients, err := repo.FindWithFilter(db, entity.PatientFilter{
		Search:     "smith",
		Status:     &status,
		Gender:     &gender,
		BloodGroup: bloodGroup(entity.BloodGroupABPositive),
		DoctorID:   &doctor.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"P0001"}, patientCodes(patients))

	unknown := uuid.New()
	patients, err = repo.FindWithFilter(db, entity.PatientFilter{DoctorID: &unknown})
	require.NoError(t, err)
	assert.Empty(t, patients)
}

func TestPatientFilter_SearchIsLiteral(t *testing.T) {
	db := resetTables(t)
	repo := repository.NewPatientRepository()

	createPatient(t, db, patientSeed{code: "P0001", first: "Ann", last: "Lee", email: "ann.lee@x.org", phone: "555"})
	createPatient(t, db, patientSeed{code: "P0002", first: "Bo", last: "Chen", email: "bo_chen@x.org", phone: "100%"})
	createPatient(t, db, patientSeed{code: "P0003", first: "Cy", last: `Back\slash`, email: "cy@x.org", phone: "777"})

	for search, want := range map[string][]string{
		"_":   {"P0002"},
		"%":   {"P0002"},
		`\`:   {"P0003"},
		"o_c": {"P0002"},
		"a%l": {},
	} {
		patients, err := repo.FindWithFilter(db, entity.PatientFilter{Search: search})
		require.NoError(t, err, search)
		assert.Equal(t, want, patientCodes(patients), search)
	}
}

func TestPatientFilter_AgreesWithInMemoryPredicate(t *testing.T) {
	db := resetTables(t)
	repo := repository.NewPatientRepository()
	doctor := createDoctor(t, db, "house@ppth.org")

	genders := entity.GenderValues
	statuses := []entity.PatientStatus{entity.PatientStatusActive, entity.PatientStatusDischarged}
	groups := []*entity.BloodGroup{nil, bloodGroup(entity.BloodGroupOPositive), bloodGroup(entity.BloodGroupANegative)}
	for i := 0; i < 12; i++ {
		seed := patientSeed{
			code:       fmt.Sprintf("P%04d", i+1),
			first:      []string{"Ann", "Bob", "Cleo"}[i%3],
			last:       []string{"Smith", "Lee", "O'Neil", "smithers"}[i%4],
			email:      fmt.Sprintf("patient%d@x.org", i),
			phone:      fmt.Sprintf("555-01%02d", i),
			gender:     genders[i%len(genders)],
			status:     statuses[i%len(statuses)],
			bloodGroup: groups[i%len(groups)],
		}
		if i%2 == 0 {
			seed.doctorID = &doctor.ID
		}
		createPatient(t, db, seed)
	}

	all, err := repo.FindAll(db)
	require.NoError(t, err)

	active := entity.PatientStatusActive
	female := entity.GenderFemale
	filters := []entity.PatientFilter{
		{Search: "smith"},
		{Search: "01"},
		{Search: "P000"},
		{Status: &active},
		{Gender: &female, Search: "ann"},
		{BloodGroup: bloodGroup(entity.BloodGroupOPositive)},
		{DoctorID: &doctor.ID, Status: &active},
	}
	for _, filter := range filters {
		got, err := repo.FindWithFilter(db, filter)
		require.NoError(t, err)

		var want []entity.Patient
		for i := range all {
			if filter.Matches(&all[i]) {
				want = append(want, all[i])
			}
		}
		assert.Equal(t, patientCodes(want), patientCodes(got), "%+v", filter)
	}
}

func TestPatientFilter_OrdersByLastNameIgnoringCase(t *testing.T) {
	db := resetTables(t)
	repo := repository.NewPatientRepository()

	createPatient(t, db, patientSeed{code: "P0001", first: "A", last: "Lee", email: "1@x.org", phone: "1"})
	createPatient(t, db, patientSeed{code: "P0002", first: "A", last: "adams", email: "2@x.org", phone: "2"})
	createPatient(t, db, patientSeed{code: "P0003", first: "A", last: "Chen", email: "3@x.org", phone: "3"})

	patients, err := repo.FindWithFilter(db, entity.PatientFilter{Search: "a"})
	require.NoError(t, err)
	require.Len(t, patients, 3)
	assert.Equal(t, "adams", patients[0].LastName)
	assert.Equal(t, "Chen", patients[1].LastName)
	assert.Equal(t, "Lee", patients[2].LastName)
}

func TestCountGroupedBy_ZeroFilledByStatistics(t *testing.T) {
	db := resetTables(t)

	createPatient(t, db, patientSeed{code: "P0001", first: "A", last: "A", email: "1@x.org", phone: "1",
		gender: entity.GenderFemale, bloodGroup: bloodGroup(entity.BloodGroupOPositive)})
	createPatient(t, db, patientSeed{code: "P0002", first: "B", last: "B", email: "2@x.org", phone: "2",
		gender: entity.GenderFemale, bloodGroup: bloodGroup(entity.BloodGroupOPositive)})
	createPatient(t, db, patientSeed{code: "P0003", first: "C", last: "C", email: "3@x.org", phone: "3",
		gender: entity.GenderMale})

	raw, err := repository.NewPatientRepository().CountGroupedBy(db, "blood_group")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"O_POSITIVE": 2}, raw)

	log := logrus.New()
	log.SetOutput(io.Discard)
	stats := usecase.NewStatisticsUsecase(db, log,
		repository.NewUserRepository(),
		repository.NewDepartmentRepository(),
		repository.NewPatientRepository(),
		repository.NewRoomRepository(),
		repository.NewAppointmentRepository(),
		repository.NewMedicalRecordRepository(),
		repository.NewPrescriptionRepository(),
	)

	byGroup, err := stats.ComputeStatistics(context.Background(), "patient", "blood_group")
	require.NoError(t, err)
	assert.Len(t, byGroup.Counts, len(entity.BloodGroupValues))
	assert.EqualValues(t, 2, byGroup.Counts["O_POSITIVE"])
	assert.Contains(t, byGroup.Counts, "AB_NEGATIVE")
	assert.Zero(t, byGroup.Counts["AB_NEGATIVE"])

	byGender, err := stats.ComputeStatistics(context.Background(), "patient", "gender")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"MALE": 1, "FEMALE": 2, "OTHER": 0}, byGender.Counts)

	byRoomStatus, err := stats.ComputeStatistics(context.Background(), "room", "status")
	require.NoError(t, err)
	assert.Len(t, byRoomStatus.Counts, len(entity.RoomStatusValues))
	for status, total := range byRoomStatus.Counts {
		assert.Zero(t, total, status)
	}
}

func TestCountRegisteredSince_IsInclusive(t *testing.T) {
	db := resetTables(t)
	threshold := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	createPatient(t, db, patientSeed{code: "P0001", first: "A", last: "A", email: "1@x.org", phone: "1", registered: threshold.Add(-time.Second)})
	createPatient(t, db, patientSeed{code: "P0002", first: "B", last: "B", email: "2@x.org", phone: "2", registered: threshold})
	createPatient(t, db, patientSeed{code: "P0003", first: "C", last: "C", email: "3@x.org", phone: "3", registered: threshold.AddDate(0, 0, 3)})

	total, err := repository.NewPatientRepository().CountRegisteredSince(db, threshold)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestAppointmentCountBetween_HalfOpen(t *testing.T) {
	db := resetTables(t)
	doctor := createDoctor(t, db, "house@ppth.org")
	patient := createPatient(t, db, patientSeed{code: "P0001", first: "A", last: "A", email: "1@x.org", phone: "1"})
	repo := repository.NewAppointmentRepository()

	from := time.Date(2024, 5, 27, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	for _, at := range []time.Time{from.Add(-time.Minute), from, to.Add(-time.Second), to} {
		require.NoError(t, repo.Create(db, &entity.Appointment{
			PatientID:           patient.ID,
			DoctorID:            doctor.ID,
			AppointmentDateTime: at,
			AppointmentType:     entity.AppointmentTypeConsultation,
			Status:              entity.AppointmentStatusScheduled,
		}))
	}

	total, err := repo.CountBetween(db, from, to)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestMedicalRecordsByPatientAndDoctor(t *testing.T) {
	db := resetTables(t)
	author := createDoctor(t, db, "house@ppth.org")
	other := createDoctor(t, db, "wilson@ppth.org")
	patient := createPatient(t, db, patientSeed{code: "P0001", first: "A", last: "A", email: "1@x.org", phone: "1"})
	repo := repository.NewMedicalRecordRepository()

	for _, doctorID := range []uuid.UUID{author.ID, author.ID, other.ID} {
		require.NoError(t, repo.Create(db, &entity.MedicalRecord{
			PatientID:  patient.ID,
			DoctorID:   doctorID,
			RecordDate: time.Now().UTC(),
			RecordType: entity.RecordTypeConsultation,
		}))
	}

	mine, err := repo.FindByPatientAndDoctor(db, patient.ID, author.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := repo.FindByPatientID(db, patient.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
