package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hospitalData is the in-memory store shared by the read-only usecases.
type hospitalData struct {
	users         *memory.UserRepository
	departments   *memory.DepartmentRepository
	patients      *memory.PatientRepository
	rooms         *memory.RoomRepository
	appointments  *memory.AppointmentRepository
	records       *memory.MedicalRecordRepository
	prescriptions *memory.PrescriptionRepository
}

func newHospitalData() *hospitalData {
	return &hospitalData{
		users:         memory.NewUserRepository(),
		departments:   memory.NewDepartmentRepository(),
		patients:      memory.NewPatientRepository(),
		rooms:         memory.NewRoomRepository(),
		appointments:  memory.NewAppointmentRepository(),
		records:       memory.NewMedicalRecordRepository(),
		prescriptions: memory.NewPrescriptionRepository(),
	}
}

func (d *hospitalData) statistics(t *testing.T, now time.Time) StatisticsUsecase {
	t.Helper()
	uc := NewStatisticsUsecase(newTestDB(t), quietLogger(),
		d.users, d.departments, d.patients, d.rooms, d.appointments, d.records, d.prescriptions)
	uc.(*statisticsUsecase).now = func() time.Time { return now }
	return uc
}

func (d *hospitalData) addRooms(t *testing.T, statuses ...entity.RoomStatus) {
	t.Helper()
	for _, status := range statuses {
		require.NoError(t, d.rooms.Create(nil, &entity.Room{
			RoomNumber: uuid.NewString()[:8],
			RoomType:   entity.RoomTypeGeneralWard,
			Status:     status,
		}))
	}
}

func TestOccupancyRate(t *testing.T) {
	tests := []struct {
		total, occupied int64
		want            float64
	}{
		{0, 0, 0},
		{10, 3, 30.0},
		{3, 1, 33.33},
		{3, 2, 66.67},
		{4, 1, 25.0},
		{8, 8, 100.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OccupancyRate(tt.total, tt.occupied), "%d of %d", tt.occupied, tt.total)
	}
}

func TestComputeStatistics_ZeroFillsMembers(t *testing.T) {
	d := newHospitalData()
	d.addRooms(t, entity.RoomStatusOccupied, entity.RoomStatusOccupied, entity.RoomStatusAvailable)
	uc := d.statistics(t, time.Now())

	res, err := uc.ComputeStatistics(context.Background(), "rooms", "status")
	require.NoError(t, err)

	assert.Equal(t, "room", res.EntityType)
	assert.Equal(t, "status", res.Field)
	assert.Equal(t, map[string]int64{
		"AVAILABLE":    1,
		"OCCUPIED":     2,
		"MAINTENANCE":  0,
		"CLEANING":     0,
		"OUT_OF_ORDER": 0,
		"RESERVED":     0,
	}, res.Counts)
}

func TestComputeStatistics_NormalizesNames(t *testing.T) {
	d := newHospitalData()
	bg := entity.BloodGroupABNegative
	require.NoError(t, d.patients.Create(nil, &entity.Patient{PatientCode: "P0001", Email: "a@x.com", BloodGroup: &bg}))
	require.NoError(t, d.patients.Create(nil, &entity.Patient{PatientCode: "P0002", Email: "b@x.com"}))
	uc := d.statistics(t, time.Now())

	for _, field := range []string{"blood_group", "bloodGroup", "BLOOD-GROUP"} {
		res, err := uc.ComputeStatistics(context.Background(), "Patient", field)
		require.NoError(t, err, field)
		assert.Equal(t, "blood_group", res.Field)
		assert.Len(t, res.Counts, len(entity.BloodGroupValues))
		assert.EqualValues(t, 1, res.Counts["AB_NEGATIVE"])
	}
}

func TestComputeStatistics_Unsupported(t *testing.T) {
	uc := newHospitalData().statistics(t, time.Now())

	_, err := uc.ComputeStatistics(context.Background(), "room", "floor")
	assert.ErrorIs(t, err, ErrUnsupportedStatistic)
	assert.ErrorIs(t, err, ErrInvalidEnumValue)

	_, err = uc.ComputeStatistics(context.Background(), "invoice", "status")
	assert.ErrorIs(t, err, ErrUnsupportedStatistic)
}

func TestComputeStatistics_StoreUnavailable(t *testing.T) {
	d := newHospitalData()
	d.users.Err = errors.New("connection reset")
	uc := d.statistics(t, time.Now())

	_, err := uc.ComputeStatistics(context.Background(), "user", "role")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestNewPatientsSince(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	d := newHospitalData()
	for i, registered := range []time.Time{
		time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 14, 23, 59, 0, 0, time.UTC),
		time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	} {
		code := fmt.Sprintf("P%04d", i+1)
		require.NoError(t, d.patients.Create(nil, &entity.Patient{PatientCode: code, Email: code, RegistrationDate: registered}))
	}
	uc := d.statistics(t, now)
	ctx := context.Background()

	today, err := uc.NewPatientsSince(ctx, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, today)

	week, err := uc.NewPatientsSince(ctx, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 3, week)

	_, err = uc.NewPatientsSince(ctx, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPatientStatistics(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	d := newHospitalData()
	patients := []*entity.Patient{
		{PatientCode: "P0001", Email: "1", Gender: entity.GenderMale, Status: entity.PatientStatusActive, RegistrationDate: now},
		{PatientCode: "P0002", Email: "2", Gender: entity.GenderFemale, Status: entity.PatientStatusDischarged, RegistrationDate: now.AddDate(0, 0, -3)},
		{PatientCode: "P0003", Email: "3", Gender: entity.GenderFemale, Status: entity.PatientStatusActive, RegistrationDate: now.AddDate(0, -3, 0)},
	}
	for _, p := range patients {
		require.NoError(t, d.patients.Create(nil, p))
	}

	stats, err := d.statistics(t, now).PatientStatistics(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalPatients)
	assert.EqualValues(t, 2, stats.ActivePatients)
	assert.EqualValues(t, 1, stats.DischargedPatients)
	assert.EqualValues(t, 0, stats.InactivePatients)
	assert.EqualValues(t, 1, stats.MalePatients)
	assert.EqualValues(t, 2, stats.FemalePatients)
	assert.EqualValues(t, 1, stats.NewToday)
	assert.EqualValues(t, 2, stats.NewThisWeek)
	assert.EqualValues(t, 2, stats.NewThisMonth)
}

func TestDoctorDashboard(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	doctorID := uuid.New()
	otherDoctor := uuid.New()
	d := newHospitalData()

	require.NoError(t, d.patients.Create(nil, &entity.Patient{PatientCode: "P0001", Email: "1", DoctorID: &doctorID}))
	require.NoError(t, d.patients.Create(nil, &entity.Patient{PatientCode: "P0002", Email: "2", DoctorID: &otherDoctor}))
	for _, a := range []*entity.Appointment{
		{DoctorID: doctorID, AppointmentDateTime: now.Add(2 * time.Hour), Status: entity.AppointmentStatusScheduled},
		{DoctorID: doctorID, AppointmentDateTime: now.AddDate(0, 0, -1), Status: entity.AppointmentStatusCompleted},
		{DoctorID: otherDoctor, AppointmentDateTime: now, Status: entity.AppointmentStatusCompleted},
	} {
		require.NoError(t, d.appointments.Create(nil, a))
	}
	require.NoError(t, d.records.Create(nil, &entity.MedicalRecord{DoctorID: doctorID}))
	require.NoError(t, d.prescriptions.Create(nil, &entity.Prescription{DoctorID: doctorID, Status: entity.PrescriptionStatusActive}))
	require.NoError(t, d.prescriptions.Create(nil, &entity.Prescription{DoctorID: doctorID, Status: entity.PrescriptionStatusExpired}))

	dashboard, err := d.statistics(t, now).DoctorDashboard(context.Background(), doctorID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, dashboard.MyPatients)
	assert.EqualValues(t, 1, dashboard.TodayAppointments)
	assert.EqualValues(t, 1, dashboard.CompletedConsultations)
	assert.EqualValues(t, 1, dashboard.MedicalRecords)
	assert.EqualValues(t, 1, dashboard.ActivePrescriptions)
}

func TestAdminDashboardAndDatabaseStatistics(t *testing.T) {
	d := newHospitalData()
	for _, u := range []*entity.User{
		{Email: "admin@x.com", Role: entity.RoleAdmin, Status: entity.UserStatusActive},
		{Email: "doc1@x.com", Role: entity.RoleDoctor, Status: entity.UserStatusActive},
		{Email: "doc2@x.com", Role: entity.RoleDoctor, Status: entity.UserStatusInactive},
	} {
		require.NoError(t, d.users.Create(nil, u))
	}
	d.addRooms(t, entity.RoomStatusAvailable, entity.RoomStatusCleaning)
	uc := d.statistics(t, time.Now())

	dashboard, err := uc.AdminDashboard(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, dashboard.TotalUsers)
	assert.EqualValues(t, 2, dashboard.TotalDoctors)
	assert.EqualValues(t, 1, dashboard.TotalAdmins)
	assert.EqualValues(t, 2, dashboard.TotalRooms)
	assert.Zero(t, dashboard.TotalPatients)

	db, err := uc.DatabaseStatistics(context.Background())
	require.NoError(t, err)
	assert.Len(t, db.Tables, 7)
	assert.EqualValues(t, 3, db.Tables["users"])
	assert.EqualValues(t, 5, db.TotalRecords)
}
