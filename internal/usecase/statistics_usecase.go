package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrUnsupportedStatistic = fmt.Errorf("%w: unsupported statistic", ErrInvalidEnumValue)

type StatisticsUsecase interface {
	// ComputeStatistics counts entityType rows per member of the enum field,
	// listing members with no rows as 0.
	ComputeStatistics(ctx context.Context, entityType, field string) (*dto.StatisticsResponse, error)
	// NewPatientsSince counts patients registered on or after the start of
	// today minus days.
	NewPatientsSince(ctx context.Context, days int) (int64, error)
	PatientStatistics(ctx context.Context) (*dto.PatientStatisticsResponse, error)
	DoctorDashboard(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorDashboardResponse, error)
	AdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error)
	DatabaseStatistics(ctx context.Context) (*dto.DatabaseStatisticsResponse, error)
}

// OccupancyRate is occupied/total as a percentage rounded half away from
// zero to two places. An empty ward has a rate of 0.
func OccupancyRate(total, occupied int64) float64 {
	if total <= 0 {
		return 0
	}
	rate := decimal.NewFromInt(occupied).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(total))
	return rate.Round(2).InexactFloat64()
}

func roundPercent(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// zeroFill returns one entry per enum member, taking counts from grouped.
// Stored values outside the enum are left out.
func zeroFill(grouped map[string]int64, members []string) map[string]int64 {
	counts := make(map[string]int64, len(members))
	for _, m := range members {
		counts[m] = grouped[m]
	}
	return counts
}

type statisticsField struct {
	column  string
	members []string
}

type statisticsTarget struct {
	name    string
	counter func(u *statisticsUsecase) repository.GroupCounter
	fields  map[string]statisticsField
}

// statisticsTargets lists every (entity, field) pair that can be grouped.
// Keys are normalized with normalizeStatisticsName.
var statisticsTargets = map[string]statisticsTarget{
	"user": {
		name:    "user",
		counter: func(u *statisticsUsecase) repository.GroupCounter { return u.userRepo },
		fields: map[string]statisticsField{
			"role":   {"role", entity.EnumStrings(entity.RoleValues)},
			"status": {"status", entity.EnumStrings(entity.UserStatusValues)},
		},
	},
	"department": {
		name:    "department",
		counter: func(u *statisticsUsecase) repository.GroupCounter { return u.departmentRepo },
		fields: map[string]statisticsField{
			"status": {"status", entity.EnumStrings(entity.DepartmentStatusValues)},
		},
	},
	"patient": {
		name:    "patient",
		counter: func(u *statisticsUsecase) repository.GroupCounter { return u.patientRepo },
		fields: map[string]statisticsField{
			"status":     {"status", entity.EnumStrings(entity.PatientStatusValues)},
			"gender":     {"gender", entity.EnumStrings(entity.GenderValues)},
			"bloodgroup": {"blood_group", entity.EnumStrings(entity.BloodGroupValues)},
		},
	},
	"room": {
		name:    "room",
		counter: func(u *statisticsUsecase) repository.GroupCounter { return u.roomRepo },
		fields: map[string]statisticsField{
			"status":   {"status", entity.EnumStrings(entity.RoomStatusValues)},
			"roomtype": {"room_type", entity.EnumStrings(entity.RoomTypeValues)},
		},
	},
	"appointment": {
		name:    "appointment",
		counter: func(u *statisticsUsecase) repository.GroupCounter { return u.appointmentRepo },
		fields: map[string]statisticsField{
			"status":          {"status", entity.EnumStrings(entity.AppointmentStatusValues)},
			"appointmenttype": {"appointment_type", entity.EnumStrings(entity.AppointmentTypeValues)},
		},
	},
	"medicalrecord": {
		name:    "medical_record",
		counter: func(u *statisticsUsecase) repository.GroupCounter { return u.recordRepo },
		fields: map[string]statisticsField{
			"recordtype": {"record_type", entity.EnumStrings(entity.RecordTypeValues)},
		},
	},
	"prescription": {
		name:    "prescription",
		counter: func(u *statisticsUsecase) repository.GroupCounter { return u.prescriptionRepo },
		fields: map[string]statisticsField{
			"status": {"status", entity.EnumStrings(entity.PrescriptionStatusValues)},
		},
	},
}

// normalizeStatisticsName folds "blood_group", "bloodGroup" and "blood-group"
// to the same key.
func normalizeStatisticsName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "").Replace(s)
}

type statisticsUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	departmentRepo   repository.DepartmentRepository
	patientRepo      repository.PatientRepository
	roomRepo         repository.RoomRepository
	appointmentRepo  repository.AppointmentRepository
	recordRepo       repository.MedicalRecordRepository
	prescriptionRepo repository.PrescriptionRepository
	now              func() time.Time
}

func NewStatisticsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	departmentRepo repository.DepartmentRepository,
	patientRepo repository.PatientRepository,
	roomRepo repository.RoomRepository,
	appointmentRepo repository.AppointmentRepository,
	recordRepo repository.MedicalRecordRepository,
	prescriptionRepo repository.PrescriptionRepository,
) StatisticsUsecase {
	return &statisticsUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		departmentRepo:   departmentRepo,
		patientRepo:      patientRepo,
		roomRepo:         roomRepo,
		appointmentRepo:  appointmentRepo,
		recordRepo:       recordRepo,
		prescriptionRepo: prescriptionRepo,
		now:              time.Now,
	}
}

// lookupStatistic also accepts plural entity names such as "rooms".
func lookupStatistic(entityType, field string) (statisticsTarget, statisticsField, error) {
	key := normalizeStatisticsName(entityType)
	target, ok := statisticsTargets[key]
	if !ok {
		target, ok = statisticsTargets[strings.TrimSuffix(key, "s")]
	}
	if !ok {
		return statisticsTarget{}, statisticsField{}, fmt.Errorf("%w: entity type %q", ErrUnsupportedStatistic, entityType)
	}

	f, ok := target.fields[normalizeStatisticsName(field)]
	if !ok {
		return statisticsTarget{}, statisticsField{}, fmt.Errorf("%w: %s has no field %q", ErrUnsupportedStatistic, target.name, field)
	}
	return target, f, nil
}

func (u *statisticsUsecase) ComputeStatistics(ctx context.Context, entityType, field string) (*dto.StatisticsResponse, error) {
	target, f, err := lookupStatistic(entityType, field)
	if err != nil {
		return nil, err
	}

	counts, err := u.grouped(u.db.WithContext(ctx), target.counter(u), f)
	if err != nil {
		return nil, err
	}

	return &dto.StatisticsResponse{
		EntityType: target.name,
		Field:      f.column,
		Counts:     counts,
	}, nil
}

func (u *statisticsUsecase) grouped(db *gorm.DB, counter repository.GroupCounter, f statisticsField) (map[string]int64, error) {
	grouped, err := counter.CountGroupedBy(db, f.column)
	if err != nil {
		u.log.Warnf("Failed to count by %s: %+v", f.column, err)
		return nil, storeError(err)
	}
	return zeroFill(grouped, f.members), nil
}

func (u *statisticsUsecase) NewPatientsSince(ctx context.Context, days int) (int64, error) {
	if days < 0 {
		return 0, fmt.Errorf("%w: days must not be negative", ErrInvalidInput)
	}

	threshold := startOfDay(u.now()).AddDate(0, 0, -days)
	total, err := u.patientRepo.CountRegisteredSince(u.db.WithContext(ctx), threshold)
	if err != nil {
		u.log.Warnf("Failed to count new patients: %+v", err)
		return 0, storeError(err)
	}
	return total, nil
}

func (u *statisticsUsecase) PatientStatistics(ctx context.Context) (*dto.PatientStatisticsResponse, error) {
	db := u.db.WithContext(ctx)

	total, err := u.patientRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, storeError(err)
	}

	patient := statisticsTargets["patient"]
	byStatus, err := u.grouped(db, u.patientRepo, patient.fields["status"])
	if err != nil {
		return nil, err
	}
	byGender, err := u.grouped(db, u.patientRepo, patient.fields["gender"])
	if err != nil {
		return nil, err
	}

	stats := &dto.PatientStatisticsResponse{
		TotalPatients:      total,
		ActivePatients:     byStatus[string(entity.PatientStatusActive)],
		InactivePatients:   byStatus[string(entity.PatientStatusInactive)],
		DischargedPatients: byStatus[string(entity.PatientStatusDischarged)],
		MalePatients:       byGender[string(entity.GenderMale)],
		FemalePatients:     byGender[string(entity.GenderFemale)],
	}

	if stats.NewToday, err = u.NewPatientsSince(ctx, 0); err != nil {
		return nil, err
	}
	if stats.NewThisWeek, err = u.NewPatientsSince(ctx, 7); err != nil {
		return nil, err
	}
	if stats.NewThisMonth, err = u.NewPatientsSince(ctx, 30); err != nil {
		return nil, err
	}

	return stats, nil
}

func (u *statisticsUsecase) DoctorDashboard(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorDashboardResponse, error) {
	db := u.db.WithContext(ctx)
	today := startOfDay(u.now())

	var (
		dashboard dto.DoctorDashboardResponse
		err       error
	)

	if dashboard.MyPatients, err = u.patientRepo.CountByDoctorID(db, doctorID); err != nil {
		u.log.Warnf("Failed to count doctor patients: %+v", err)
		return nil, storeError(err)
	}
	if dashboard.TodayAppointments, err = u.appointmentRepo.CountByDoctorBetween(db, doctorID, today, today.AddDate(0, 0, 1)); err != nil {
		u.log.Warnf("Failed to count today's appointments: %+v", err)
		return nil, storeError(err)
	}
	if dashboard.CompletedConsultations, err = u.appointmentRepo.CountByDoctorAndStatus(db, doctorID, entity.AppointmentStatusCompleted); err != nil {
		u.log.Warnf("Failed to count completed appointments: %+v", err)
		return nil, storeError(err)
	}
	if dashboard.MedicalRecords, err = u.recordRepo.CountByDoctorID(db, doctorID); err != nil {
		u.log.Warnf("Failed to count medical records: %+v", err)
		return nil, storeError(err)
	}
	if dashboard.ActivePrescriptions, err = u.prescriptionRepo.CountByDoctorAndStatus(db, doctorID, entity.PrescriptionStatusActive); err != nil {
		u.log.Warnf("Failed to count active prescriptions: %+v", err)
		return nil, storeError(err)
	}

	return &dashboard, nil
}

func (u *statisticsUsecase) AdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	db := u.db.WithContext(ctx)

	byRole, err := u.grouped(db, u.userRepo, statisticsTargets["user"].fields["role"])
	if err != nil {
		return nil, err
	}

	dashboard := &dto.AdminDashboardResponse{
		TotalDoctors: byRole[string(entity.RoleDoctor)],
		TotalAdmins:  byRole[string(entity.RoleAdmin)],
	}

	counts := []struct {
		name    string
		counter repository.GroupCounter
		dst     *int64
	}{
		{"users", u.userRepo, &dashboard.TotalUsers},
		{"patients", u.patientRepo, &dashboard.TotalPatients},
		{"departments", u.departmentRepo, &dashboard.TotalDepartments},
		{"rooms", u.roomRepo, &dashboard.TotalRooms},
	}
	for _, c := range counts {
		total, err := c.counter.Count(db)
		if err != nil {
			u.log.Warnf("Failed to count %s: %+v", c.name, err)
			return nil, storeError(err)
		}
		*c.dst = total
	}

	return dashboard, nil
}

func (u *statisticsUsecase) DatabaseStatistics(ctx context.Context) (*dto.DatabaseStatisticsResponse, error) {
	db := u.db.WithContext(ctx)

	tables := []struct {
		name    string
		counter repository.GroupCounter
	}{
		{"users", u.userRepo},
		{"departments", u.departmentRepo},
		{"patients", u.patientRepo},
		{"rooms", u.roomRepo},
		{"appointments", u.appointmentRepo},
		{"medical_records", u.recordRepo},
		{"prescriptions", u.prescriptionRepo},
	}

	stats := &dto.DatabaseStatisticsResponse{Tables: make(map[string]int64, len(tables))}
	for _, t := range tables {
		total, err := t.counter.Count(db)
		if err != nil {
			u.log.Warnf("Failed to count %s: %+v", t.name, err)
			return nil, storeError(err)
		}
		stats.Tables[t.name] = total
		stats.TotalRecords += total
	}

	return stats, nil
}
