package usecase

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/domain/repository"
	"hospital-management-system/pkg/export"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const headNotAssigned = "Not Assigned"

const (
	ReportSystemOverview  = "systemOverview"
	ReportDepartment      = "department"
	ReportRoomUtilization = "roomUtilization"
	ReportUserActivity    = "userActivity"
	ReportAppointment     = "appointment"
)

var ErrUnknownReport = fmt.Errorf("%w: unknown report", ErrInvalidEnumValue)

// userActivityStatuses is the status breakdown of the user activity report.
// PENDING_APPROVAL is not part of it.
var userActivityStatuses = []string{
	string(entity.UserStatusActive),
	string(entity.UserStatusInactive),
	string(entity.UserStatusSuspended),
}

type ReportUsecase interface {
	// GenerateReport recomputes the named report from the store on every call.
	GenerateReport(ctx context.Context, name string) (*dto.ReportResponse, error)
	SystemOverview(ctx context.Context) (*dto.SystemOverviewReport, error)
	DepartmentReport(ctx context.Context) (*dto.DepartmentReport, error)
	RoomUtilization(ctx context.Context) (*dto.RoomUtilizationReport, error)
	UserActivity(ctx context.Context) (*dto.UserActivityReport, error)
	AppointmentReport(ctx context.Context) (*dto.AppointmentReport, error)
	// SystemReportPDF renders the system overview as a PDF document.
	SystemReportPDF(ctx context.Context) ([]byte, error)
}

type reportUsecase struct {
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

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	departmentRepo repository.DepartmentRepository,
	patientRepo repository.PatientRepository,
	roomRepo repository.RoomRepository,
	appointmentRepo repository.AppointmentRepository,
	recordRepo repository.MedicalRecordRepository,
	prescriptionRepo repository.PrescriptionRepository,
) ReportUsecase {
	return &reportUsecase{
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

// reportNames maps normalized report names to their canonical form, so
// "system-overview", "system_overview" and "systemOverviewReport" all resolve.
var reportNames = map[string]string{
	"systemoverview":  ReportSystemOverview,
	"department":      ReportDepartment,
	"departments":     ReportDepartment,
	"roomutilization": ReportRoomUtilization,
	"useractivity":    ReportUserActivity,
	"appointment":     ReportAppointment,
	"appointments":    ReportAppointment,
}

func (u *reportUsecase) GenerateReport(ctx context.Context, name string) (*dto.ReportResponse, error) {
	key := strings.TrimSuffix(normalizeStatisticsName(name), "report")
	canonical, ok := reportNames[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReport, name)
	}

	var (
		data interface{}
		err  error
	)
	switch canonical {
	case ReportSystemOverview:
		data, err = u.SystemOverview(ctx)
	case ReportDepartment:
		data, err = u.DepartmentReport(ctx)
	case ReportRoomUtilization:
		data, err = u.RoomUtilization(ctx)
	case ReportUserActivity:
		data, err = u.UserActivity(ctx)
	case ReportAppointment:
		data, err = u.AppointmentReport(ctx)
	}
	if err != nil {
		return nil, err
	}

	return &dto.ReportResponse{Name: canonical, Data: data}, nil
}

func (u *reportUsecase) count(db *gorm.DB, name string, counter repository.GroupCounter) (int64, error) {
	total, err := counter.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count %s: %+v", name, err)
		return 0, storeError(err)
	}
	return total, nil
}

func (u *reportUsecase) distribution(db *gorm.DB, counter repository.GroupCounter, column string, members []string) (map[string]int64, error) {
	grouped, err := counter.CountGroupedBy(db, column)
	if err != nil {
		u.log.Warnf("Failed to count by %s: %+v", column, err)
		return nil, storeError(err)
	}
	return zeroFill(grouped, members), nil
}

func (u *reportUsecase) SystemOverview(ctx context.Context) (*dto.SystemOverviewReport, error) {
	db := u.db.WithContext(ctx)
	report := &dto.SystemOverviewReport{}
	var err error

	if report.TotalUsers, err = u.count(db, "users", u.userRepo); err != nil {
		return nil, err
	}
	roles, err := u.distribution(db, u.userRepo, "role", entity.EnumStrings(entity.RoleValues))
	if err != nil {
		return nil, err
	}
	report.TotalDoctors = roles[string(entity.RoleDoctor)]
	report.TotalAdmins = roles[string(entity.RoleAdmin)]

	if report.TotalDepartments, err = u.count(db, "departments", u.departmentRepo); err != nil {
		return nil, err
	}
	departments, err := u.distribution(db, u.departmentRepo, "status", entity.EnumStrings(entity.DepartmentStatusValues))
	if err != nil {
		return nil, err
	}
	report.ActiveDepartments = departments[string(entity.DepartmentStatusActive)]

	if report.TotalRooms, err = u.count(db, "rooms", u.roomRepo); err != nil {
		return nil, err
	}
	if report.RoomStatus, err = u.distribution(db, u.roomRepo, "status", entity.EnumStrings(entity.RoomStatusValues)); err != nil {
		return nil, err
	}

	if report.TotalPatients, err = u.count(db, "patients", u.patientRepo); err != nil {
		return nil, err
	}

	appointments, err := u.distribution(db, u.appointmentRepo, "status", entity.EnumStrings(entity.AppointmentStatusValues))
	if err != nil {
		return nil, err
	}
	report.ScheduledAppointments = appointments[string(entity.AppointmentStatusScheduled)]

	today := startOfDay(u.now())
	if report.TodayAppointments, err = u.appointmentsBetween(db, today, today.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}

	if report.TotalMedicalRecords, err = u.count(db, "medical records", u.recordRepo); err != nil {
		return nil, err
	}

	prescriptions, err := u.distribution(db, u.prescriptionRepo, "status", entity.EnumStrings(entity.PrescriptionStatusValues))
	if err != nil {
		return nil, err
	}
	report.ActivePrescriptions = prescriptions[string(entity.PrescriptionStatusActive)]

	return report, nil
}

func (u *reportUsecase) appointmentsBetween(db *gorm.DB, from, to time.Time) (int64, error) {
	total, err := u.appointmentRepo.CountBetween(db, from, to)
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return 0, storeError(err)
	}
	return total, nil
}

func (u *reportUsecase) DepartmentReport(ctx context.Context) (*dto.DepartmentReport, error) {
	db := u.db.WithContext(ctx)

	departments, err := u.departmentRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to find all departments: %+v", err)
		return nil, storeError(err)
	}

	doctors, err := u.userRepo.FindByRole(db, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, storeError(err)
	}

	rows := make([]dto.DepartmentReportRow, 0, len(departments))
	for _, department := range departments {
		var doctorCount int64
		for _, doctor := range doctors {
			if doctor.DepartmentID != nil && *doctor.DepartmentID == department.ID {
				doctorCount++
			}
		}

		roomCount, err := u.roomRepo.CountByDepartmentID(db, department.ID)
		if err != nil {
			u.log.Warnf("Failed to count department rooms: %+v", err)
			return nil, storeError(err)
		}

		head := headNotAssigned
		if department.HeadOfDepartment != nil {
			head = department.HeadOfDepartment.FullName()
		}

		rows = append(rows, dto.DepartmentReportRow{
			Name:             department.Name,
			Status:           string(department.Status),
			DoctorCount:      doctorCount,
			RoomCount:        roomCount,
			HeadOfDepartment: head,
		})
	}

	return &dto.DepartmentReport{
		Departments:      rows,
		TotalDepartments: int64(len(rows)),
	}, nil
}

func (u *reportUsecase) RoomUtilization(ctx context.Context) (*dto.RoomUtilizationReport, error) {
	db := u.db.WithContext(ctx)

	statuses, err := u.distribution(db, u.roomRepo, "status", entity.EnumStrings(entity.RoomStatusValues))
	if err != nil {
		return nil, err
	}
	types, err := u.distribution(db, u.roomRepo, "room_type", entity.EnumStrings(entity.RoomTypeValues))
	if err != nil {
		return nil, err
	}
	total, err := u.count(db, "rooms", u.roomRepo)
	if err != nil {
		return nil, err
	}

	occupied := statuses[string(entity.RoomStatusOccupied)]
	return &dto.RoomUtilizationReport{
		StatusDistribution: statuses,
		TypeDistribution:   types,
		OccupancyRate:      OccupancyRate(total, occupied),
		TotalRooms:         total,
		OccupiedRooms:      occupied,
		AvailableRooms:     statuses[string(entity.RoomStatusAvailable)],
	}, nil
}

func (u *reportUsecase) UserActivity(ctx context.Context) (*dto.UserActivityReport, error) {
	db := u.db.WithContext(ctx)

	statuses, err := u.distribution(db, u.userRepo, "status", userActivityStatuses)
	if err != nil {
		return nil, err
	}
	roles, err := u.distribution(db, u.userRepo, "role", entity.EnumStrings(entity.RoleValues))
	if err != nil {
		return nil, err
	}

	since := startOfDay(u.now()).AddDate(0, 0, -30)
	recent, err := u.userRepo.CountCreatedSince(db, since)
	if err != nil {
		u.log.Warnf("Failed to count new users: %+v", err)
		return nil, storeError(err)
	}

	total, err := u.count(db, "users", u.userRepo)
	if err != nil {
		return nil, err
	}

	return &dto.UserActivityReport{
		StatusDistribution: statuses,
		RoleDistribution:   roles,
		NewUsersLast30Days: recent,
		TotalUsers:         total,
	}, nil
}

// startOfWeek returns midnight of the Monday on or before t.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func (u *reportUsecase) AppointmentReport(ctx context.Context) (*dto.AppointmentReport, error) {
	db := u.db.WithContext(ctx)
	today := startOfDay(u.now())
	week := startOfWeek(today)
	month := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	report := &dto.AppointmentReport{}
	var err error

	if report.TodayAppointments, err = u.appointmentsBetween(db, today, today.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}
	if report.WeekAppointments, err = u.appointmentsBetween(db, week, week.AddDate(0, 0, 7)); err != nil {
		return nil, err
	}
	if report.MonthAppointments, err = u.appointmentsBetween(db, month, month.AddDate(0, 1, 0)); err != nil {
		return nil, err
	}
	if report.StatusDistribution, err = u.distribution(db, u.appointmentRepo, "status", entity.EnumStrings(entity.AppointmentStatusValues)); err != nil {
		return nil, err
	}

	return report, nil
}

func (u *reportUsecase) SystemReportPDF(ctx context.Context) ([]byte, error) {
	overview, err := u.SystemOverview(ctx)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Title:   "System Overview Report",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total users", strconv.FormatInt(overview.TotalUsers, 10)},
			{"Doctors", strconv.FormatInt(overview.TotalDoctors, 10)},
			{"Administrators", strconv.FormatInt(overview.TotalAdmins, 10)},
			{"Departments", strconv.FormatInt(overview.TotalDepartments, 10)},
			{"Active departments", strconv.FormatInt(overview.ActiveDepartments, 10)},
			{"Rooms", strconv.FormatInt(overview.TotalRooms, 10)},
			{"Patients", strconv.FormatInt(overview.TotalPatients, 10)},
			{"Scheduled appointments", strconv.FormatInt(overview.ScheduledAppointments, 10)},
			{"Appointments today", strconv.FormatInt(overview.TodayAppointments, 10)},
			{"Medical records", strconv.FormatInt(overview.TotalMedicalRecords, 10)},
			{"Active prescriptions", strconv.FormatInt(overview.ActivePrescriptions, 10)},
		},
	}

	statuses := make([]string, 0, len(overview.RoomStatus))
	for status := range overview.RoomStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		table.Rows = append(table.Rows, []string{"Rooms " + status, strconv.FormatInt(overview.RoomStatus[status], 10)})
	}

	var buf bytes.Buffer
	if err := (export.PDF{}).Encode(&buf, table); err != nil {
		u.log.Warnf("Failed to render system report: %+v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}
