package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/domain/repository"
	"hospital-management-system/pkg/export"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const exportDateFormat = "2006-01-02"

var ErrUnknownExport = fmt.Errorf("%w: unknown export entity", ErrInvalidEnumValue)

// ExportFile is a rendered document ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

type ExportUsecase interface {
	// Export lists every row of entityName and renders it as format
	// (csv, xlsx or pdf).
	Export(ctx context.Context, entityName, format string) (*ExportFile, error)
}

type exportUsecase struct {
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

func NewExportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	departmentRepo repository.DepartmentRepository,
	patientRepo repository.PatientRepository,
	roomRepo repository.RoomRepository,
	appointmentRepo repository.AppointmentRepository,
	recordRepo repository.MedicalRecordRepository,
	prescriptionRepo repository.PrescriptionRepository,
) ExportUsecase {
	return &exportUsecase{
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

type tableBuilder func(u *exportUsecase, db *gorm.DB) (export.Table, error)

var exportTables = map[string]tableBuilder{
	"users":           (*exportUsecase).usersTable,
	"patients":        (*exportUsecase).patientsTable,
	"departments":     (*exportUsecase).departmentsTable,
	"rooms":           (*exportUsecase).roomsTable,
	"appointments":    (*exportUsecase).appointmentsTable,
	"medical-records": (*exportUsecase).recordsTable,
	"prescriptions":   (*exportUsecase).prescriptionsTable,
}

func (u *exportUsecase) Export(ctx context.Context, entityName, format string) (*ExportFile, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(entityName)), "_", "-")
	build, ok := exportTables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExport, entityName)
	}

	enc, err := export.ForFormat(format)
	if err != nil {
		if errors.Is(err, export.ErrUnknownFormat) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidEnumValue, err)
		}
		return nil, err
	}

	table, err := build(u, u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load %s for export: %+v", name, err)
		return nil, storeError(err)
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, table); err != nil {
		u.log.Warnf("Failed to encode %s export: %+v", name, err)
		return nil, err
	}

	base := fmt.Sprintf("%s_%s", strings.ReplaceAll(name, "-", "_"), u.now().Format("20060102_150405"))
	return &ExportFile{
		Filename:    export.Filename(base, enc),
		ContentType: enc.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(exportDateFormat)
}

func formatOptionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func userName(user *entity.User) string {
	if user == nil {
		return ""
	}
	return user.FullName()
}

func patientName(patient *entity.Patient) string {
	if patient == nil {
		return ""
	}
	return patient.FullName()
}

func (u *exportUsecase) usersTable(db *gorm.DB) (export.Table, error) {
	users, err := u.userRepo.FindAll(db)
	if err != nil {
		return export.Table{}, err
	}

	table := export.Table{
		Title:   "Users",
		Headers: []string{"ID", "First Name", "Last Name", "Email", "Role", "Status", "Department", "Phone", "Specialization", "Created"},
	}
	for _, user := range users {
		department := ""
		if user.Department != nil {
			department = user.Department.Name
		}
		table.Rows = append(table.Rows, []string{
			user.ID.String(), user.FirstName, user.LastName, user.Email, string(user.Role), string(user.Status),
			department, user.PhoneNumber, user.Specialization, formatDate(&user.CreatedAt),
		})
	}
	return table, nil
}

func (u *exportUsecase) patientsTable(db *gorm.DB) (export.Table, error) {
	patients, err := u.patientRepo.FindAll(db)
	if err != nil {
		return export.Table{}, err
	}

	table := export.Table{
		Title:   "Patients",
		Headers: []string{"Patient ID", "First Name", "Last Name", "Email", "Phone", "Date of Birth", "Gender", "Blood Group", "Status", "Doctor", "Registered"},
	}
	for _, patient := range patients {
		bloodGroup := ""
		if patient.BloodGroup != nil {
			bloodGroup = patient.BloodGroup.DisplayName()
		}
		table.Rows = append(table.Rows, []string{
			patient.PatientCode, patient.FirstName, patient.LastName, patient.Email, patient.Phone,
			formatDate(&patient.DateOfBirth), string(patient.Gender), bloodGroup, string(patient.Status),
			userName(patient.Doctor), formatDate(&patient.RegistrationDate),
		})
	}
	return table, nil
}

func (u *exportUsecase) departmentsTable(db *gorm.DB) (export.Table, error) {
	departments, err := u.departmentRepo.FindAll(db)
	if err != nil {
		return export.Table{}, err
	}

	table := export.Table{
		Title:   "Departments",
		Headers: []string{"Name", "Status", "Location", "Phone", "Email", "Capacity", "Specialization", "Head of Department"},
	}
	for _, department := range departments {
		head := headNotAssigned
		if department.HeadOfDepartment != nil {
			head = department.HeadOfDepartment.FullName()
		}
		table.Rows = append(table.Rows, []string{
			department.Name, string(department.Status), department.Location, department.PhoneNumber,
			department.Email, strconv.Itoa(department.Capacity), department.Specialization, head,
		})
	}
	return table, nil
}

func (u *exportUsecase) roomsTable(db *gorm.DB) (export.Table, error) {
	rooms, err := u.roomRepo.FindAll(db)
	if err != nil {
		return export.Table{}, err
	}

	table := export.Table{
		Title:   "Rooms",
		Headers: []string{"Room Number", "Type", "Status", "Department", "Floor", "Building", "Capacity", "Daily Rate", "Current Patient", "Last Cleaned"},
	}
	for _, room := range rooms {
		department := ""
		if room.Department != nil {
			department = room.Department.Name
		}
		table.Rows = append(table.Rows, []string{
			room.RoomNumber, string(room.RoomType), string(room.Status), department, room.Floor, room.Building,
			strconv.Itoa(room.Capacity), room.DailyRate.StringFixed(2), patientName(room.CurrentPatient), formatDate(room.LastCleaned),
		})
	}
	return table, nil
}

func (u *exportUsecase) appointmentsTable(db *gorm.DB) (export.Table, error) {
	appointments, err := u.appointmentRepo.FindAll(db)
	if err != nil {
		return export.Table{}, err
	}

	table := export.Table{
		Title:   "Appointments",
		Headers: []string{"ID", "Patient", "Doctor", "Date Time", "Type", "Status", "Symptoms", "Diagnosis"},
	}
	for _, appointment := range appointments {
		table.Rows = append(table.Rows, []string{
			appointment.ID.String(), patientName(appointment.Patient), userName(appointment.Doctor),
			appointment.AppointmentDateTime.Format("2006-01-02 15:04"), string(appointment.AppointmentType),
			string(appointment.Status), appointment.Symptoms, appointment.Diagnosis,
		})
	}
	return table, nil
}

func (u *exportUsecase) recordsTable(db *gorm.DB) (export.Table, error) {
	records, err := u.recordRepo.FindAll(db)
	if err != nil {
		return export.Table{}, err
	}

	table := export.Table{
		Title:   "Medical Records",
		Headers: []string{"ID", "Patient", "Doctor", "Record Date", "Type", "Chief Complaint", "Diagnosis", "Treatment Plan"},
	}
	for _, record := range records {
		table.Rows = append(table.Rows, []string{
			record.ID.String(), patientName(record.Patient), userName(record.Doctor), formatDate(&record.RecordDate),
			string(record.RecordType), record.ChiefComplaint, record.Diagnosis, record.TreatmentPlan,
		})
	}
	return table, nil
}

func (u *exportUsecase) prescriptionsTable(db *gorm.DB) (export.Table, error) {
	prescriptions, err := u.prescriptionRepo.FindAll(db)
	if err != nil {
		return export.Table{}, err
	}

	table := export.Table{
		Title:   "Prescriptions",
		Headers: []string{"ID", "Patient", "Doctor", "Medication", "Dosage", "Frequency", "Duration Days", "Prescribed", "Expires", "Status"},
	}
	for _, prescription := range prescriptions {
		table.Rows = append(table.Rows, []string{
			prescription.ID.String(), patientName(prescription.Patient), userName(prescription.Doctor),
			prescription.MedicationName, prescription.Dosage, prescription.Frequency, formatOptionalInt(prescription.DurationDays),
			formatDate(&prescription.PrescriptionDate), formatDate(&prescription.ExpiryDate), string(prescription.Status),
		})
	}
	return table, nil
}
