package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (d *hospitalData) exports(t *testing.T, now time.Time) ExportUsecase {
	t.Helper()
	uc := NewExportUsecase(newTestDB(t), quietLogger(),
		d.users, d.departments, d.patients, d.rooms, d.appointments, d.records, d.prescriptions)
	uc.(*exportUsecase).now = func() time.Time { return now }
	return uc
}

func TestExport_RoomsCSV(t *testing.T) {
	now := time.Date(2024, 7, 4, 8, 30, 15, 0, time.UTC)
	d := newHospitalData()
	d.addRooms(t, entity.RoomStatusAvailable, entity.RoomStatusOccupied)

	file, err := d.exports(t, now).Export(context.Background(), "Rooms", "CSV")
	require.NoError(t, err)

	assert.Equal(t, "rooms_20240704_083015.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Body)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Room Number,Type,Status"))
	assert.Contains(t, string(file.Body), "GENERAL_WARD")
}

func TestExport_NormalizesEntityName(t *testing.T) {
	now := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)
	file, err := newHospitalData().exports(t, now).Export(context.Background(), "medical_records", "xlsx")
	require.NoError(t, err)
	assert.Equal(t, "medical_records_20240704_000000.xlsx", file.Filename)
	assert.NotEmpty(t, file.Body)
}

func TestExport_Rejections(t *testing.T) {
	uc := newHospitalData().exports(t, time.Now())
	ctx := context.Background()

	_, err := uc.Export(ctx, "invoices", "csv")
	assert.ErrorIs(t, err, ErrUnknownExport)

	_, err = uc.Export(ctx, "rooms", "docx")
	assert.ErrorIs(t, err, ErrInvalidEnumValue)
}

func TestExport_StoreUnavailable(t *testing.T) {
	d := newHospitalData()
	d.patients.Err = errors.New("connection reset")

	_, err := d.exports(t, time.Now()).Export(context.Background(), "patients", "pdf")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestAuditLogs_FilterByActionPrefix(t *testing.T) {
	repo := memory.NewAuditLogRepository()
	for _, action := range []string{entity.AuditActionPatientCreate, "user.login", "patient.delete"} {
		require.NoError(t, repo.Create(nil, &entity.AuditLog{Action: action}))
	}
	uc := NewAuditLogUsecase(newTestDB(t), quietLogger(), repo)
	ctx := context.Background()

	all, err := uc.GetAllAuditLogs(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	assert.Equal(t, "patient.delete", all.Logs[0].Action)

	patients, err := uc.GetAllAuditLogs(ctx, " patient.")
	require.NoError(t, err)
	require.Equal(t, 2, patients.Total)
	assert.Equal(t, "patient.delete", patients.Logs[0].Action)
	assert.Equal(t, entity.AuditActionPatientCreate, patients.Logs[1].Action)

	one, err := uc.GetAuditLog(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "user.login", one.Action)

	_, err = uc.GetAuditLog(ctx, 99)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)
}
