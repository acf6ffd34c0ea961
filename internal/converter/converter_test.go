package converter

import (
	"testing"
	"time"

	"hospital-management-system/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientToResponse(t *testing.T) {
	bg := entity.BloodGroupABNegative
	patient := &entity.Patient{
		ID:          uuid.New(),
		PatientCode: "P0042",
		FirstName:   "Maria",
		LastName:    "Lopez",
		DateOfBirth: time.Date(1988, 2, 29, 0, 0, 0, 0, time.UTC),
		Gender:      entity.GenderFemale,
		Status:      entity.PatientStatusActive,
		BloodGroup:  &bg,
		Doctor:      &entity.User{FirstName: "Greg", LastName: "House"},
	}

	resp := PatientToResponse(patient)
	require.NotNil(t, resp)
	assert.Equal(t, "P0042", resp.PatientID)
	assert.Equal(t, "Maria Lopez", resp.FullName)
	assert.Equal(t, "1988-02-29", resp.DateOfBirth)
	assert.Equal(t, "AB-", resp.BloodGroup)
	assert.Equal(t, "Greg House", resp.DoctorName)
}

func TestPatientToResponseWithoutOptionalRelations(t *testing.T) {
	resp := PatientToResponse(&entity.Patient{FirstName: "A", LastName: "B"})

	assert.Empty(t, resp.BloodGroup)
	assert.Empty(t, resp.DoctorName)
	assert.Nil(t, PatientToResponse(nil))
}

func TestDepartmentsToResponses(t *testing.T) {
	departments := []entity.Department{
		{Name: "Cardiology", Status: entity.DepartmentStatusActive, HeadOfDepartment: &entity.User{FirstName: "Ada", LastName: "Hart"}},
		{Name: "Radiology", Status: entity.DepartmentStatusInactive},
	}

	resp := DepartmentsToResponses(departments)
	require.Len(t, resp, 2)
	assert.Equal(t, "Ada Hart", resp[0].HeadOfDepartment)
	assert.Equal(t, "INACTIVE", resp[1].Status)
	assert.Empty(t, resp[1].HeadOfDepartment)
}

func TestPrescriptionToResponseFormatsExpiry(t *testing.T) {
	resp := PrescriptionToResponse(&entity.Prescription{
		MedicationName: "Amoxicillin",
		ExpiryDate:     time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC),
		Status:         entity.PrescriptionStatusActive,
	})

	assert.Equal(t, "2024-04-09", resp.ExpiryDate)
	assert.Equal(t, "ACTIVE", resp.Status)
}

func TestAuditLogsToResponses(t *testing.T) {
	actor := uuid.New()
	logs := []entity.AuditLog{
		{ID: 1, UserID: &actor, Action: entity.AuditActionPatientCreate, User: &entity.User{FirstName: "Root", LastName: "Admin"}},
		{ID: 2, Action: entity.AuditActionUserLogin},
	}

	resp := AuditLogsToResponses(logs)
	require.Len(t, resp, 2)
	assert.Equal(t, "Root Admin", resp[0].ActorName)
	assert.Equal(t, &actor, resp[0].ActorID)
	assert.Empty(t, resp[1].ActorName)
}
