package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicies(t *testing.T) {
	a, err := NewAuthorizer(DefaultPolicies)
	require.NoError(t, err)

	tests := []struct {
		name     string
		role     string
		resource Resource
		action   Action
		want     bool
	}{
		{"admin deletes users", "ADMIN", ResourceUsers, ActionDelete, true},
		{"admin reads reports", "ADMIN", ResourceReports, ActionRead, true},
		{"doctor reads patients", "DOCTOR", ResourcePatients, ActionRead, true},
		{"doctor registers patient", "DOCTOR", ResourcePatients, ActionCreate, true},
		{"doctor cannot delete patient", "DOCTOR", ResourcePatients, ActionDelete, false},
		{"doctor writes prescription", "DOCTOR", ResourcePrescriptions, ActionCreate, true},
		{"doctor updates medical record", "DOCTOR", ResourceMedicalRecords, ActionUpdate, true},
		{"doctor cannot read reports", "DOCTOR", ResourceReports, ActionRead, false},
		{"doctor cannot change settings", "DOCTOR", ResourceSettings, ActionUpdate, false},
		{"unknown role", "NURSE", ResourcePatients, ActionRead, false},
		{"admin lists all patients", "ADMIN", AdminScope(ResourcePatients), ActionRead, true},
		{"doctor cannot list all patients", "DOCTOR", AdminScope(ResourcePatients), ActionRead, false},
		{"doctor cannot list all appointments", "DOCTOR", AdminScope(ResourceAppointments), ActionRead, false},
		{"doctor cannot open admin dashboard", "DOCTOR", AdminScope(ResourceDashboard), ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := a.Enforce(tt.role, tt.resource, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestEnforceWithoutRole(t *testing.T) {
	a, err := NewAuthorizer(DefaultPolicies)
	require.NoError(t, err)

	allowed, err := a.Enforce("", ResourcePatients, ActionRead)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestEnforceRejectsEmptyAction(t *testing.T) {
	a, err := NewAuthorizer(DefaultPolicies)
	require.NoError(t, err)

	_, err = a.Enforce("ADMIN", ResourcePatients, "")
	assert.ErrorIs(t, err, ErrInvalidArgs)
}

func TestNewAuthorizerRejectsIncompletePolicy(t *testing.T) {
	_, err := NewAuthorizer([]Policy{{Role: "ADMIN", Resource: ResourceUsers}})
	assert.ErrorIs(t, err, ErrInvalidArgs)
}
