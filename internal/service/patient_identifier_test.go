package service

import (
	"context"
	"errors"
	"testing"

	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPatientCode(t *testing.T) {
	assert.Equal(t, "P0001", FormatPatientCode(1))
	assert.Equal(t, "P0999", FormatPatientCode(999))
	assert.Equal(t, "P10000", FormatPatientCode(10000))
}

func TestPatientIdentifierGenerator_EmptyStore(t *testing.T) {
	gen := NewPatientIdentifierGenerator(memory.NewPatientRepository())

	code, err := gen.Next(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "P0001", code)
}

func TestPatientIdentifierGenerator_SequentialCodes(t *testing.T) {
	repo := memory.NewPatientRepository(
		&entity.Patient{PatientCode: "P0001", Email: "a@x.com"},
		&entity.Patient{PatientCode: "P0002", Email: "b@x.com"},
		&entity.Patient{PatientCode: "P0003", Email: "c@x.com"},
	)
	gen := NewPatientIdentifierGenerator(repo)

	code, err := gen.Next(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "P0004", code)
}

func TestPatientIdentifierGenerator_SkipsTakenCandidates(t *testing.T) {
	// Two patients exist but P0003 was kept after P0002 was deleted, so the
	// count-based candidate collides and the generator has to move on.
	repo := memory.NewPatientRepository(
		&entity.Patient{PatientCode: "P0001", Email: "a@x.com"},
		&entity.Patient{PatientCode: "P0003", Email: "c@x.com"},
	)
	gen := NewPatientIdentifierGenerator(repo)

	code, err := gen.Next(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "P0004", code)
}

func TestPatientIdentifierGenerator_NeverReturnsStoredCode(t *testing.T) {
	repo := memory.NewPatientRepository()
	gen := NewPatientIdentifierGenerator(repo)
	seen := map[string]bool{}

	for i := 0; i < 25; i++ {
		code, err := gen.Next(context.Background(), nil)
		require.NoError(t, err)

		exists, err := repo.ExistsByPatientCode(nil, code)
		require.NoError(t, err)
		assert.False(t, exists)
		assert.False(t, seen[code], "code %s handed out twice", code)
		seen[code] = true

		require.NoError(t, repo.Create(nil, &entity.Patient{PatientCode: code, Email: code + "@x.com"}))
	}
}

func TestPatientIdentifierGenerator_StoreFailure(t *testing.T) {
	repo := memory.NewPatientRepository()
	repo.Err = errors.New("connection refused")
	gen := NewPatientIdentifierGenerator(repo)

	_, err := gen.Next(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.Err)
}
