package service

import (
	"context"
	"fmt"

	"hospital-management-system/internal/domain/repository"

	"gorm.io/gorm"
)

// FormatPatientCode renders n as a patient code: "P" followed by n zero-padded
// to at least four digits (P0001, P0999, P12345).
func FormatPatientCode(n int64) string {
	return fmt.Sprintf("P%04d", n)
}

// PatientIdentifierGenerator proposes the next unused patient code.
//
// The candidate starts at the current patient count plus one and moves up
// until no stored patient carries it. The check and the later insert are not
// atomic; callers must treat a unique violation on save as a signal to ask
// for another code.
type PatientIdentifierGenerator interface {
	Next(ctx context.Context, db *gorm.DB) (string, error)
}

type patientIdentifierGenerator struct {
	patientRepo repository.PatientRepository
}

func NewPatientIdentifierGenerator(patientRepo repository.PatientRepository) PatientIdentifierGenerator {
	return &patientIdentifierGenerator{patientRepo: patientRepo}
}

func (g *patientIdentifierGenerator) Next(ctx context.Context, db *gorm.DB) (string, error) {
	if db != nil {
		db = db.WithContext(ctx)
	}

	total, err := g.patientRepo.Count(db)
	if err != nil {
		return "", fmt.Errorf("count patients: %w", err)
	}

	for candidate := total + 1; ; candidate++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		code := FormatPatientCode(candidate)
		exists, err := g.patientRepo.ExistsByPatientCode(db, code)
		if err != nil {
			return "", fmt.Errorf("check patient code %s: %w", code, err)
		}
		if !exists {
			return code, nil
		}
	}
}
