package entity

import (
	"strings"

	"github.com/google/uuid"
)

// PatientFilter is a domain-level filter for querying patients.
// Every criterion is optional; the ones present are combined with AND.
type PatientFilter struct {
	Search     string // Case-insensitive substring over name, email, phone and patient code
	Status     *PatientStatus
	Gender     *Gender
	BloodGroup *BloodGroup
	DoctorID   *uuid.UUID
}

// SearchTerm returns the trimmed search text. A blank term means no search criterion.
func (f PatientFilter) SearchTerm() string {
	return strings.TrimSpace(f.Search)
}

func (f PatientFilter) IsEmpty() bool {
	return f.SearchTerm() == "" && f.Status == nil && f.Gender == nil && f.BloodGroup == nil && f.DoctorID == nil
}

// Matches reports whether p satisfies every criterion present in the filter.
func (f PatientFilter) Matches(p *Patient) bool {
	if term := strings.ToLower(f.SearchTerm()); term != "" {
		fields := []string{p.FirstName, p.LastName, p.Email, p.Phone, p.PatientCode}
		found := false
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	if f.Gender != nil && p.Gender != *f.Gender {
		return false
	}
	if f.BloodGroup != nil && (p.BloodGroup == nil || *p.BloodGroup != *f.BloodGroup) {
		return false
	}
	if f.DoctorID != nil && (p.DoctorID == nil || *p.DoctorID != *f.DoctorID) {
		return false
	}
	return true
}
