package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SessionInput is the billing data for one therapy session, as submitted for claim preparation.
// It is never persisted.
type SessionInput struct {
	PracticeID     string
	TherapistID    string
	PatientID      string
	SessionDate    time.Time // calendar date, time of day ignored
	CPTCode        string
	ICD10Code      string
	Fee            decimal.Decimal
	CopayCollected decimal.Decimal
	PayerID        string
}

// Normalized returns a copy with identifiers trimmed and codes upper-cased.
func (s SessionInput) Normalized() SessionInput {
	out := s
	out.PracticeID = strings.TrimSpace(s.PracticeID)
	out.TherapistID = strings.TrimSpace(s.TherapistID)
	out.PatientID = strings.TrimSpace(s.PatientID)
	out.CPTCode = strings.ToUpper(strings.TrimSpace(s.CPTCode))
	out.ICD10Code = strings.ToUpper(strings.TrimSpace(s.ICD10Code))
	out.PayerID = strings.ToUpper(strings.TrimSpace(s.PayerID))
	return out
}

// EntityRefs are the identifiers a SessionInput points at.
type EntityRefs struct {
	PracticeID  string
	TherapistID string
	PatientID   string
	PayerID     string
}

// Refs extracts the entity references from the input.
func (s SessionInput) Refs() EntityRefs {
	return EntityRefs{
		PracticeID:  s.PracticeID,
		TherapistID: s.TherapistID,
		PatientID:   s.PatientID,
		PayerID:     s.PayerID,
	}
}

// ResolvedEntities are the scoped entities a SessionInput refers to.
// Payer is nil when the payer is not in the registry.
type ResolvedEntities struct {
	Practice  *Practice
	Therapist *Therapist
	Patient   *Patient
	Payer     *Payer
}
