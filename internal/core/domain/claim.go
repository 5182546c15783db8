package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/campbellchri/clara-backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ClaimStatus represents where a claim is in its lifecycle.
type ClaimStatus string

const (
	ClaimDraft              ClaimStatus = "DRAFT"
	ClaimReadyForSubmission ClaimStatus = "READY_FOR_SUBMISSION"
	ClaimSubmitted          ClaimStatus = "SUBMITTED"
	ClaimPaid               ClaimStatus = "PAID"
	ClaimDenied             ClaimStatus = "DENIED"
)

// claimTransitions lists the only legal moves. Anything absent is rejected.
var claimTransitions = map[ClaimStatus][]ClaimStatus{
	ClaimDraft:              {ClaimReadyForSubmission},
	ClaimReadyForSubmission: {ClaimSubmitted},
	ClaimSubmitted:          {ClaimPaid, ClaimDenied},
}

// ParseClaimStatus converts a string into a known ClaimStatus.
func ParseClaimStatus(s string) (ClaimStatus, error) {
	status := ClaimStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case ClaimDraft, ClaimReadyForSubmission, ClaimSubmitted, ClaimPaid, ClaimDenied:
		return status, nil
	}
	return "", fmt.Errorf("%w: unknown claim status %q", apperrors.ErrValidation, s)
}

// IsTerminal reports whether no further transition is possible.
func (s ClaimStatus) IsTerminal() bool {
	return len(claimTransitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to target is allowed.
func (s ClaimStatus) CanTransitionTo(target ClaimStatus) bool {
	for _, allowed := range claimTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Claim is a submission-ready insurance claim derived from one therapy session.
type Claim struct {
	ClaimID          string              `json:"claimID"`
	PracticeID       string              `json:"practiceID"`
	TherapistID      string              `json:"therapistID"`
	PatientID        string              `json:"patientID"`
	PayerID          string              `json:"payerID"`
	ServiceDate      time.Time           `json:"serviceDate"`
	CPTCode          string              `json:"cptCode"`
	ICD10Code        string              `json:"icd10Code"`
	ChargeAmount     decimal.Decimal     `json:"chargeAmount"`
	CopayAmount      decimal.Decimal     `json:"copayAmount"`
	Status           ClaimStatus         `json:"status"`
	ValidationErrors []string            `json:"validationErrors"`
	PatientName      string              `json:"patientName"`
	ProviderNPI      string              `json:"providerNPI"`
	PracticeNPI      string              `json:"practiceNPI"`
	PracticeTaxID    string              `json:"practiceTaxID"`
	AllowedAmount    decimal.NullDecimal `json:"allowedAmount"`
	PaidAmount       decimal.NullDecimal `json:"paidAmount"`
	DenialReason     string              `json:"denialReason"`
	SubmittedAt      *time.Time          `json:"submittedAt"`
	ResponseAt       *time.Time          `json:"responseAt"`
	Version          int64               `json:"version"`
	AuditFields
}

// NewReadyClaim assembles a claim for a validated session. The claim takes its practice
// from scope, so it can never belong to another tenant than the one it was prepared in.
func NewReadyClaim(claimID string, scope TenantScope, input SessionInput, resolved ResolvedEntities, userID string, now time.Time) Claim {
	claim := Claim{
		ClaimID:          claimID,
		PracticeID:       scope.PracticeID(),
		TherapistID:      input.TherapistID,
		PatientID:        input.PatientID,
		PayerID:          input.PayerID,
		ServiceDate:      input.SessionDate,
		CPTCode:          input.CPTCode,
		ICD10Code:        input.ICD10Code,
		ChargeAmount:     input.Fee,
		CopayAmount:      input.CopayCollected,
		Status:           ClaimReadyForSubmission,
		ValidationErrors: []string{},
		Version:          1,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if resolved.Patient != nil {
		claim.PatientName = resolved.Patient.FullName()
	}
	if resolved.Therapist != nil {
		claim.ProviderNPI = resolved.Therapist.NPI
	}
	if resolved.Practice != nil {
		claim.PracticeNPI = resolved.Practice.NPI
		claim.PracticeTaxID = resolved.Practice.TaxID
	}
	return claim
}

// TransitionDetails carries the adjudication data some transitions record.
type TransitionDetails struct {
	AllowedAmount *decimal.Decimal
	PaidAmount    *decimal.Decimal
	DenialReason  string
}

// TransitionTo moves the claim to target. On error the claim is left untouched.
func (c *Claim) TransitionTo(target ClaimStatus, at time.Time, userID string, details TransitionDetails) error {
	if !c.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, c.Status, target)
	}

	switch target {
	case ClaimSubmitted:
		c.SubmittedAt = &at
	case ClaimPaid:
		if details.PaidAmount == nil || details.PaidAmount.IsNegative() {
			return fmt.Errorf("%w: paid amount must be zero or more", apperrors.ErrValidation)
		}
		if details.AllowedAmount != nil && details.AllowedAmount.IsNegative() {
			return fmt.Errorf("%w: allowed amount cannot be negative", apperrors.ErrValidation)
		}
		c.PaidAmount = decimal.NewNullDecimal(*details.PaidAmount)
		if details.AllowedAmount != nil {
			c.AllowedAmount = decimal.NewNullDecimal(*details.AllowedAmount)
		}
		c.ResponseAt = &at
	case ClaimDenied:
		c.DenialReason = strings.TrimSpace(details.DenialReason)
		c.ResponseAt = &at
	}

	c.Status = target
	c.LastUpdatedAt = at
	c.LastUpdatedBy = userID
	return nil
}

// PrepareResult is the outcome of claim preparation: a ready claim or the ordered list
// of rule violations.
type PrepareResult struct {
	Status           string   `json:"status"`
	Claim            *Claim   `json:"claim,omitempty"`
	ValidationErrors []string `json:"validationErrors"`
}

// PrepareStatusInvalid is the wire status of a failed preparation.
const PrepareStatusInvalid = "INVALID"

// Ready builds a successful result.
func Ready(claim *Claim) *PrepareResult {
	return &PrepareResult{Status: string(claim.Status), Claim: claim, ValidationErrors: []string{}}
}

// Invalid builds a failed result carrying messages in evaluation order.
func Invalid(messages []string) *PrepareResult {
	return &PrepareResult{Status: PrepareStatusInvalid, ValidationErrors: messages}
}

// IsReady reports whether a claim was produced.
func (r *PrepareResult) IsReady() bool {
	return r != nil && r.Claim != nil
}
