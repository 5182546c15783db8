package dto

import (
	"fmt"
	"time"

	"github.com/campbellchri/clara-backend/internal/apperrors"
	"github.com/campbellchri/clara-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// --- Claim preparation DTOs ---

// PrepareClaimRequest is the session billing payload submitted for claim preparation.
type PrepareClaimRequest struct {
	PracticeID     string           `json:"practice_id" binding:"required,notblank"`
	TherapistID    string           `json:"therapist_id" binding:"required,notblank"`
	PatientID      string           `json:"patient_id" binding:"required,notblank"`
	SessionDate    string           `json:"session_date" binding:"required,datetime=2006-01-02"`
	CPTCode        string           `json:"cpt_code" binding:"required,notblank,max=10"`
	ICD10Code      string           `json:"icd10_code" binding:"required,notblank,max=10"`
	Fee            *decimal.Decimal `json:"fee" binding:"required"`
	CopayCollected *decimal.Decimal `json:"copay_collected"`
	PayerID        string           `json:"payer_id" binding:"required,notblank,max=20"`
}

// ToSessionInput converts the request into a normalized domain.SessionInput.
// An omitted copay is treated as 0.00.
func (r PrepareClaimRequest) ToSessionInput() (domain.SessionInput, error) {
	sessionDate, err := time.Parse(DateLayout, r.SessionDate)
	if err != nil {
		return domain.SessionInput{}, fmt.Errorf("%w: session_date must be YYYY-MM-DD", apperrors.ErrValidation)
	}
	if r.Fee == nil {
		return domain.SessionInput{}, fmt.Errorf("%w: fee is required", apperrors.ErrValidation)
	}

	copay := decimal.Zero
	if r.CopayCollected != nil {
		copay = *r.CopayCollected
	}

	input := domain.SessionInput{
		PracticeID:     r.PracticeID,
		TherapistID:    r.TherapistID,
		PatientID:      r.PatientID,
		SessionDate:    sessionDate,
		CPTCode:        r.CPTCode,
		ICD10Code:      r.ICD10Code,
		Fee:            *r.Fee,
		CopayCollected: copay,
		PayerID:        r.PayerID,
	}
	return input.Normalized(), nil
}

// ClaimResponse is the wire shape of a claim.
type ClaimResponse struct {
	ClaimID          string     `json:"claim_id"`
	PatientID        string     `json:"patient_id"`
	ProviderID       string     `json:"provider_id"`
	PracticeID       string     `json:"practice_id"`
	PayerID          string     `json:"payer_id"`
	ServiceDate      string     `json:"service_date"`
	CPTCode          string     `json:"cpt_code"`
	ICD10Code        string     `json:"icd10_code"`
	ChargeAmount     string     `json:"charge_amount"`
	CopayAmount      string     `json:"copay_amount"`
	Status           string     `json:"status"`
	ValidationErrors []string   `json:"validation_errors"`
	PatientName      string     `json:"patient_name,omitempty"`
	ProviderNPI      string     `json:"provider_npi,omitempty"`
	PracticeNPI      string     `json:"practice_npi,omitempty"`
	PracticeTaxID    string     `json:"practice_tax_id,omitempty"`
	AllowedAmount    *string    `json:"allowed_amount,omitempty"`
	PaidAmount       *string    `json:"paid_amount,omitempty"`
	DenialReason     string     `json:"denial_reason,omitempty"`
	SubmittedAt      *time.Time `json:"submitted_at,omitempty"`
	ResponseAt       *time.Time `json:"response_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CreatedBy        string     `json:"created_by"`
	LastUpdatedAt    time.Time  `json:"last_updated_at"`
}

// ToClaimResponse converts domain.Claim to DTO.
func ToClaimResponse(c *domain.Claim) ClaimResponse {
	validationErrors := c.ValidationErrors
	if validationErrors == nil {
		validationErrors = []string{}
	}
	return ClaimResponse{
		ClaimID:          c.ClaimID,
		PatientID:        c.PatientID,
		ProviderID:       c.TherapistID,
		PracticeID:       c.PracticeID,
		PayerID:          c.PayerID,
		ServiceDate:      c.ServiceDate.Format(DateLayout),
		CPTCode:          c.CPTCode,
		ICD10Code:        c.ICD10Code,
		ChargeAmount:     c.ChargeAmount.StringFixed(2),
		CopayAmount:      c.CopayAmount.StringFixed(2),
		Status:           string(c.Status),
		ValidationErrors: validationErrors,
		PatientName:      c.PatientName,
		ProviderNPI:      c.ProviderNPI,
		PracticeNPI:      c.PracticeNPI,
		PracticeTaxID:    c.PracticeTaxID,
		AllowedAmount:    nullDecimalString(c.AllowedAmount),
		PaidAmount:       nullDecimalString(c.PaidAmount),
		DenialReason:     c.DenialReason,
		SubmittedAt:      c.SubmittedAt,
		ResponseAt:       c.ResponseAt,
		CreatedAt:        c.CreatedAt,
		CreatedBy:        c.CreatedBy,
		LastUpdatedAt:    c.LastUpdatedAt,
	}
}

func nullDecimalString(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(2)
	return &s
}

// InvalidClaimResponse is returned when preparation or input parsing fails.
type InvalidClaimResponse struct {
	Status           string   `json:"status"`
	ValidationErrors []string `json:"validation_errors"`
}

// NewInvalidClaimResponse wraps messages in the INVALID envelope.
func NewInvalidClaimResponse(messages ...string) InvalidClaimResponse {
	if messages == nil {
		messages = []string{}
	}
	return InvalidClaimResponse{Status: domain.PrepareStatusInvalid, ValidationErrors: messages}
}

// --- Claim listing DTOs ---

// ListClaimsParams are the query parameters of the claim listing.
type ListClaimsParams struct {
	Status    string  `form:"status"`
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListClaimsResponse wraps a page of claims.
type ListClaimsResponse struct {
	Claims    []ClaimResponse `json:"claims"`
	NextToken *string         `json:"next_token,omitempty"`
}

// ToListClaimsResponse converts a slice of domain.Claim to DTO.
func ToListClaimsResponse(claims []domain.Claim, nextToken *string) *ListClaimsResponse {
	list := make([]ClaimResponse, len(claims))
	for i := range claims {
		list[i] = ToClaimResponse(&claims[i])
	}
	return &ListClaimsResponse{Claims: list, NextToken: nextToken}
}

// --- Claim lifecycle DTOs ---

// RecordPaymentRequest records a payer's payment on a submitted claim.
type RecordPaymentRequest struct {
	PaidAmount    *decimal.Decimal `json:"paid_amount" binding:"required"`
	AllowedAmount *decimal.Decimal `json:"allowed_amount"`
}

// DenyClaimRequest records a payer's denial of a submitted claim.
type DenyClaimRequest struct {
	DenialReason string `json:"denial_reason" binding:"required,notblank,max=500"`
}
