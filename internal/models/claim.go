package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Claim is a row of the claims table.
type Claim struct {
	ClaimID          string              `db:"claim_id"`
	PracticeID       string              `db:"practice_id"`
	TherapistID      string              `db:"therapist_id"`
	PatientID        string              `db:"patient_id"`
	PayerID          string              `db:"payer_id"`
	ServiceDate      time.Time           `db:"service_date"`
	CPTCode          string              `db:"cpt_code"`
	ICD10Code        string              `db:"icd10_code"`
	ChargeAmount     decimal.Decimal     `db:"charge_amount"`
	CopayAmount      decimal.Decimal     `db:"copay_amount"`
	Status           string              `db:"status"`
	ValidationErrors []string            `db:"validation_errors"`
	PatientName      string              `db:"patient_name"`
	ProviderNPI      string              `db:"provider_npi"`
	PracticeNPI      string              `db:"practice_npi"`
	PracticeTaxID    string              `db:"practice_tax_id"`
	AllowedAmount    decimal.NullDecimal `db:"allowed_amount"`
	PaidAmount       decimal.NullDecimal `db:"paid_amount"`
	DenialReason     *string             `db:"denial_reason"`
	SubmittedAt      *time.Time          `db:"submitted_at"`
	ResponseAt       *time.Time          `db:"response_at"`
	Version          int64               `db:"version"`
	AuditFields
}

// ClaimStatusChange is a row of the claim_status_history table.
type ClaimStatusChange struct {
	ClaimID    string    `db:"claim_id"`
	FromStatus string    `db:"from_status"`
	ToStatus   string    `db:"to_status"`
	ChangedBy  string    `db:"changed_by"`
	ChangedAt  time.Time `db:"changed_at"`
}

// AuditLog is a row of the audit_logs table.
type AuditLog struct {
	EventID      string    `db:"event_id"`
	UserID       string    `db:"user_id"`
	PracticeID   string    `db:"practice_id"`
	Action       string    `db:"action"`
	ResourceType string    `db:"resource_type"`
	ResourceID   string    `db:"resource_id"`
	AccessedPHI  bool      `db:"accessed_phi"`
	IPAddress    *string   `db:"ip_address"`
	UserAgent    *string   `db:"user_agent"`
	OccurredAt   time.Time `db:"occurred_at"`
}
