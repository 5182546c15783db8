package mapping

import (
	"github.com/campbellchri/clara-backend/internal/core/domain"
	"github.com/campbellchri/clara-backend/internal/models"
)

// ToModelClaim converts a domain Claim to a model Claim
func ToModelClaim(d domain.Claim) models.Claim {
	validationErrors := d.ValidationErrors
	if validationErrors == nil {
		validationErrors = []string{}
	}
	return models.Claim{
		ClaimID:          d.ClaimID,
		PracticeID:       d.PracticeID,
		TherapistID:      d.TherapistID,
		PatientID:        d.PatientID,
		PayerID:          d.PayerID,
		ServiceDate:      d.ServiceDate,
		CPTCode:          d.CPTCode,
		ICD10Code:        d.ICD10Code,
		ChargeAmount:     d.ChargeAmount,
		CopayAmount:      d.CopayAmount,
		Status:           string(d.Status),
		ValidationErrors: validationErrors,
		PatientName:      d.PatientName,
		ProviderNPI:      d.ProviderNPI,
		PracticeNPI:      d.PracticeNPI,
		PracticeTaxID:    d.PracticeTaxID,
		AllowedAmount:    d.AllowedAmount,
		PaidAmount:       d.PaidAmount,
		DenialReason:     optionalString(d.DenialReason),
		SubmittedAt:      d.SubmittedAt,
		ResponseAt:       d.ResponseAt,
		Version:          d.Version,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClaim converts a model Claim to a domain Claim
func ToDomainClaim(m models.Claim) domain.Claim {
	validationErrors := m.ValidationErrors
	if validationErrors == nil {
		validationErrors = []string{}
	}
	return domain.Claim{
		ClaimID:          m.ClaimID,
		PracticeID:       m.PracticeID,
		TherapistID:      m.TherapistID,
		PatientID:        m.PatientID,
		PayerID:          m.PayerID,
		ServiceDate:      m.ServiceDate,
		CPTCode:          m.CPTCode,
		ICD10Code:        m.ICD10Code,
		ChargeAmount:     m.ChargeAmount,
		CopayAmount:      m.CopayAmount,
		Status:           domain.ClaimStatus(m.Status),
		ValidationErrors: validationErrors,
		PatientName:      m.PatientName,
		ProviderNPI:      m.ProviderNPI,
		PracticeNPI:      m.PracticeNPI,
		PracticeTaxID:    m.PracticeTaxID,
		AllowedAmount:    m.AllowedAmount,
		PaidAmount:       m.PaidAmount,
		DenialReason:     derefString(m.DenialReason),
		SubmittedAt:      m.SubmittedAt,
		ResponseAt:       m.ResponseAt,
		Version:          m.Version,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClaimSlice converts a slice of model Claims to domain Claims
func ToDomainClaimSlice(ms []models.Claim) []domain.Claim {
	claims := make([]domain.Claim, len(ms))
	for i, m := range ms {
		claims[i] = ToDomainClaim(m)
	}
	return claims
}

// ToModelAuditLog converts a domain AuditEvent to a model AuditLog
func ToModelAuditLog(d domain.AuditEvent) models.AuditLog {
	return models.AuditLog{
		EventID:      d.EventID,
		UserID:       d.UserID,
		PracticeID:   d.PracticeID,
		Action:       string(d.Action),
		ResourceType: d.ResourceType,
		ResourceID:   d.ResourceID,
		AccessedPHI:  d.AccessedPHI,
		IPAddress:    optionalString(d.IPAddress),
		UserAgent:    optionalString(d.UserAgent),
		OccurredAt:   d.OccurredAt,
	}
}
