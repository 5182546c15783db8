package mapping

import (
	"time"

	"github.com/campbellchri/clara-backend/internal/core/domain"
	"github.com/campbellchri/clara-backend/internal/models"
)

// ToDomainPractice converts a model Practice to a domain Practice
func ToDomainPractice(m models.Practice) domain.Practice {
	return domain.Practice{
		PracticeID:  m.PracticeID,
		Name:        m.Name,
		NPI:         m.NPI,
		TaxID:       m.TaxID,
		Timezone:    m.Timezone,
		Lifecycle:   domain.LifecycleState(m.Lifecycle),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTherapist converts a model Therapist to a domain Therapist
func ToDomainTherapist(m models.Therapist) domain.Therapist {
	return domain.Therapist{
		TherapistID:   m.TherapistID,
		PracticeID:    m.PracticeID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		NPI:           m.NPI,
		LicenseNumber: m.LicenseNumber,
		Lifecycle:     domain.LifecycleState(m.Lifecycle),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPatient converts a model Patient to a domain Patient
func ToDomainPatient(m models.Patient) domain.Patient {
	var dob time.Time
	if m.DateOfBirth != nil {
		dob = *m.DateOfBirth
	}
	return domain.Patient{
		PatientID:   m.PatientID,
		PracticeID:  m.PracticeID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		DateOfBirth: dob,
		MemberID:    m.MemberID,
		PayerID:     derefString(m.PayerID),
		Lifecycle:   domain.LifecycleState(m.Lifecycle),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPayer converts a model Payer to a domain Payer
func ToDomainPayer(m models.Payer) domain.Payer {
	return domain.Payer{PayerID: m.PayerID, Name: m.Name}
}

// ToDomainMembership converts a model PracticeMembership to a domain PracticeMembership
func ToDomainMembership(m models.PracticeMembership) domain.PracticeMembership {
	return domain.PracticeMembership{
		UserID:     m.UserID,
		PracticeID: m.PracticeID,
		Role:       domain.PracticeRole(m.Role),
		IsActive:   m.IsActive,
		JoinedAt:   m.JoinedAt,
	}
}
