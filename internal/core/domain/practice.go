package domain

import "time"

// Practice is the tenant root. Therapists, patients and claims belong to exactly one practice.
type Practice struct {
	PracticeID string         `json:"practiceID"`
	Name       string         `json:"name"`
	NPI        string         `json:"npi"`
	TaxID      string         `json:"taxID"`
	Timezone   string         `json:"timezone"` // IANA name, empty means UTC
	Lifecycle  LifecycleState `json:"lifecycle"`
	AuditFields
}

// Location returns the practice's reference clock location.
func (p *Practice) Location() *time.Location {
	if p == nil || p.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Therapist is the rendering provider on a claim.
type Therapist struct {
	TherapistID   string         `json:"therapistID"`
	PracticeID    string         `json:"practiceID"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	NPI           string         `json:"npi"`
	LicenseNumber string         `json:"licenseNumber"`
	Lifecycle     LifecycleState `json:"lifecycle"`
	AuditFields
}

// Patient is the subscriber/patient on a claim.
type Patient struct {
	PatientID   string         `json:"patientID"`
	PracticeID  string         `json:"practiceID"`
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	DateOfBirth time.Time      `json:"dateOfBirth"`
	MemberID    string         `json:"memberID"`
	PayerID     string         `json:"payerID"`
	Lifecycle   LifecycleState `json:"lifecycle"`
	AuditFields
}

// FullName joins first and last name.
func (p *Patient) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Payer is an insurance company claims are submitted to. Payers are shared across practices.
type Payer struct {
	PayerID string `json:"payerID"`
	Name    string `json:"name"`
}
