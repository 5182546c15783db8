package models

import "time"

// Practice is a row of the practices table.
type Practice struct {
	PracticeID string `db:"practice_id"`
	Name       string `db:"name"`
	NPI        string `db:"npi"`
	TaxID      string `db:"tax_id"`
	Timezone   string `db:"timezone"`
	Lifecycle  string `db:"lifecycle"`
	AuditFields
}

// Therapist is a row of the therapists table.
type Therapist struct {
	TherapistID   string `db:"therapist_id"`
	PracticeID    string `db:"practice_id"`
	FirstName     string `db:"first_name"`
	LastName      string `db:"last_name"`
	NPI           string `db:"npi"`
	LicenseNumber string `db:"license_number"`
	Lifecycle     string `db:"lifecycle"`
	AuditFields
}

// Patient is a row of the patients table.
type Patient struct {
	PatientID   string     `db:"patient_id"`
	PracticeID  string     `db:"practice_id"`
	FirstName   string     `db:"first_name"`
	LastName    string     `db:"last_name"`
	DateOfBirth *time.Time `db:"date_of_birth"` // Nullable
	MemberID    string     `db:"member_id"`
	PayerID     *string    `db:"payer_id"` // Nullable
	Lifecycle   string     `db:"lifecycle"`
	AuditFields
}

// Payer is a row of the payers table.
type Payer struct {
	PayerID string `db:"payer_id"`
	Name    string `db:"name"`
}

// PracticeMembership is a row of the practice_memberships table.
type PracticeMembership struct {
	UserID     string    `db:"user_id"`
	PracticeID string    `db:"practice_id"`
	Role       string    `db:"role"`
	IsActive   bool      `db:"is_active"`
	JoinedAt   time.Time `db:"joined_at"`
}
