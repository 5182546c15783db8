package domain

import "time"

// PracticeRole defines the possible roles a user can have within a practice.
type PracticeRole string

const (
	RoleAdmin     PracticeRole = "ADMIN"
	RoleTherapist PracticeRole = "THERAPIST"
	RoleBilling   PracticeRole = "BILLING"
	RoleFrontDesk PracticeRole = "FRONT_DESK"
)

// PracticeMembership represents the membership of a user in a practice.
type PracticeMembership struct {
	UserID     string       `json:"userID"`
	PracticeID string       `json:"practiceID"`
	Role       PracticeRole `json:"role"`
	IsActive   bool         `json:"isActive"`
	JoinedAt   time.Time    `json:"joinedAt"`
}

// ClaimAction names an operation subject to practice-level authorization.
type ClaimAction string

const (
	ActionPrepareClaim    ClaimAction = "claims.prepare"
	ActionReadClaim       ClaimAction = "claims.read"
	ActionSubmitClaim     ClaimAction = "claims.submit"
	ActionAdjudicateClaim ClaimAction = "claims.adjudicate"
)
