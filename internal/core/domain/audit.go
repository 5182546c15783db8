package domain

import "time"

// AuditAction is the kind of access being recorded.
type AuditAction string

const (
	AuditView   AuditAction = "VIEW"
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
	AuditExport AuditAction = "EXPORT"
)

// AuditEvent is one PHI access record.
type AuditEvent struct {
	EventID      string      `json:"eventID"`
	UserID       string      `json:"userID"`
	PracticeID   string      `json:"practiceID"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resourceType"`
	ResourceID   string      `json:"resourceID"`
	AccessedPHI  bool        `json:"accessedPHI"`
	IPAddress    string      `json:"ipAddress"`
	UserAgent    string      `json:"userAgent"`
	OccurredAt   time.Time   `json:"occurredAt"`
}

const AuditResourceClaim = "Claim"
