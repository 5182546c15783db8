package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// LifecycleState tags entities that are retained after they stop being usable.
type LifecycleState string

const (
	LifecycleActive   LifecycleState = "ACTIVE"
	LifecycleInactive LifecycleState = "INACTIVE"
	LifecycleDeleted  LifecycleState = "DELETED"
)

// IsActive reports whether the entity may take part in new work.
func (l LifecycleState) IsActive() bool {
	return l == LifecycleActive
}
