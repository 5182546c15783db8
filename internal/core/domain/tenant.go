package domain

import (
	"fmt"
	"strings"

	"github.com/campbellchri/clara-backend/internal/apperrors"
)

// TenantScope identifies the practice a request is acting within.
// It is built per request and passed explicitly to every scoped operation.
type TenantScope struct {
	practiceID string
}

// NewTenantScope builds a scope for practiceID.
func NewTenantScope(practiceID string) (TenantScope, error) {
	id := strings.TrimSpace(practiceID)
	if id == "" {
		return TenantScope{}, fmt.Errorf("%w: practice id is required", apperrors.ErrValidation)
	}
	return TenantScope{practiceID: id}, nil
}

// PracticeID returns the identifier of the scoped practice.
func (s TenantScope) PracticeID() string {
	return s.practiceID
}

// IsZero reports whether the scope was never initialised.
func (s TenantScope) IsZero() bool {
	return s.practiceID == ""
}

// Owns reports whether an entity owned by practiceID belongs to this scope.
func (s TenantScope) Owns(practiceID string) bool {
	return !s.IsZero() && s.practiceID == practiceID
}

func (s TenantScope) String() string {
	return s.practiceID
}
