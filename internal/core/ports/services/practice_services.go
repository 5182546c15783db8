package services

import (
	"context"

	"github.com/campbellchri/clara-backend/internal/core/domain"
)

// PracticeAuthorizerSvc defines operations for practice authorization
type PracticeAuthorizerSvc interface {
	// AuthorizeClaimAction checks if a user may perform action inside the practice.
	AuthorizeClaimAction(ctx context.Context, userID string, scope domain.TenantScope, action domain.ClaimAction) error
}

// PolicyEvaluator decides whether a role may perform an action.
type PolicyEvaluator interface {
	Allowed(ctx context.Context, role domain.PracticeRole, action domain.ClaimAction) (bool, error)
}

// AuditRecorderSvc records PHI access without failing the caller.
type AuditRecorderSvc interface {
	Record(ctx context.Context, event domain.AuditEvent)
}
