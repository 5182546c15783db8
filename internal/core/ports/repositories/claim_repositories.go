package repositories

import (
	"context"

	"github.com/campbellchri/clara-backend/internal/core/domain"
)

// ClaimReader defines read operations for claim data. Every read is limited to scope.
type ClaimReader interface {
	// FindClaimByID returns apperrors.ErrNotFound when the claim does not exist in scope.
	FindClaimByID(ctx context.Context, scope domain.TenantScope, claimID string) (*domain.Claim, error)

	// ListClaimsByPractice retrieves a page of claims, newest first, using token-based pagination.
	// It returns the claims, a token for the next page, and an error.
	ListClaimsByPractice(ctx context.Context, scope domain.TenantScope, status *domain.ClaimStatus, limit int, nextToken *string) ([]domain.Claim, *string, error)
}

// ClaimWriter defines write operations for claim data.
type ClaimWriter interface {
	// SaveClaim persists a new claim. A clashing claim ID yields an error matching apperrors.ErrDuplicate.
	SaveClaim(ctx context.Context, scope domain.TenantScope, claim domain.Claim) error

	// UpdateClaimStatus persists a transitioned claim if its stored version still equals
	// expectedVersion. A stale version yields apperrors.ErrConflict.
	UpdateClaimStatus(ctx context.Context, scope domain.TenantScope, claim domain.Claim, fromStatus domain.ClaimStatus, expectedVersion int64) error
}

// ClaimRepositoryFacade combines all claim-related repository interfaces
type ClaimRepositoryFacade interface {
	ClaimReader
	ClaimWriter
}
