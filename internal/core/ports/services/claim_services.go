package services

import (
	"context"

	"github.com/campbellchri/clara-backend/internal/core/domain"
	"github.com/campbellchri/clara-backend/internal/dto"
)

// ClaimPreparationSvc turns a session into a ready claim or a list of rule violations.
type ClaimPreparationSvc interface {
	// PrepareClaim resolves, validates and persists. Rule violations come back as an
	// INVALID result, not as an error.
	PrepareClaim(ctx context.Context, scope domain.TenantScope, input domain.SessionInput, userID string) (*domain.PrepareResult, error)
}

// ClaimReaderSvc defines read operations for claims
type ClaimReaderSvc interface {
	// GetClaim retrieves a claim by ID within the practice.
	GetClaim(ctx context.Context, scope domain.TenantScope, claimID string, userID string) (*domain.Claim, error)

	// ListClaims retrieves a paginated list of claims for the practice.
	ListClaims(ctx context.Context, scope domain.TenantScope, userID string, params dto.ListClaimsParams) (*dto.ListClaimsResponse, error)
}

// ClaimLifecycleSvc moves claims through their status lifecycle.
type ClaimLifecycleSvc interface {
	SubmitClaim(ctx context.Context, scope domain.TenantScope, claimID string, userID string) (*domain.Claim, error)
	RecordPayment(ctx context.Context, scope domain.TenantScope, claimID string, req dto.RecordPaymentRequest, userID string) (*domain.Claim, error)
	DenyClaim(ctx context.Context, scope domain.TenantScope, claimID string, req dto.DenyClaimRequest, userID string) (*domain.Claim, error)
}

// ClaimSvcFacade combines all claim-related service interfaces
type ClaimSvcFacade interface {
	ClaimPreparationSvc
	ClaimReaderSvc
	ClaimLifecycleSvc
}

// ClaimIDGenerator produces claim identifiers.
type ClaimIDGenerator interface {
	NextIdentifier() (string, error)
}
