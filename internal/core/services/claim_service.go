package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/campbellchri/clara-backend/internal/apperrors"
	"github.com/campbellchri/clara-backend/internal/core/domain"
	portsrepo "github.com/campbellchri/clara-backend/internal/core/ports/repositories"
	portssvc "github.com/campbellchri/clara-backend/internal/core/ports/services"
	"github.com/campbellchri/clara-backend/internal/core/validation"
	"github.com/campbellchri/clara-backend/internal/dto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// claimService implements the ClaimSvcFacade interface
type claimService struct {
	BaseService
	claimRepo   portsrepo.ClaimRepositoryFacade
	resolver    portsrepo.EntityResolver
	chain       *validation.Chain
	idGenerator portssvc.ClaimIDGenerator
}

// ClaimServiceOption is a functional option for configuring the claim service
type ClaimServiceOption func(*claimService)

// WithPracticeAuthorizer adds the practice authorizer dependency
func WithPracticeAuthorizer(authorizer portssvc.PracticeAuthorizerSvc) ClaimServiceOption {
	return func(s *claimService) {
		s.PracticeAuthorizer = authorizer
	}
}

// WithAuditRecorder adds the audit recorder dependency
func WithAuditRecorder(recorder portssvc.AuditRecorderSvc) ClaimServiceOption {
	return func(s *claimService) {
		s.AuditRecorder = recorder
	}
}

// WithClaimIDGenerator replaces the default random claim ID generator
func WithClaimIDGenerator(gen portssvc.ClaimIDGenerator) ClaimServiceOption {
	return func(s *claimService) {
		s.idGenerator = gen
	}
}

// WithCallTimeout bounds each collaborator call
func WithCallTimeout(timeout time.Duration) ClaimServiceOption {
	return func(s *claimService) {
		s.CallTimeout = timeout
	}
}

// WithClock sets the time source used for timestamps
func WithClock(now func() time.Time) ClaimServiceOption {
	return func(s *claimService) {
		s.Now = now
	}
}

// NewClaimService creates a new claim service with the provided options
func NewClaimService(
	claimRepo portsrepo.ClaimRepositoryFacade,
	resolver portsrepo.EntityResolver,
	chain *validation.Chain,
	options ...ClaimServiceOption,
) portssvc.ClaimSvcFacade {
	svc := &claimService{
		claimRepo:   claimRepo,
		resolver:    resolver,
		chain:       chain,
		idGenerator: NewClaimIDGenerator(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure claimService implements the ClaimSvcFacade interface
var _ portssvc.ClaimSvcFacade = (*claimService)(nil)

// GetClaim retrieves a claim by ID within the practice.
func (s *claimService) GetClaim(ctx context.Context, scope domain.TenantScope, claimID string, userID string) (*domain.Claim, error) {
	if err := s.AuthorizeUser(ctx, userID, scope, domain.ActionReadClaim); err != nil {
		return nil, err
	}

	findCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	claim, err := s.claimRepo.FindClaimByID(findCtx, scope, claimID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find claim", slog.String("claim_id", claimID))
		}
		return nil, err
	}

	s.RecordAudit(ctx, userID, scope, domain.AuditView, claim.ClaimID)
	return claim, nil
}

// ListClaims retrieves a page of claims for the practice, newest first.
func (s *claimService) ListClaims(ctx context.Context, scope domain.TenantScope, userID string, params dto.ListClaimsParams) (*dto.ListClaimsResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, scope, domain.ActionReadClaim); err != nil {
		return nil, err
	}

	var status *domain.ClaimStatus
	if params.Status != "" {
		parsed, err := domain.ParseClaimStatus(params.Status)
		if err != nil {
			return nil, err
		}
		status = &parsed
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	listCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	claims, nextToken, err := s.claimRepo.ListClaimsByPractice(listCtx, scope, status, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list claims")
		return nil, err
	}

	s.RecordAudit(ctx, userID, scope, domain.AuditView, "*")
	return dto.ToListClaimsResponse(claims, nextToken), nil
}

// SubmitClaim marks a ready claim as submitted to the payer.
func (s *claimService) SubmitClaim(ctx context.Context, scope domain.TenantScope, claimID string, userID string) (*domain.Claim, error) {
	return s.transition(ctx, scope, claimID, userID, domain.ActionSubmitClaim, domain.ClaimSubmitted, domain.TransitionDetails{})
}

// RecordPayment marks a submitted claim as paid.
func (s *claimService) RecordPayment(ctx context.Context, scope domain.TenantScope, claimID string, req dto.RecordPaymentRequest, userID string) (*domain.Claim, error) {
	return s.transition(ctx, scope, claimID, userID, domain.ActionAdjudicateClaim, domain.ClaimPaid, domain.TransitionDetails{
		PaidAmount:    req.PaidAmount,
		AllowedAmount: req.AllowedAmount,
	})
}

// DenyClaim marks a submitted claim as denied.
func (s *claimService) DenyClaim(ctx context.Context, scope domain.TenantScope, claimID string, req dto.DenyClaimRequest, userID string) (*domain.Claim, error) {
	return s.transition(ctx, scope, claimID, userID, domain.ActionAdjudicateClaim, domain.ClaimDenied, domain.TransitionDetails{
		DenialReason: req.DenialReason,
	})
}

func (s *claimService) transition(
	ctx context.Context,
	scope domain.TenantScope,
	claimID string,
	userID string,
	action domain.ClaimAction,
	target domain.ClaimStatus,
	details domain.TransitionDetails,
) (*domain.Claim, error) {
	ctx, span := tracer.Start(ctx, "ClaimService.Transition", trace.WithAttributes(
		attribute.String("practice_id", scope.PracticeID()),
		attribute.String("claim_id", claimID),
		attribute.String("target_status", string(target)),
	))
	defer span.End()

	if err := s.AuthorizeUser(ctx, userID, scope, action); err != nil {
		return nil, err
	}

	findCtx, cancel := s.withTimeout(ctx)
	claim, err := s.claimRepo.FindClaimByID(findCtx, scope, claimID)
	cancel()
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find claim for transition", slog.String("claim_id", claimID))
		}
		return nil, err
	}

	fromStatus := claim.Status
	expectedVersion := claim.Version
	if err := claim.TransitionTo(target, s.now(), userID, details); err != nil {
		s.LogInfo(ctx, "Claim transition rejected",
			slog.String("claim_id", claimID),
			slog.String("from_status", string(fromStatus)),
			slog.String("to_status", string(target)),
			slog.String("reason", err.Error()))
		return nil, err
	}
	claim.Version = expectedVersion + 1

	updateCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.claimRepo.UpdateClaimStatus(updateCtx, scope, *claim, fromStatus, expectedVersion); err != nil {
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to persist claim transition", slog.String("claim_id", claimID))
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist transition")
		return nil, apperrors.NewPersistenceError("update claim status", err)
	}

	s.LogInfo(ctx, "Claim transitioned",
		slog.String("claim_id", claimID),
		slog.String("from_status", string(fromStatus)),
		slog.String("to_status", string(target)))
	s.RecordAudit(ctx, userID, scope, domain.AuditUpdate, claim.ClaimID)
	return claim, nil
}
