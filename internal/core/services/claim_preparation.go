package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campbellchri/clara-backend/internal/apperrors"
	"github.com/campbellchri/clara-backend/internal/core/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// maxClaimIDAttempts bounds regeneration after a claim ID collision.
const maxClaimIDAttempts = 3

// PrepareClaim turns a therapy session into a claim ready for submission.
//
// Entity references are resolved inside scope first; a missing, foreign or inactive
// entity stops preparation with a *apperrors.ResolutionError before any rule runs.
// Every rule is then evaluated. Violations are returned as an INVALID result and
// nothing is generated or stored. A valid session is stored as a
// READY_FOR_SUBMISSION claim and a CREATE audit event is recorded.
func (s *claimService) PrepareClaim(ctx context.Context, scope domain.TenantScope, input domain.SessionInput, userID string) (*domain.PrepareResult, error) {
	ctx, span := tracer.Start(ctx, "ClaimService.PrepareClaim", trace.WithAttributes(
		attribute.String("practice_id", scope.PracticeID()),
	))
	defer span.End()

	if scope.IsZero() {
		return nil, fmt.Errorf("%w: tenant scope is required", apperrors.ErrValidation)
	}

	if err := s.AuthorizeUser(ctx, userID, scope, domain.ActionPrepareClaim); err != nil {
		s.LogError(ctx, err, "User not authorized to prepare claims", slog.String("user_id", userID))
		return nil, err
	}

	input = input.Normalized()

	resolveCtx, cancel := s.withTimeout(ctx)
	resolved, err := s.resolver.Resolve(resolveCtx, scope, input.Refs())
	cancel()
	if err != nil {
		var resErr *apperrors.ResolutionError
		if errors.As(err, &resErr) {
			s.LogInfo(ctx, "Claim preparation stopped by entity resolution",
				slog.String("kind", string(resErr.Kind)),
				slog.String("entity", resErr.Entity))
			span.SetAttributes(attribute.String("resolution_failure", string(resErr.Kind)))
			return nil, err
		}
		s.LogError(ctx, err, "Entity resolution failed")
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve entities")
		return nil, apperrors.NewPersistenceError("resolve entities", err)
	}

	if err := requireActive(resolved); err != nil {
		s.LogInfo(ctx, "Claim preparation refused for inactive entity", slog.String("reason", err.Error()))
		return nil, err
	}

	outcome := s.chain.Evaluate(input, *resolved)
	if !outcome.IsValid() {
		s.LogInfo(ctx, "Session failed claim validation", slog.Int("violations", len(outcome.Messages)))
		span.SetAttributes(attribute.Int("violations", len(outcome.Messages)))
		return domain.Invalid(outcome.Messages), nil
	}

	claim, err := s.saveNewClaim(ctx, scope, input, *resolved, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save claim")
		return nil, err
	}

	span.SetAttributes(attribute.String("claim_id", claim.ClaimID))
	s.LogInfo(ctx, "Claim prepared", slog.String("claim_id", claim.ClaimID))
	s.RecordAudit(ctx, userID, scope, domain.AuditCreate, claim.ClaimID)
	return domain.Ready(claim), nil
}

// saveNewClaim generates an ID and stores the claim, regenerating on an ID collision.
func (s *claimService) saveNewClaim(ctx context.Context, scope domain.TenantScope, input domain.SessionInput, resolved domain.ResolvedEntities, userID string) (*domain.Claim, error) {
	var lastErr error
	for attempt := 1; attempt <= maxClaimIDAttempts; attempt++ {
		claimID, err := s.idGenerator.NextIdentifier()
		if err != nil {
			s.LogError(ctx, err, "Failed to generate claim ID")
			return nil, apperrors.NewPersistenceError("generate claim id", err)
		}

		claim := domain.NewReadyClaim(claimID, scope, input, resolved, userID, s.now())

		saveCtx, cancel := s.withTimeout(ctx)
		err = s.claimRepo.SaveClaim(saveCtx, scope, claim)
		cancel()
		if err == nil {
			return &claim, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save claim", slog.String("claim_id", claimID))
			return nil, apperrors.NewPersistenceError("save claim", err)
		}

		s.LogInfo(ctx, "Claim ID collision, regenerating",
			slog.String("claim_id", claimID),
			slog.Int("attempt", attempt))
		lastErr = err
	}
	return nil, apperrors.NewPersistenceError("save claim",
		fmt.Errorf("no unique claim id after %d attempts: %w", maxClaimIDAttempts, lastErr))
}
