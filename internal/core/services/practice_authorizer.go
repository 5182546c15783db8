package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/campbellchri/clara-backend/internal/apperrors"
	"github.com/campbellchri/clara-backend/internal/core/domain"
	portsrepo "github.com/campbellchri/clara-backend/internal/core/ports/repositories"
	portssvc "github.com/campbellchri/clara-backend/internal/core/ports/services"
)

// practiceAuthorizer implements the PracticeAuthorizerSvc interface
type practiceAuthorizer struct {
	BaseService
	membershipRepo portsrepo.MembershipReader
	policy         portssvc.PolicyEvaluator
}

// NewPracticeAuthorizer creates an authorizer that checks membership and asks policy
// whether the member's role covers the action.
func NewPracticeAuthorizer(membershipRepo portsrepo.MembershipReader, policy portssvc.PolicyEvaluator) portssvc.PracticeAuthorizerSvc {
	return &practiceAuthorizer{
		membershipRepo: membershipRepo,
		policy:         policy,
	}
}

// Ensure practiceAuthorizer implements the PracticeAuthorizerSvc interface
var _ portssvc.PracticeAuthorizerSvc = (*practiceAuthorizer)(nil)

func (s *practiceAuthorizer) AuthorizeClaimAction(ctx context.Context, userID string, scope domain.TenantScope, action domain.ClaimAction) error {
	if userID == "" || scope.IsZero() {
		return apperrors.ErrForbidden
	}

	membership, err := s.membershipRepo.FindPracticeMembership(ctx, userID, scope.PracticeID())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of practice",
				slog.String("user_id", userID),
				slog.String("practice_id", scope.PracticeID()))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find practice membership",
			slog.String("user_id", userID),
			slog.String("practice_id", scope.PracticeID()))
		return err
	}

	if !membership.IsActive {
		s.LogDebug(ctx, "Practice membership is inactive",
			slog.String("user_id", userID),
			slog.String("practice_id", scope.PracticeID()))
		return apperrors.ErrForbidden
	}

	allowed, err := s.policy.Allowed(ctx, membership.Role, action)
	if err != nil {
		s.LogError(ctx, err, "Policy evaluation failed", slog.String("action", string(action)))
		return fmt.Errorf("%w: policy evaluation failed", apperrors.ErrInternal)
	}
	if !allowed {
		s.LogDebug(ctx, "Role does not permit action",
			slog.String("user_id", userID),
			slog.String("role", string(membership.Role)),
			slog.String("action", string(action)))
		return apperrors.ErrForbidden
	}

	return nil
}
