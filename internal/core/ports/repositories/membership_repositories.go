package repositories

import (
	"context"

	"github.com/campbellchri/clara-backend/internal/core/domain"
)

// MembershipReader defines read operations for practice memberships
type MembershipReader interface {
	// FindPracticeMembership retrieves the role of a user in a practice.
	FindPracticeMembership(ctx context.Context, userID, practiceID string) (*domain.PracticeMembership, error)
}
