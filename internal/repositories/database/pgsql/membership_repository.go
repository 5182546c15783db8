package pgsql

import (
	"context"

	"github.com/campbellchri/clara-backend/internal/core/domain"
	portsrepo "github.com/campbellchri/clara-backend/internal/core/ports/repositories"
	"github.com/campbellchri/clara-backend/internal/models"
	"github.com/campbellchri/clara-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMembershipRepository struct {
	BaseRepository
}

func newPgxMembershipRepository(pool *pgxpool.Pool) portsrepo.MembershipReader {
	return &PgxMembershipRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MembershipReader = (*PgxMembershipRepository)(nil)

// FindPracticeMembership retrieves the membership of a user in a practice.
func (r *PgxMembershipRepository) FindPracticeMembership(ctx context.Context, userID, practiceID string) (*domain.PracticeMembership, error) {
	query := `
		SELECT user_id, practice_id, role, is_active, joined_at
		FROM practice_memberships
		WHERE user_id = $1 AND practice_id = $2;
	`
	rows, err := r.Pool.Query(ctx, query, userID, practiceID)
	if err != nil {
		return nil, err
	}
	m, err := collectOne[models.PracticeMembership](rows, "practice membership")
	if err != nil {
		return nil, err
	}
	membership := mapping.ToDomainMembership(*m)
	return &membership, nil
}
