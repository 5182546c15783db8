package pgsql

import (
	portsrepo "github.com/campbellchri/clara-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every Postgres-backed repository over dbPool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	entities := newPgxEntityRepository(dbPool)
	return portsrepo.RepositoryProvider{
		ClaimRepo:      newPgxClaimRepository(dbPool),
		EntityRepo:     entities,
		PayerRepo:      entities,
		MembershipRepo: newPgxMembershipRepository(dbPool),
		AuditRepo:      newPgxAuditRepository(dbPool),
	}
}
