package pgsql

import (
	"context"
	"fmt"

	"github.com/campbellchri/clara-backend/internal/core/domain"
	portsrepo "github.com/campbellchri/clara-backend/internal/core/ports/repositories"
	"github.com/campbellchri/clara-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditWriter {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditWriter = (*PgxAuditRepository)(nil)

// RecordAuditEvent appends one row to audit_logs. Rows are never updated or deleted.
func (r *PgxAuditRepository) RecordAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	m := mapping.ToModelAuditLog(event)
	query := `
		INSERT INTO audit_logs (event_id, user_id, practice_id, action, resource_type, resource_id,
		                        accessed_phi, ip_address, user_agent, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EventID,
		m.UserID,
		m.PracticeID,
		m.Action,
		m.ResourceType,
		m.ResourceID,
		m.AccessedPHI,
		m.IPAddress,
		m.UserAgent,
		m.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record audit event %s: %w", m.EventID, err)
	}
	return nil
}
