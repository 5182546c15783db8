package repositories

import (
	"context"

	"github.com/campbellchri/clara-backend/internal/core/domain"
)

// AuditWriter persists PHI access events.
type AuditWriter interface {
	RecordAuditEvent(ctx context.Context, event domain.AuditEvent) error
}
