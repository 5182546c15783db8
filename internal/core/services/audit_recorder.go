package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/campbellchri/clara-backend/internal/core/domain"
	portsrepo "github.com/campbellchri/clara-backend/internal/core/ports/repositories"
	portssvc "github.com/campbellchri/clara-backend/internal/core/ports/services"
	"github.com/campbellchri/clara-backend/internal/middleware"
	"github.com/google/uuid"
)

type auditRecorder struct {
	BaseService
	writer portsrepo.AuditWriter
}

// NewAuditRecorder returns a recorder that writes events through writer and only logs failures.
func NewAuditRecorder(writer portsrepo.AuditWriter, timeout time.Duration) portssvc.AuditRecorderSvc {
	return &auditRecorder{
		BaseService: BaseService{CallTimeout: timeout},
		writer:      writer,
	}
}

var _ portssvc.AuditRecorderSvc = (*auditRecorder)(nil)

func (s *auditRecorder) Record(ctx context.Context, event domain.AuditEvent) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now()
	}
	meta := middleware.GetClientMetaFromCtx(ctx)
	if event.IPAddress == "" {
		event.IPAddress = meta.IPAddress
	}
	if event.UserAgent == "" {
		event.UserAgent = meta.UserAgent
	}

	// The request may already be finishing; the audit write should still go through.
	writeCtx, cancel := s.withTimeout(context.WithoutCancel(ctx))
	defer cancel()

	if err := s.writer.RecordAuditEvent(writeCtx, event); err != nil {
		s.LogError(ctx, err, "Failed to record audit event",
			slog.String("audit_event_id", event.EventID),
			slog.String("action", string(event.Action)),
			slog.String("resource_type", event.ResourceType),
			slog.String("resource_id", event.ResourceID))
	}
}
