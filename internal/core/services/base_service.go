package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/campbellchri/clara-backend/internal/core/domain"
	portssvc "github.com/campbellchri/clara-backend/internal/core/ports/services"
	"github.com/campbellchri/clara-backend/internal/middleware"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/campbellchri/clara-backend/internal/core/services")

// BaseService provides common functionality for all services
type BaseService struct {
	PracticeAuthorizer portssvc.PracticeAuthorizerSvc
	AuditRecorder      portssvc.AuditRecorderSvc
	// CallTimeout bounds each call to a storage collaborator. Zero means no bound.
	CallTimeout time.Duration
	Now         func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeUser checks if a user may perform action in the scoped practice
func (s *BaseService) AuthorizeUser(ctx context.Context, userID string, scope domain.TenantScope, action domain.ClaimAction) error {
	if s.PracticeAuthorizer != nil {
		return s.PracticeAuthorizer.AuthorizeClaimAction(ctx, userID, scope, action)
	}
	s.LogDebug(ctx, "No practice authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("practice_id", scope.PracticeID()),
		slog.String("action", string(action)))
	return nil
}

// RecordAudit hands an access event to the audit recorder. It never fails the caller.
func (s *BaseService) RecordAudit(ctx context.Context, userID string, scope domain.TenantScope, action domain.AuditAction, resourceID string) {
	if s.AuditRecorder == nil {
		return
	}
	s.AuditRecorder.Record(ctx, domain.AuditEvent{
		UserID:       userID,
		PracticeID:   scope.PracticeID(),
		Action:       action,
		ResourceType: domain.AuditResourceClaim,
		ResourceID:   resourceID,
		AccessedPHI:  true,
	})
}

func (s *BaseService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// withTimeout derives a context bounded by CallTimeout.
func (s *BaseService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.CallTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.CallTimeout)
}
