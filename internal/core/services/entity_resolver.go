package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/campbellchri/clara-backend/internal/apperrors"
	"github.com/campbellchri/clara-backend/internal/core/domain"
	portsrepo "github.com/campbellchri/clara-backend/internal/core/ports/repositories"
)

// entityResolver resolves session references against the entity directory and
// enforces that each one belongs to the active tenant.
type entityResolver struct {
	BaseService
	directory portsrepo.EntityDirectory
}

// NewEntityResolver creates a tenant-checking resolver over directory.
func NewEntityResolver(directory portsrepo.EntityDirectory) portsrepo.EntityResolver {
	return &entityResolver{directory: directory}
}

var _ portsrepo.EntityResolver = (*entityResolver)(nil)

// Resolve returns the referenced entities whatever their lifecycle state; callers
// decide whether inactive entities are eligible. An unknown payer resolves to nil.
func (r *entityResolver) Resolve(ctx context.Context, scope domain.TenantScope, refs domain.EntityRefs) (*domain.ResolvedEntities, error) {
	// The payload's practice must be the scoped one. Foreign practice IDs are not looked up.
	if !scope.Owns(refs.PracticeID) {
		r.LogInfo(ctx, "Session practice does not match tenant scope",
			slog.String("scope_practice_id", scope.PracticeID()))
		return nil, apperrors.NewResolutionError(apperrors.ResolutionTenantMismatch, "practice", refs.PracticeID)
	}

	practice, err := r.directory.FindPracticeByID(ctx, scope.PracticeID())
	if err != nil {
		return nil, notFoundOr(err, "practice", refs.PracticeID)
	}

	therapist, err := r.directory.FindTherapistByID(ctx, refs.TherapistID)
	if err != nil {
		return nil, notFoundOr(err, "therapist", refs.TherapistID)
	}
	if !scope.Owns(therapist.PracticeID) {
		r.LogInfo(ctx, "Therapist belongs to another practice", slog.String("therapist_id", refs.TherapistID))
		return nil, apperrors.NewResolutionError(apperrors.ResolutionTenantMismatch, "therapist", refs.TherapistID)
	}

	patient, err := r.directory.FindPatientByID(ctx, refs.PatientID)
	if err != nil {
		return nil, notFoundOr(err, "patient", refs.PatientID)
	}
	if !scope.Owns(patient.PracticeID) {
		r.LogInfo(ctx, "Patient belongs to another practice", slog.String("patient_id", refs.PatientID))
		return nil, apperrors.NewResolutionError(apperrors.ResolutionTenantMismatch, "patient", refs.PatientID)
	}

	resolved := &domain.ResolvedEntities{
		Practice:  practice,
		Therapist: therapist,
		Patient:   patient,
	}

	payer, err := r.directory.FindPayerByID(ctx, refs.PayerID)
	switch {
	case err == nil:
		resolved.Payer = payer
	case errors.Is(err, apperrors.ErrNotFound):
		r.LogDebug(ctx, "Payer not in registry", slog.String("payer_id", refs.PayerID))
	default:
		return nil, err
	}

	return resolved, nil
}

func notFoundOr(err error, entity, id string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewResolutionError(apperrors.ResolutionNotFound, entity, id)
	}
	return err
}

// requireActive rejects sessions that refer to inactive or deleted entities.
func requireActive(resolved *domain.ResolvedEntities) error {
	if !resolved.Practice.Lifecycle.IsActive() {
		return apperrors.NewResolutionError(apperrors.ResolutionInactive, "practice", resolved.Practice.PracticeID)
	}
	if !resolved.Therapist.Lifecycle.IsActive() {
		return apperrors.NewResolutionError(apperrors.ResolutionInactive, "therapist", resolved.Therapist.TherapistID)
	}
	if !resolved.Patient.Lifecycle.IsActive() {
		return apperrors.NewResolutionError(apperrors.ResolutionInactive, "patient", resolved.Patient.PatientID)
	}
	return nil
}
