package repositories

import (
	"context"

	"github.com/campbellchri/clara-backend/internal/core/domain"
)

// EntityDirectory looks up the entities a session refers to by ID, without any tenant
// filter. Tenant checks are made by the caller so a foreign ID can be told apart from a
// missing one. Each Find method returns apperrors.ErrNotFound when the ID does not exist.
type EntityDirectory interface {
	FindPracticeByID(ctx context.Context, practiceID string) (*domain.Practice, error)
	FindTherapistByID(ctx context.Context, therapistID string) (*domain.Therapist, error)
	FindPatientByID(ctx context.Context, patientID string) (*domain.Patient, error)
	PayerRegistry
}

// PayerRegistry is the global list of payers claims may be billed to.
type PayerRegistry interface {
	// FindPayerByID returns apperrors.ErrNotFound for an unknown payer.
	FindPayerByID(ctx context.Context, payerID string) (*domain.Payer, error)
}

// PayerWriter adds payers to the registry.
type PayerWriter interface {
	// EnsurePayers inserts the payers that are not yet registered and reports how many were added.
	EnsurePayers(ctx context.Context, payerIDs []string) (int64, error)
}

// EntityResolver resolves session references inside a tenant scope. It fails with an
// *apperrors.ResolutionError when a reference is missing, foreign or inactive.
type EntityResolver interface {
	Resolve(ctx context.Context, scope domain.TenantScope, refs domain.EntityRefs) (*domain.ResolvedEntities, error)
}
