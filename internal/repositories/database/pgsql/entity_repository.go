package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/campbellchri/clara-backend/internal/core/domain"
	portsrepo "github.com/campbellchri/clara-backend/internal/core/ports/repositories"
	"github.com/campbellchri/clara-backend/internal/models"
	"github.com/campbellchri/clara-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	selectPracticeSQL = `
		SELECT practice_id, name, npi, tax_id, timezone, lifecycle,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM practices
		WHERE practice_id = $1;`

	selectTherapistSQL = `
		SELECT therapist_id, practice_id, first_name, last_name, npi, license_number, lifecycle,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM therapists
		WHERE therapist_id = $1;`

	selectPatientSQL = `
		SELECT patient_id, practice_id, first_name, last_name, date_of_birth, member_id, payer_id, lifecycle,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM patients
		WHERE patient_id = $1;`

	selectPayerSQL = `
		SELECT payer_id, name
		FROM payers
		WHERE payer_id = $1;`

	insertPayersSQL = `
		INSERT INTO payers (payer_id, name)
		SELECT p, p FROM unnest($1::text[]) AS p
		ON CONFLICT (payer_id) DO NOTHING;`
)

// PgxEntityRepository looks up practices, therapists, patients and payers by ID.
// Lookups are not tenant filtered; the resolver compares practice IDs itself.
type PgxEntityRepository struct {
	BaseRepository
}

func newPgxEntityRepository(pool *pgxpool.Pool) *PgxEntityRepository {
	return &PgxEntityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.EntityDirectory = (*PgxEntityRepository)(nil)
	_ portsrepo.PayerWriter     = (*PgxEntityRepository)(nil)
)

func (r *PgxEntityRepository) FindPracticeByID(ctx context.Context, practiceID string) (*domain.Practice, error) {
	rows, err := r.Pool.Query(ctx, selectPracticeSQL, practiceID)
	if err != nil {
		return nil, err
	}
	m, err := collectOne[models.Practice](rows, "practice")
	if err != nil {
		return nil, err
	}
	practice := mapping.ToDomainPractice(*m)
	return &practice, nil
}

func (r *PgxEntityRepository) FindTherapistByID(ctx context.Context, therapistID string) (*domain.Therapist, error) {
	rows, err := r.Pool.Query(ctx, selectTherapistSQL, therapistID)
	if err != nil {
		return nil, err
	}
	m, err := collectOne[models.Therapist](rows, "therapist")
	if err != nil {
		return nil, err
	}
	therapist := mapping.ToDomainTherapist(*m)
	return &therapist, nil
}

func (r *PgxEntityRepository) FindPatientByID(ctx context.Context, patientID string) (*domain.Patient, error) {
	rows, err := r.Pool.Query(ctx, selectPatientSQL, patientID)
	if err != nil {
		return nil, err
	}
	m, err := collectOne[models.Patient](rows, "patient")
	if err != nil {
		return nil, err
	}
	patient := mapping.ToDomainPatient(*m)
	return &patient, nil
}

func (r *PgxEntityRepository) FindPayerByID(ctx context.Context, payerID string) (*domain.Payer, error) {
	rows, err := r.Pool.Query(ctx, selectPayerSQL, payerID)
	if err != nil {
		return nil, err
	}
	m, err := collectOne[models.Payer](rows, "payer")
	if err != nil {
		return nil, err
	}
	payer := mapping.ToDomainPayer(*m)
	return &payer, nil
}

// EnsurePayers registers payerIDs that are not in the registry yet, using the ID as name.
func (r *PgxEntityRepository) EnsurePayers(ctx context.Context, payerIDs []string) (int64, error) {
	ids := normalizePayerIDs(payerIDs)
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.Pool.Exec(ctx, insertPayersSQL, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to register payers: %w", err)
	}
	return tag.RowsAffected(), nil
}

// normalizePayerIDs upper-cases, trims and de-duplicates payer IDs, dropping blanks.
func normalizePayerIDs(payerIDs []string) []string {
	seen := make(map[string]struct{}, len(payerIDs))
	out := make([]string, 0, len(payerIDs))
	for _, id := range payerIDs {
		id = strings.ToUpper(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
