package pgsql

import (
	"context"
	"fmt"

	"github.com/campbellchri/clara-backend/internal/apperrors"
	"github.com/campbellchri/clara-backend/internal/core/domain"
	portsrepo "github.com/campbellchri/clara-backend/internal/core/ports/repositories"
	"github.com/campbellchri/clara-backend/internal/models"
	"github.com/campbellchri/clara-backend/internal/utils/mapping"
	"github.com/campbellchri/clara-backend/internal/utils/pagination"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultClaimPageSize = 20

// claimColumns are selected in models.Claim field order.
var claimColumns = []interface{}{
	"claim_id", "practice_id", "therapist_id", "patient_id", "payer_id", "service_date",
	"cpt_code", "icd10_code", "charge_amount", "copay_amount", "status", "validation_errors",
	"patient_name", "provider_npi", "practice_npi", "practice_tax_id",
	"allowed_amount", "paid_amount", "denial_reason", "submitted_at", "response_at", "version",
	"created_at", "created_by", "last_updated_at", "last_updated_by",
}

type PgxClaimRepository struct {
	BaseRepository
	dialect goqu.DialectWrapper
}

func newPgxClaimRepository(pool *pgxpool.Pool) portsrepo.ClaimRepositoryFacade {
	return &PgxClaimRepository{
		BaseRepository: BaseRepository{Pool: pool},
		dialect:        goqu.Dialect("postgres"),
	}
}

// Ensure PgxClaimRepository implements portsrepo.ClaimRepositoryFacade
var _ portsrepo.ClaimRepositoryFacade = (*PgxClaimRepository)(nil)

// SaveClaim inserts a new claim. The practice always comes from scope.
func (r *PgxClaimRepository) SaveClaim(ctx context.Context, scope domain.TenantScope, claim domain.Claim) error {
	m := mapping.ToModelClaim(claim)
	m.PracticeID = scope.PracticeID()

	query := `
		INSERT INTO claims (claim_id, practice_id, therapist_id, patient_id, payer_id, service_date,
		                    cpt_code, icd10_code, charge_amount, copay_amount, status, validation_errors,
		                    patient_name, provider_npi, practice_npi, practice_tax_id,
		                    allowed_amount, paid_amount, denial_reason, submitted_at, response_at, version,
		                    created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24, $25, $26);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ClaimID, m.PracticeID, m.TherapistID, m.PatientID, m.PayerID, m.ServiceDate,
		m.CPTCode, m.ICD10Code, m.ChargeAmount, m.CopayAmount, m.Status, m.ValidationErrors,
		m.PatientName, m.ProviderNPI, m.PracticeNPI, m.PracticeTaxID,
		m.AllowedAmount, m.PaidAmount, m.DenialReason, m.SubmittedAt, m.ResponseAt, m.Version,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError(fmt.Sprintf("claim with ID %s already exists", m.ClaimID))
		}
		return fmt.Errorf("failed to save claim %s: %w", m.ClaimID, err)
	}
	return nil
}

// FindClaimByID retrieves a claim by ID inside scope. Claims of other practices are not found.
func (r *PgxClaimRepository) FindClaimByID(ctx context.Context, scope domain.TenantScope, claimID string) (*domain.Claim, error) {
	query, args, err := r.dialect.From("claims").
		Select(claimColumns...).
		Where(goqu.Ex{"claim_id": claimID, "practice_id": scope.PracticeID()}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build claim query: %w", err)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query claim %s: %w", claimID, err)
	}
	m, err := collectOne[models.Claim](rows, "claim")
	if err != nil {
		return nil, err
	}
	claim := mapping.ToDomainClaim(*m)
	return &claim, nil
}

// ListClaimsByPractice retrieves a page of claims for the scoped practice, newest first.
// The cursor is the (created_at, claim_id) pair of the last row returned.
func (r *PgxClaimRepository) ListClaimsByPractice(ctx context.Context, scope domain.TenantScope, status *domain.ClaimStatus, limit int, nextToken *string) ([]domain.Claim, *string, error) {
	if limit <= 0 {
		limit = defaultClaimPageSize
	}

	query, args, err := r.listClaimsQuery(scope, status, limit, nextToken)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list claims for practice %s: %w", scope.PracticeID(), err)
	}
	modelClaims, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Claim])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan claims for practice %s: %w", scope.PracticeID(), err)
	}

	var nextTokenVal *string
	results := modelClaims
	if len(modelClaims) > limit {
		last := modelClaims[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ClaimID)
		nextTokenVal = &token
		results = modelClaims[:limit]
	}

	return mapping.ToDomainClaimSlice(results), nextTokenVal, nil
}

// listClaimsQuery builds the page query. It fetches one extra row to tell whether a next page exists.
func (r *PgxClaimRepository) listClaimsQuery(scope domain.TenantScope, status *domain.ClaimStatus, limit int, nextToken *string) (string, []interface{}, error) {
	ds := r.dialect.From("claims").
		Select(claimColumns...).
		Where(goqu.C("practice_id").Eq(scope.PracticeID()))

	if status != nil {
		ds = ds.Where(goqu.C("status").Eq(string(*status)))
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastClaimID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return "", nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		// Tuple comparison keeps the ordering stable across equal timestamps
		ds = ds.Where(goqu.L("(created_at, claim_id) < (?, ?)", lastCreatedAt, lastClaimID))
	}

	query, args, err := ds.
		Order(goqu.C("created_at").Desc(), goqu.C("claim_id").Desc()).
		Limit(uint(limit + 1)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build claim list query: %w", err)
	}
	return query, args, nil
}

// UpdateClaimStatus writes a transitioned claim and appends to its status history in one
// transaction. The update only applies if the stored version and status are still the
// ones the caller read.
func (r *PgxClaimRepository) UpdateClaimStatus(ctx context.Context, scope domain.TenantScope, claim domain.Claim, fromStatus domain.ClaimStatus, expectedVersion int64) error {
	m := mapping.ToModelClaim(claim)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		UPDATE claims
		SET status = $1, allowed_amount = $2, paid_amount = $3, denial_reason = $4,
		    submitted_at = $5, response_at = $6, version = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE claim_id = $10 AND practice_id = $11 AND version = $12 AND status = $13;
	`
	tag, err := tx.Exec(ctx, query,
		m.Status, m.AllowedAmount, m.PaidAmount, m.DenialReason,
		m.SubmittedAt, m.ResponseAt, m.Version,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.ClaimID, scope.PracticeID(), expectedVersion, string(fromStatus),
	)
	if err != nil {
		return fmt.Errorf("failed to update claim %s: %w", m.ClaimID, err)
	}
	if tag.RowsAffected() == 0 {
		exists, checkErr := r.claimExists(ctx, tx, scope, m.ClaimID)
		if checkErr != nil {
			return checkErr
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: claim %s was modified concurrently", apperrors.ErrConflict, m.ClaimID)
	}

	historyQuery := `
		INSERT INTO claim_status_history (claim_id, from_status, to_status, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := tx.Exec(ctx, historyQuery, m.ClaimID, string(fromStatus), m.Status, m.LastUpdatedBy, m.LastUpdatedAt); err != nil {
		return fmt.Errorf("failed to record status history for claim %s: %w", m.ClaimID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxClaimRepository) claimExists(ctx context.Context, tx pgx.Tx, scope domain.TenantScope, claimID string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM claims WHERE claim_id = $1 AND practice_id = $2);`,
		claimID, scope.PracticeID(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check claim %s: %w", claimID, err)
	}
	return exists, nil
}
