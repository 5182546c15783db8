package services_test

import (
	"context"

	"github.com/campbellchri/clara-backend/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Repository mocks ---

type MockClaimRepository struct {
	mock.Mock
}

func (m *MockClaimRepository) FindClaimByID(ctx context.Context, scope domain.TenantScope, claimID string) (*domain.Claim, error) {
	args := m.Called(ctx, scope, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}

func (m *MockClaimRepository) ListClaimsByPractice(ctx context.Context, scope domain.TenantScope, status *domain.ClaimStatus, limit int, nextToken *string) ([]domain.Claim, *string, error) {
	args := m.Called(ctx, scope, status, limit, nextToken)
	var claims []domain.Claim
	if args.Get(0) != nil {
		claims = args.Get(0).([]domain.Claim)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return claims, token, args.Error(2)
}

func (m *MockClaimRepository) SaveClaim(ctx context.Context, scope domain.TenantScope, claim domain.Claim) error {
	args := m.Called(ctx, scope, claim)
	return args.Error(0)
}

func (m *MockClaimRepository) UpdateClaimStatus(ctx context.Context, scope domain.TenantScope, claim domain.Claim, fromStatus domain.ClaimStatus, expectedVersion int64) error {
	args := m.Called(ctx, scope, claim, fromStatus, expectedVersion)
	return args.Error(0)
}

type MockEntityDirectory struct {
	mock.Mock
}

func (m *MockEntityDirectory) FindPracticeByID(ctx context.Context, practiceID string) (*domain.Practice, error) {
	args := m.Called(ctx, practiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Practice), args.Error(1)
}

func (m *MockEntityDirectory) FindTherapistByID(ctx context.Context, therapistID string) (*domain.Therapist, error) {
	args := m.Called(ctx, therapistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Therapist), args.Error(1)
}

func (m *MockEntityDirectory) FindPatientByID(ctx context.Context, patientID string) (*domain.Patient, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func (m *MockEntityDirectory) FindPayerByID(ctx context.Context, payerID string) (*domain.Payer, error) {
	args := m.Called(ctx, payerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payer), args.Error(1)
}

type MockEntityResolver struct {
	mock.Mock
}

func (m *MockEntityResolver) Resolve(ctx context.Context, scope domain.TenantScope, refs domain.EntityRefs) (*domain.ResolvedEntities, error) {
	args := m.Called(ctx, scope, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolvedEntities), args.Error(1)
}

type MockMembershipReader struct {
	mock.Mock
}

func (m *MockMembershipReader) FindPracticeMembership(ctx context.Context, userID, practiceID string) (*domain.PracticeMembership, error) {
	args := m.Called(ctx, userID, practiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PracticeMembership), args.Error(1)
}

type MockAuditWriter struct {
	mock.Mock
}

func (m *MockAuditWriter) RecordAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Service mocks ---

type MockPracticeAuthorizer struct {
	mock.Mock
}

func (m *MockPracticeAuthorizer) AuthorizeClaimAction(ctx context.Context, userID string, scope domain.TenantScope, action domain.ClaimAction) error {
	args := m.Called(ctx, userID, scope, action)
	return args.Error(0)
}

type MockPolicyEvaluator struct {
	mock.Mock
}

func (m *MockPolicyEvaluator) Allowed(ctx context.Context, role domain.PracticeRole, action domain.ClaimAction) (bool, error) {
	args := m.Called(ctx, role, action)
	return args.Bool(0), args.Error(1)
}

type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, event domain.AuditEvent) {
	m.Called(ctx, event)
}

type MockClaimIDGenerator struct {
	mock.Mock
}

func (m *MockClaimIDGenerator) NextIdentifier() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
