package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campbellchri/clara-backend/internal/apperrors"
	"github.com/campbellchri/clara-backend/internal/core/domain"
	portssvc "github.com/campbellchri/clara-backend/internal/core/ports/services"
	"github.com/campbellchri/clara-backend/internal/dto"
	"github.com/campbellchri/clara-backend/internal/handlers"
	"github.com/campbellchri/clara-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ClaimService ---
type MockClaimService struct {
	mock.Mock
}

func (m *MockClaimService) PrepareClaim(ctx context.Context, scope domain.TenantScope, input domain.SessionInput, userID string) (*domain.PrepareResult, error) {
	args := m.Called(ctx, scope, input, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PrepareResult), args.Error(1)
}
func (m *MockClaimService) GetClaim(ctx context.Context, scope domain.TenantScope, claimID string, userID string) (*domain.Claim, error) {
	args := m.Called(ctx, scope, claimID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) ListClaims(ctx context.Context, scope domain.TenantScope, userID string, params dto.ListClaimsParams) (*dto.ListClaimsResponse, error) {
	args := m.Called(ctx, scope, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListClaimsResponse), args.Error(1)
}
func (m *MockClaimService) SubmitClaim(ctx context.Context, scope domain.TenantScope, claimID string, userID string) (*domain.Claim, error) {
	args := m.Called(ctx, scope, claimID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) RecordPayment(ctx context.Context, scope domain.TenantScope, claimID string, req dto.RecordPaymentRequest, userID string) (*domain.Claim, error) {
	args := m.Called(ctx, scope, claimID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) DenyClaim(ctx context.Context, scope domain.TenantScope, claimID string, req dto.DenyClaimRequest, userID string) (*domain.Claim, error) {
	args := m.Called(ctx, scope, claimID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}

var _ portssvc.ClaimSvcFacade = (*MockClaimService)(nil)

// --- Test Suite ---
type ClaimHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockClaimService *MockClaimService
	jwtSecret        string
	testUserID       string
	practiceID       string
	scope            domain.TenantScope
}

func (suite *ClaimHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(dto.RegisterValidators())
}

func (suite *ClaimHandlerTestSuite) SetupTest() {
	suite.mockClaimService = new(MockClaimService)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.testUserID = "user-billing-1"
	suite.practiceID = "prac-1"

	scope, err := domain.NewTenantScope(suite.practiceID)
	suite.Require().NoError(err)
	suite.scope = scope

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true,
	}
	container := &portssvc.ServiceContainer{Claims: suite.mockClaimService}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *ClaimHandlerTestSuite) TearDownTest() {
	suite.mockClaimService.AssertExpectations(suite.T())
}

func TestClaimHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ClaimHandlerTestSuite))
}

// --- Helpers ---

func (suite *ClaimHandlerTestSuite) generateTestToken(userID string) string {
	claims := &jwt.RegisteredClaims{
		Issuer:    "test-issuer",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *ClaimHandlerTestSuite) doRequest(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.testUserID))

	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)
	return rr
}

func (suite *ClaimHandlerTestSuite) claimsPath(suffix string) string {
	return fmt.Sprintf("/api/v1/practices/%s/claims%s", suite.practiceID, suffix)
}

func validPrepareBody() map[string]any {
	return map[string]any{
		"practice_id":     "prac-1",
		"therapist_id":    "ther-1",
		"patient_id":      "pat-1",
		"session_date":    "2025-06-01",
		"cpt_code":        " 90837 ",
		"icd10_code":      "f41.1",
		"fee":             "150.00",
		"copay_collected": "20.00",
		"payer_id":        "bcbsma",
	}
}

func sampleClaim(status domain.ClaimStatus) *domain.Claim {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return &domain.Claim{
		ClaimID:          "CLM-00000000ABCD",
		PracticeID:       "prac-1",
		TherapistID:      "ther-1",
		PatientID:        "pat-1",
		PayerID:          "BCBSMA",
		ServiceDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CPTCode:          "90837",
		ICD10Code:        "F41.1",
		ChargeAmount:     decimal.RequireFromString("150"),
		CopayAmount:      decimal.RequireFromString("20"),
		Status:           status,
		ValidationErrors: []string{},
		Version:          1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "user-billing-1",
			LastUpdatedAt: now,
			LastUpdatedBy: "user-billing-1",
		},
	}
}

// --- Prepare ---

func (suite *ClaimHandlerTestSuite) TestPrepareClaim_Success() {
	claim := sampleClaim(domain.ClaimReadyForSubmission)
	matchesInput := mock.MatchedBy(func(in domain.SessionInput) bool {
		return in.CPTCode == "90837" && in.ICD10Code == "F41.1" && in.PayerID == "BCBSMA" &&
			in.Fee.Equal(decimal.RequireFromString("150")) && in.CopayCollected.Equal(decimal.RequireFromString("20"))
	})
	suite.mockClaimService.On("PrepareClaim", mock.Anything, suite.scope, matchesInput, suite.testUserID).
		Return(domain.Ready(claim), nil).Once()

	rr := suite.doRequest(http.MethodPost, suite.claimsPath(""), validPrepareBody())

	suite.Equal(http.StatusCreated, rr.Code)
	var resp dto.ClaimResponse
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	suite.Equal("CLM-00000000ABCD", resp.ClaimID)
	suite.Equal("READY_FOR_SUBMISSION", resp.Status)
	suite.Equal("150.00", resp.ChargeAmount)
	suite.Equal("20.00", resp.CopayAmount)
	suite.Equal("2025-06-01", resp.ServiceDate)
	suite.Empty(resp.ValidationErrors)
}

func (suite *ClaimHandlerTestSuite) TestPrepareClaim_InvalidReturnsEnvelope() {
	messages := []string{
		"CPT code '99999' is not in the allowed list.",
		"Session date cannot be in the future.",
	}
	suite.mockClaimService.On("PrepareClaim", mock.Anything, suite.scope, mock.AnythingOfType("domain.SessionInput"), suite.testUserID).
		Return(domain.Invalid(messages), nil).Once()

	rr := suite.doRequest(http.MethodPost, suite.claimsPath(""), validPrepareBody())

	suite.Equal(http.StatusUnprocessableEntity, rr.Code)
	var resp dto.InvalidClaimResponse
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	suite.Equal("INVALID", resp.Status)
	suite.Equal(messages, resp.ValidationErrors)
}

func (suite *ClaimHandlerTestSuite) TestPrepareClaim_BindingError() {
	body := validPrepareBody()
	delete(body, "fee")
	body["session_date"] = "06/01/2025"

	rr := suite.doRequest(http.MethodPost, suite.claimsPath(""), body)

	suite.Equal(http.StatusBadRequest, rr.Code)
	var resp dto.InvalidClaimResponse
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	suite.Equal("INVALID", resp.Status)
	suite.Contains(resp.ValidationErrors, "session_date must be a date in YYYY-MM-DD format.")
	suite.Contains(resp.ValidationErrors, "fee is required.")
	suite.mockClaimService.AssertNotCalled(suite.T(), "PrepareClaim", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClaimHandlerTestSuite) TestPrepareClaim_ErrorMapping() {
	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "patient of another practice looks unknown",
			err:            apperrors.NewResolutionError(apperrors.ResolutionTenantMismatch, "patient", "pat-9"),
			expectedStatus: http.StatusNotFound,
			expectedError:  "patient not found",
		},
		{
			name:           "unknown therapist",
			err:            apperrors.NewResolutionError(apperrors.ResolutionNotFound, "therapist", "ther-9"),
			expectedStatus: http.StatusNotFound,
			expectedError:  "therapist not found",
		},
		{
			name:           "payload practice differs from path",
			err:            apperrors.NewResolutionError(apperrors.ResolutionTenantMismatch, "practice", "prac-2"),
			expectedStatus: http.StatusForbidden,
			expectedError:  "Forbidden",
		},
		{
			name:           "inactive patient",
			err:            apperrors.NewResolutionError(apperrors.ResolutionInactive, "patient", "pat-1"),
			expectedStatus: http.StatusConflict,
			expectedError:  "patient pat-1 is not active",
		},
		{
			name:           "storage unavailable",
			err:            apperrors.NewPersistenceError("save claim", fmt.Errorf("connection reset")),
			expectedStatus: http.StatusServiceUnavailable,
			expectedError:  "Claim storage is temporarily unavailable, please retry",
		},
		{
			name:           "role not allowed",
			err:            fmt.Errorf("%w: role FRONT_DESK cannot prepare claims", apperrors.ErrForbidden),
			expectedStatus: http.StatusForbidden,
			expectedError:  "Forbidden",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.mockClaimService.On("PrepareClaim", mock.Anything, suite.scope, mock.AnythingOfType("domain.SessionInput"), suite.testUserID).
				Return(nil, tc.err).Once()

			rr := suite.doRequest(http.MethodPost, suite.claimsPath(""), validPrepareBody())

			suite.Equal(tc.expectedStatus, rr.Code)
			var resp map[string]string
			suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
			suite.Equal(tc.expectedError, resp["error"])
			if tc.expectedStatus == http.StatusServiceUnavailable {
				suite.Equal("1", rr.Header().Get("Retry-After"))
			}
		})
	}
}

func (suite *ClaimHandlerTestSuite) TestPrepareClaim_ForeignAndUnknownReferencesMatch() {
	for _, entity := range []string{"therapist", "patient"} {
		suite.Run(entity, func() {
			responses := make([]*httptest.ResponseRecorder, 0, 2)
			for _, kind := range []apperrors.ResolutionKind{apperrors.ResolutionNotFound, apperrors.ResolutionTenantMismatch} {
				suite.mockClaimService.On("PrepareClaim", mock.Anything, suite.scope, mock.AnythingOfType("domain.SessionInput"), suite.testUserID).
					Return(nil, apperrors.NewResolutionError(kind, entity, "id-42")).Once()
				responses = append(responses, suite.doRequest(http.MethodPost, suite.claimsPath(""), validPrepareBody()))
			}

			suite.Equal(responses[0].Code, responses[1].Code)
			suite.Equal(responses[0].Body.String(), responses[1].Body.String())
			suite.NotContains(responses[1].Body.String(), "id-42")
		})
	}
}

func (suite *ClaimHandlerTestSuite) TestPrepareClaim_Unauthorized() {
	req, err := http.NewRequest(http.MethodPost, suite.claimsPath(""), bytes.NewReader([]byte(`{}`)))
	suite.Require().NoError(err)
	rr := httptest.NewRecorder()

	suite.router.ServeHTTP(rr, req)

	suite.Equal(http.StatusUnauthorized, rr.Code)
	suite.mockClaimService.AssertNotCalled(suite.T(), "PrepareClaim", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClaimHandlerTestSuite) TestPrepareClaim_WrongSigningKey() {
	claims := &jwt.RegisteredClaims{
		Subject:   suite.testUserID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	suite.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPost, suite.claimsPath(""), bytes.NewReader([]byte(`{}`)))
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+signed)
	rr := httptest.NewRecorder()

	suite.router.ServeHTTP(rr, req)

	suite.Equal(http.StatusUnauthorized, rr.Code)
}

// --- Read ---

func (suite *ClaimHandlerTestSuite) TestGetClaim_Success() {
	claim := sampleClaim(domain.ClaimReadyForSubmission)
	suite.mockClaimService.On("GetClaim", mock.Anything, suite.scope, claim.ClaimID, suite.testUserID).Return(claim, nil).Once()

	rr := suite.doRequest(http.MethodGet, suite.claimsPath("/"+claim.ClaimID), nil)

	suite.Equal(http.StatusOK, rr.Code)
	var resp dto.ClaimResponse
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	suite.Equal(claim.ClaimID, resp.ClaimID)
	suite.Equal("ther-1", resp.ProviderID)
}

func (suite *ClaimHandlerTestSuite) TestGetClaim_NotFound() {
	suite.mockClaimService.On("GetClaim", mock.Anything, suite.scope, "CLM-MISSING", suite.testUserID).
		Return(nil, apperrors.ErrNotFound).Once()

	rr := suite.doRequest(http.MethodGet, suite.claimsPath("/CLM-MISSING"), nil)

	suite.Equal(http.StatusNotFound, rr.Code)
}

func (suite *ClaimHandlerTestSuite) TestListClaims_Success() {
	next := "dG9rZW4"
	expectedParams := dto.ListClaimsParams{Status: "SUBMITTED", Limit: 5}
	resp := dto.ToListClaimsResponse([]domain.Claim{*sampleClaim(domain.ClaimSubmitted)}, &next)
	suite.mockClaimService.On("ListClaims", mock.Anything, suite.scope, suite.testUserID, expectedParams).Return(resp, nil).Once()

	rr := suite.doRequest(http.MethodGet, suite.claimsPath("?status=SUBMITTED&limit=5"), nil)

	suite.Equal(http.StatusOK, rr.Code)
	var body dto.ListClaimsResponse
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &body))
	suite.Len(body.Claims, 1)
	suite.Require().NotNil(body.NextToken)
	suite.Equal(next, *body.NextToken)
}

func (suite *ClaimHandlerTestSuite) TestListClaims_LimitOutOfRange() {
	rr := suite.doRequest(http.MethodGet, suite.claimsPath("?limit=500"), nil)

	suite.Equal(http.StatusBadRequest, rr.Code)
	suite.mockClaimService.AssertNotCalled(suite.T(), "ListClaims", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Lifecycle ---

func (suite *ClaimHandlerTestSuite) TestSubmitClaim_Success() {
	claim := sampleClaim(domain.ClaimSubmitted)
	suite.mockClaimService.On("SubmitClaim", mock.Anything, suite.scope, claim.ClaimID, suite.testUserID).Return(claim, nil).Once()

	rr := suite.doRequest(http.MethodPost, suite.claimsPath("/"+claim.ClaimID+"/submit"), nil)

	suite.Equal(http.StatusOK, rr.Code)
}

func (suite *ClaimHandlerTestSuite) TestSubmitClaim_InvalidTransition() {
	suite.mockClaimService.On("SubmitClaim", mock.Anything, suite.scope, "CLM-1", suite.testUserID).
		Return(nil, fmt.Errorf("%w: PAID -> SUBMITTED", apperrors.ErrInvalidTransition)).Once()

	rr := suite.doRequest(http.MethodPost, suite.claimsPath("/CLM-1/submit"), nil)

	suite.Equal(http.StatusConflict, rr.Code)
}

func (suite *ClaimHandlerTestSuite) TestRecordPayment_Success() {
	claim := sampleClaim(domain.ClaimPaid)
	claim.PaidAmount = decimal.NewNullDecimal(decimal.RequireFromString("110.5"))
	matchesReq := mock.MatchedBy(func(req dto.RecordPaymentRequest) bool {
		return req.PaidAmount != nil && req.PaidAmount.Equal(decimal.RequireFromString("110.50"))
	})
	suite.mockClaimService.On("RecordPayment", mock.Anything, suite.scope, claim.ClaimID, matchesReq, suite.testUserID).Return(claim, nil).Once()

	rr := suite.doRequest(http.MethodPost, suite.claimsPath("/"+claim.ClaimID+"/pay"), map[string]any{"paid_amount": "110.50"})

	suite.Equal(http.StatusOK, rr.Code)
	var resp dto.ClaimResponse
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.PaidAmount)
	suite.Equal("110.50", *resp.PaidAmount)
}

func (suite *ClaimHandlerTestSuite) TestDenyClaim_MissingReason() {
	rr := suite.doRequest(http.MethodPost, suite.claimsPath("/CLM-1/deny"), map[string]any{"denial_reason": "   "})

	suite.Equal(http.StatusBadRequest, rr.Code)
	suite.mockClaimService.AssertNotCalled(suite.T(), "DenyClaim", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClaimHandlerTestSuite) TestDenyClaim_StaleVersion() {
	req := dto.DenyClaimRequest{DenialReason: "Not medically necessary"}
	suite.mockClaimService.On("DenyClaim", mock.Anything, suite.scope, "CLM-1", req, suite.testUserID).
		Return(nil, apperrors.ErrConflict).Once()

	rr := suite.doRequest(http.MethodPost, suite.claimsPath("/CLM-1/deny"), req)

	suite.Equal(http.StatusConflict, rr.Code)
}

func (suite *ClaimHandlerTestSuite) TestHealth() {
	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	suite.Require().NoError(err)
	rr := httptest.NewRecorder()

	suite.router.ServeHTTP(rr, req)

	suite.Equal(http.StatusOK, rr.Code)
	suite.Equal("OK", rr.Body.String())
}
