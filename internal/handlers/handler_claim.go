package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/campbellchri/clara-backend/internal/core/ports/services"
	"github.com/campbellchri/clara-backend/internal/dto"
	"github.com/campbellchri/clara-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// claimHandler handles HTTP requests related to claims.
type claimHandler struct {
	claimService portssvc.ClaimSvcFacade
}

// newClaimHandler creates a new claimHandler.
func newClaimHandler(cs portssvc.ClaimSvcFacade) *claimHandler {
	return &claimHandler{
		claimService: cs,
	}
}

// registerClaimRoutes registers claim routes under a practice-scoped group.
// prepareMiddleware runs only on claim preparation (e.g. idempotency replay).
func registerClaimRoutes(rg *gin.RouterGroup, claimService portssvc.ClaimSvcFacade, prepareMiddleware ...gin.HandlerFunc) {
	h := newClaimHandler(claimService)

	claims := rg.Group("/claims")
	{
		claims.POST("", append(prepareMiddleware, h.prepareClaim)...)
		claims.GET("", h.listClaims)
		claims.GET("/:claim_id", h.getClaim)
		claims.POST("/:claim_id/submit", h.submitClaim)
		claims.POST("/:claim_id/pay", h.recordPayment)
		claims.POST("/:claim_id/deny", h.denyClaim)
	}
}

// requestIdentity returns the authenticated user, writing a 401 when there is none.
func requestIdentity(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// prepareClaim godoc
// @Summary Prepare a claim from a therapy session
// @Description Validates a session against every billing rule and, when all pass, stores a claim ready for submission.
// @Description Rule violations are all reported together with status INVALID.
// @Tags claims
// @Accept  json
// @Produce  json
// @Param   practice_id path string true "Practice ID"
// @Param   Idempotency-Key header string false "Replays the stored response for a retried request"
// @Param   session body dto.PrepareClaimRequest true "Session billing details"
// @Success 201 {object} dto.ClaimResponse
// @Failure 400 {object} dto.InvalidClaimResponse "Malformed input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Referenced entity not found"
// @Failure 409 {object} map[string]string "Referenced entity is inactive, or a request with the same Idempotency-Key is in progress"
// @Failure 422 {object} dto.InvalidClaimResponse "Session failed claim validation"
// @Failure 503 {object} map[string]string "Storage unavailable, retry"
// @Security BearerAuth
// @Router /practices/{practice_id}/claims [post]
func (h *claimHandler) prepareClaim(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PrepareClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PrepareClaim", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewInvalidClaimResponse(dto.BindingMessages(err)...))
		return
	}

	input, err := req.ToSessionInput()
	if err != nil {
		logger.Warn("Invalid session input", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewInvalidClaimResponse(err.Error()))
		return
	}

	scope, ok := middleware.GetTenantScope(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "practice_id path parameter is required"})
		return
	}
	userID, ok := requestIdentity(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to prepare claim", slog.String("cpt_code", input.CPTCode), slog.String("payer_id", input.PayerID))

	result, err := h.claimService.PrepareClaim(c.Request.Context(), scope, input, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to prepare claim")
		return
	}

	if !result.IsReady() {
		logger.Info("Claim preparation returned violations", slog.Int("violations", len(result.ValidationErrors)))
		c.JSON(http.StatusUnprocessableEntity, dto.NewInvalidClaimResponse(result.ValidationErrors...))
		return
	}

	logger.Info("Claim prepared successfully", slog.String("claim_id", result.Claim.ClaimID))
	c.JSON(http.StatusCreated, dto.ToClaimResponse(result.Claim))
}

// getClaim godoc
// @Summary Get a claim by ID
// @Description Retrieves a claim of the practice
// @Tags claims
// @Produce  json
// @Param   practice_id path string true "Practice ID"
// @Param   claim_id path string true "Claim ID"
// @Success 200 {object} dto.ClaimResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Claim not found"
// @Failure 500 {object} map[string]string "Failed to retrieve claim"
// @Security BearerAuth
// @Router /practices/{practice_id}/claims/{claim_id} [get]
func (h *claimHandler) getClaim(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	claimID := c.Param("claim_id")

	scope, _ := middleware.GetTenantScope(c)
	userID, ok := requestIdentity(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("claim_id", claimID))
	logger.Info("Received request to get claim")

	claim, err := h.claimService.GetClaim(c.Request.Context(), scope, claimID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve claim")
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// listClaims godoc
// @Summary List claims
// @Description Lists the practice's claims, newest first, with token-based pagination
// @Tags claims
// @Produce  json
// @Param   practice_id path string true "Practice ID"
// @Param   status query string false "Filter by status (e.g. READY_FOR_SUBMISSION)"
// @Param   limit query int false "Page size (1-100, default 20)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListClaimsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list claims"
// @Security BearerAuth
// @Router /practices/{practice_id}/claims [get]
func (h *claimHandler) listClaims(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListClaimsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListClaims", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	scope, _ := middleware.GetTenantScope(c)
	userID, ok := requestIdentity(c, logger)
	if !ok {
		return
	}

	resp, err := h.claimService.ListClaims(c.Request.Context(), scope, userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list claims")
		return
	}

	logger.Info("Claims listed successfully", slog.Int("count", len(resp.Claims)))
	c.JSON(http.StatusOK, resp)
}

// submitClaim godoc
// @Summary Submit a claim
// @Description Marks a claim that is ready for submission as submitted to the payer
// @Tags claims
// @Produce  json
// @Param   practice_id path string true "Practice ID"
// @Param   claim_id path string true "Claim ID"
// @Success 200 {object} dto.ClaimResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Claim not found"
// @Failure 409 {object} map[string]string "Invalid status transition or concurrent update"
// @Failure 503 {object} map[string]string "Storage unavailable, retry"
// @Security BearerAuth
// @Router /practices/{practice_id}/claims/{claim_id}/submit [post]
func (h *claimHandler) submitClaim(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	claimID := c.Param("claim_id")

	scope, _ := middleware.GetTenantScope(c)
	userID, ok := requestIdentity(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("claim_id", claimID))
	claim, err := h.claimService.SubmitClaim(c.Request.Context(), scope, claimID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to submit claim")
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// recordPayment godoc
// @Summary Record a claim payment
// @Description Records the payer's payment on a submitted claim
// @Tags claims
// @Accept  json
// @Produce  json
// @Param   practice_id path string true "Practice ID"
// @Param   claim_id path string true "Claim ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 200 {object} dto.ClaimResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Claim not found"
// @Failure 409 {object} map[string]string "Invalid status transition or concurrent update"
// @Security BearerAuth
// @Router /practices/{practice_id}/claims/{claim_id}/pay [post]
func (h *claimHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	claimID := c.Param("claim_id")

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	scope, _ := middleware.GetTenantScope(c)
	userID, ok := requestIdentity(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("claim_id", claimID))
	claim, err := h.claimService.RecordPayment(c.Request.Context(), scope, claimID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// denyClaim godoc
// @Summary Deny a claim
// @Description Records the payer's denial of a submitted claim
// @Tags claims
// @Accept  json
// @Produce  json
// @Param   practice_id path string true "Practice ID"
// @Param   claim_id path string true "Claim ID"
// @Param   denial body dto.DenyClaimRequest true "Denial details"
// @Success 200 {object} dto.ClaimResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Claim not found"
// @Failure 409 {object} map[string]string "Invalid status transition or concurrent update"
// @Security BearerAuth
// @Router /practices/{practice_id}/claims/{claim_id}/deny [post]
func (h *claimHandler) denyClaim(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	claimID := c.Param("claim_id")

	var req dto.DenyClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DenyClaim", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	scope, _ := middleware.GetTenantScope(c)
	userID, ok := requestIdentity(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("claim_id", claimID))
	claim, err := h.claimService.DenyClaim(c.Request.Context(), scope, claimID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to deny claim")
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}
