package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/claims_ledger/internal/core/ports/services"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/SscSPs/claims_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// claimHandler handles HTTP requests related to claims.
type claimHandler struct {
	claimService portssvc.ClaimSvcFacade
}

func newClaimHandler(cs portssvc.ClaimSvcFacade) *claimHandler {
	return &claimHandler{claimService: cs}
}

func registerClaimRoutes(rg *gin.RouterGroup, claimService portssvc.ClaimSvcFacade) {
	h := newClaimHandler(claimService)

	claims := rg.Group("/claims")
	{
		claims.POST("", h.submitClaim)
		claims.GET("", h.listClaims)
		claims.GET("/:claimID", h.getClaim)
		claims.POST("/:claimID/decision", h.decideClaim)
		claims.POST("/:claimID/payout", h.payClaim)
	}
}

// submitClaim godoc
// @Summary File a claim
// @Description Runs the eligibility checks and stores the claim as pending. The first failed check is returned as the reason.
// @Tags claims
// @Accept  json
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   claim body dto.SubmitClaimRequest true "Claim details"
// @Success 201 {object} dto.ClaimResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format"
// @Failure 404 {object} dto.ErrorResponse "Policy not found"
// @Failure 409 {object} dto.ErrorResponse "Entry already claimed"
// @Failure 422 {object} dto.ErrorResponse "Claim rejected"
// @Security BearerAuth
// @Router /scopes/{joinCode}/claims [post]
func (h *claimHandler) submitClaim(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}
	var req dto.SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	claim, err := h.claimService.SubmitClaim(c.Request.Context(), scope.TenantScope, userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to submit claim")
		return
	}
	c.JSON(http.StatusCreated, dto.ToClaimResponse(claim))
}

// listClaims godoc
// @Summary List claims
// @Description Participants only see their own claims
// @Tags claims
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   actorID query string false "Filter by actor"
// @Param   enrollmentID query string false "Filter by enrollment"
// @Param   status query string false "Filter by status" Enums(pending, approved, rejected, paid)
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListClaimsResponse
// @Failure 403 {object} dto.ErrorResponse "Listing another actor's claims"
// @Security BearerAuth
// @Router /scopes/{joinCode}/claims [get]
func (h *claimHandler) listClaims(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}
	var params dto.ListClaimsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	page, err := h.claimService.ListClaims(c.Request.Context(), scope.TenantScope, userID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list claims")
		return
	}
	c.JSON(http.StatusOK, page)
}

// getClaim godoc
// @Summary Get a claim
// @Tags claims
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   claimID path string true "Claim ID"
// @Success 200 {object} dto.ClaimResponse
// @Failure 403 {object} dto.ErrorResponse "Claim belongs to another actor"
// @Failure 404 {object} dto.ErrorResponse "Claim not found"
// @Security BearerAuth
// @Router /scopes/{joinCode}/claims/{claimID} [get]
func (h *claimHandler) getClaim(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}

	claim, err := h.claimService.GetClaim(c.Request.Context(), scope.TenantScope, c.Param("claimID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to get claim")
		return
	}
	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// decideClaim godoc
// @Summary Approve or reject a pending claim
// @Description Approval re-checks the linked entry and the period cap under lock. Every failed rule is reported.
// @Tags claims
// @Accept  json
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   claimID path string true "Claim ID"
// @Param   decision body dto.DecideClaimRequest true "Decision"
// @Success 200 {object} dto.ClaimResponse
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the scope"
// @Failure 404 {object} dto.ErrorResponse "Claim not found"
// @Failure 409 {object} dto.ErrorResponse "Linked entry owned by someone else"
// @Failure 422 {object} dto.ErrorResponse "Decision refused"
// @Security BearerAuth
// @Router /scopes/{joinCode}/claims/{claimID}/decision [post]
func (h *claimHandler) decideClaim(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}
	var req dto.DecideClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	claim, err := h.claimService.DecideClaim(c.Request.Context(), scope.TenantScope, c.Param("claimID"), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to decide claim")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Claim decision applied",
		slog.String("claim_id", claim.ClaimID),
		slog.String("status", string(claim.Status)))
	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// payClaim godoc
// @Summary Pay an approved claim
// @Description Settles a claim of a deferred-payout policy with a reimbursement entry
// @Tags claims
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   claimID path string true "Claim ID"
// @Success 200 {object} dto.ClaimResponse
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the scope"
// @Failure 404 {object} dto.ErrorResponse "Claim not found"
// @Failure 422 {object} dto.ErrorResponse "Claim not approved"
// @Security BearerAuth
// @Router /scopes/{joinCode}/claims/{claimID}/payout [post]
func (h *claimHandler) payClaim(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}

	claim, err := h.claimService.PayClaim(c.Request.Context(), scope.TenantScope, c.Param("claimID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to pay claim")
		return
	}
	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}
