package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/claims_ledger/internal/core/ports/services"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/SscSPs/claims_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type policyHandler struct {
	policyService portssvc.PolicySvcFacade
}

func newPolicyHandler(ps portssvc.PolicySvcFacade) *policyHandler {
	return &policyHandler{policyService: ps}
}

func registerPolicyRoutes(rg *gin.RouterGroup, policyService portssvc.PolicySvcFacade) {
	h := newPolicyHandler(policyService)

	policies := rg.Group("/policies")
	{
		policies.POST("", h.createPolicy)
		policies.GET("", h.listPolicies)
		policies.GET("/:policyID", h.getPolicy)
		policies.PATCH("/:policyID", h.updatePolicy)
		policies.DELETE("/:policyID", h.deactivatePolicy)
	}
}

// createPolicy godoc
// @Summary Create a reimbursement policy
// @Tags policies
// @Accept  json
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   policy body dto.CreatePolicyRequest true "Policy details"
// @Success 201 {object} dto.PolicyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the scope"
// @Failure 422 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /scopes/{joinCode}/policies [post]
func (h *policyHandler) createPolicy(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}
	var req dto.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	policy, err := h.policyService.CreatePolicy(c.Request.Context(), scope.TenantScope, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create policy")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Policy created", slog.String("policy_id", policy.PolicyID))
	c.JSON(http.StatusCreated, dto.ToPolicyResponse(policy))
}

// listPolicies godoc
// @Summary List policies
// @Tags policies
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   includeInactive query bool false "Include deactivated policies"
// @Success 200 {object} dto.ListPoliciesResponse
// @Security BearerAuth
// @Router /scopes/{joinCode}/policies [get]
func (h *policyHandler) listPolicies(c *gin.Context) {
	_, scope, ok := callerAndScope(c)
	if !ok {
		return
	}
	var params dto.ListPoliciesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	policies, err := h.policyService.ListPolicies(c.Request.Context(), scope.TenantScope, params)
	if err != nil {
		respondWithError(c, err, "Failed to list policies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPoliciesResponse(policies))
}

// getPolicy godoc
// @Summary Get a policy
// @Tags policies
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   policyID path string true "Policy ID"
// @Success 200 {object} dto.PolicyResponse
// @Failure 404 {object} dto.ErrorResponse "Policy not found"
// @Security BearerAuth
// @Router /scopes/{joinCode}/policies/{policyID} [get]
func (h *policyHandler) getPolicy(c *gin.Context) {
	_, scope, ok := callerAndScope(c)
	if !ok {
		return
	}

	policy, err := h.policyService.GetPolicy(c.Request.Context(), scope.TenantScope, c.Param("policyID"))
	if err != nil {
		respondWithError(c, err, "Failed to get policy")
		return
	}
	c.JSON(http.StatusOK, dto.ToPolicyResponse(policy))
}

// updatePolicy godoc
// @Summary Update a policy
// @Description Only the fields present in the body change
// @Tags policies
// @Accept  json
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   policyID path string true "Policy ID"
// @Param   policy body dto.UpdatePolicyRequest true "Fields to change"
// @Success 200 {object} dto.PolicyResponse
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the scope"
// @Failure 404 {object} dto.ErrorResponse "Policy not found"
// @Failure 422 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /scopes/{joinCode}/policies/{policyID} [patch]
func (h *policyHandler) updatePolicy(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}
	var req dto.UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	policy, err := h.policyService.UpdatePolicy(c.Request.Context(), scope.TenantScope, c.Param("policyID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update policy")
		return
	}
	c.JSON(http.StatusOK, dto.ToPolicyResponse(policy))
}

// deactivatePolicy godoc
// @Summary Deactivate a policy
// @Tags policies
// @Param   joinCode path string true "Join code"
// @Param   policyID path string true "Policy ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the scope"
// @Failure 404 {object} dto.ErrorResponse "Policy not found"
// @Security BearerAuth
// @Router /scopes/{joinCode}/policies/{policyID} [delete]
func (h *policyHandler) deactivatePolicy(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}

	if err := h.policyService.DeactivatePolicy(c.Request.Context(), scope.TenantScope, c.Param("policyID"), userID); err != nil {
		respondWithError(c, err, "Failed to deactivate policy")
		return
	}
	c.Status(http.StatusNoContent)
}
