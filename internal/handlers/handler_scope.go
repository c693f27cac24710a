package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/claims_ledger/internal/core/ports/services"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/SscSPs/claims_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// scopeHandler handles HTTP requests related to scopes.
type scopeHandler struct {
	scopeService portssvc.ScopeSvcFacade
}

func newScopeHandler(ss portssvc.ScopeSvcFacade) *scopeHandler {
	return &scopeHandler{scopeService: ss}
}

// RegisterScopeRoutes registers the routes that manage scopes themselves.
func RegisterScopeRoutes(rg *gin.RouterGroup, scopeService portssvc.ScopeSvcFacade) {
	h := newScopeHandler(scopeService)

	scopes := rg.Group("/scopes")
	{
		scopes.POST("", h.createScope)
		scopes.GET("", h.listScopes)
		scopes.GET("/:"+middleware.JoinCodeParam, h.getScope)
		scopes.DELETE("/:"+middleware.JoinCodeParam, h.deactivateScope)
	}
}

// createScope godoc
// @Summary Open a new scope
// @Description Creates a sub-group owned by the caller and returns its join code
// @Tags scopes
// @Accept  json
// @Produce  json
// @Param   scope body dto.CreateScopeRequest true "Scope details"
// @Success 201 {object} dto.ScopeResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ErrorResponse "Validation error"
// @Failure 500 {object} dto.ErrorResponse "Failed to create scope"
// @Security BearerAuth
// @Router /scopes [post]
func (h *scopeHandler) createScope(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	scope, err := h.scopeService.CreateScope(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, err, "Failed to create scope")
		return
	}

	logger.Info("Scope created", slog.String("join_code", scope.JoinCode))
	c.JSON(http.StatusCreated, dto.ToScopeResponse(scope))
}

// listScopes godoc
// @Summary List the caller's scopes
// @Tags scopes
// @Produce  json
// @Success 200 {object} dto.ListScopesResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list scopes"
// @Security BearerAuth
// @Router /scopes [get]
func (h *scopeHandler) listScopes(c *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	scopes, err := h.scopeService.ListScopes(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, err, "Failed to list scopes")
		return
	}
	c.JSON(http.StatusOK, dto.ToListScopesResponse(scopes))
}

// getScope godoc
// @Summary Resolve a join code
// @Description Returns the active scope a join code names
// @Tags scopes
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Success 200 {object} dto.ScopeResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Unknown or inactive join code"
// @Security BearerAuth
// @Router /scopes/{joinCode} [get]
func (h *scopeHandler) getScope(c *gin.Context) {
	scope, err := h.scopeService.ResolveScope(c.Request.Context(), c.Param(middleware.JoinCodeParam))
	if err != nil {
		respondWithError(c, err, "Failed to resolve scope")
		return
	}
	c.JSON(http.StatusOK, dto.ToScopeResponse(scope))
}

// deactivateScope godoc
// @Summary Close a scope
// @Tags scopes
// @Param   joinCode path string true "Join code"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the scope"
// @Failure 404 {object} dto.ErrorResponse "Unknown join code"
// @Security BearerAuth
// @Router /scopes/{joinCode} [delete]
func (h *scopeHandler) deactivateScope(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.scopeService.DeactivateScope(c.Request.Context(), c.Param(middleware.JoinCodeParam), userID); err != nil {
		respondWithError(c, err, "Failed to deactivate scope")
		return
	}
	c.Status(http.StatusNoContent)
}
