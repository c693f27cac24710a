package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/claims_ledger/internal/core/ports/services"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// JoinCodeParam is the route parameter naming the scope.
const JoinCodeParam = "joinCode"

// ScopeMiddleware resolves the join code in the path once per request and
// stores the scope in the request context. Handlers read it back with
// GetScopeFromContext and pass it down explicitly.
func ScopeMiddleware(resolver portssvc.ScopeResolverSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		joinCode := c.Param(JoinCodeParam)

		scope, err := resolver.ResolveScope(c.Request.Context(), joinCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, dto.ErrorResponse{Error: "scope not found"})
				return
			}
			logger.Error("Failed to resolve scope", slog.String("join_code", joinCode), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
			return
		}

		ctx := WithScope(c.Request.Context(), scope)
		ctx = WithLogger(ctx, logger.With(
			slog.String("owner_id", scope.OwnerID),
			slog.String("sub_group_key", scope.SubGroupKey),
		))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
