package middleware

import (
	"context"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for request context keys.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	scopeKey     = contextKey("scope")
)

// GetUserIDFromCtx retrieves the authenticated actor id from a request context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserIDFromContext retrieves the authenticated actor id from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return GetUserIDFromCtx(c.Request.Context())
}

// WithUserID returns a context carrying the authenticated actor id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetScopeFromContext returns the scope resolved by ScopeMiddleware.
func GetScopeFromContext(c *gin.Context) (*domain.Scope, bool) {
	scope, ok := c.Request.Context().Value(scopeKey).(*domain.Scope)
	return scope, ok && scope != nil
}

// WithScope returns a context carrying a resolved scope.
func WithScope(ctx context.Context, scope *domain.Scope) context.Context {
	return context.WithValue(ctx, scopeKey, scope)
}
