package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/SscSPs/claims_ledger/internal/middleware"
	"github.com/SscSPs/claims_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-test-secret"

func sign(t *testing.T, claims jwt.RegisteredClaims, key string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func authRouter(issuer string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(secret, issuer), func(c *gin.Context) {
		userID, _ := middleware.GetUserIDFromContext(c)
		c.String(http.StatusOK, userID)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid := jwt.RegisteredClaims{
		Subject:   "student-1",
		Issuer:    "identity",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	noSubject := valid
	noSubject.Subject = ""
	generated, err := utils.GenerateJWT("student-2", secret, time.Minute, "identity")
	require.NoError(t, err)

	tests := []struct {
		name       string
		issuer     string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "", "Bearer " + sign(t, valid, secret), http.StatusOK, "student-1"},
		{"issuer checked", "identity", "Bearer " + sign(t, valid, secret), http.StatusOK, "student-1"},
		{"generated token", "identity", "Bearer " + generated, http.StatusOK, "student-2"},
		{"wrong issuer", "someone-else", "Bearer " + sign(t, valid, secret), http.StatusUnauthorized, ""},
		{"missing header", "", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "", "Basic abc", http.StatusUnauthorized, ""},
		{"bad signature", "", "Bearer " + sign(t, valid, "other-secret"), http.StatusUnauthorized, ""},
		{"expired", "", "Bearer " + sign(t, expired, secret), http.StatusUnauthorized, "Token has expired"},
		{"no subject", "", "Bearer " + sign(t, noSubject, secret), http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			authRouter(tt.issuer).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

type stubResolver struct {
	scopes map[string]*domain.Scope
}

func (s stubResolver) ResolveScope(_ context.Context, joinCode string) (*domain.Scope, error) {
	if scope, ok := s.scopes[joinCode]; ok {
		return scope, nil
	}
	return nil, apperrors.NewNotFoundError("scope")
}

func TestScopeMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := stubResolver{scopes: map[string]*domain.Scope{
		"ABCD2345": {JoinCode: "ABCD2345", TenantScope: domain.TenantScope{OwnerID: "owner-1", SubGroupKey: "sg-1"}},
	}}

	r := gin.New()
	r.GET("/scopes/:joinCode/x", middleware.ScopeMiddleware(resolver), func(c *gin.Context) {
		scope, ok := middleware.GetScopeFromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, scope.SubGroupKey)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scopes/ABCD2345/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sg-1", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scopes/ZZZZ9999/x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
