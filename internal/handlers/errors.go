package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/SscSPs/claims_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError maps a service error onto a status code and body.
// fallback is the message used for unexpected failures, whose details stay in the log.
func respondWithError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var (
		integrity *apperrors.IntegrityError
		rejected  *apperrors.RejectedError
		verrs     apperrors.ValidationErrors
	)
	switch {
	case errors.As(err, &integrity):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "claim does not match its linked entry",
			Reason:  domain.ReasonNotEntryOwner,
			Details: integrity.Errors,
		})
	case errors.As(err, &rejected):
		status := http.StatusUnprocessableEntity
		if errors.Is(err, apperrors.ErrDuplicate) {
			status = http.StatusConflict
		}
		c.JSON(status, dto.ErrorResponse{Error: "claim rejected", Reason: rejected.Reason})
	case errors.As(err, &verrs):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: "validation failed", Details: verrs})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrAlreadyVoid):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrRetryable):
		logger.Warn("Storage conflict persisted after retries", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "storage busy, try again"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}

func badRequest(c *gin.Context, what string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + what + ": " + err.Error()})
}

// callerAndScope returns the authenticated actor and the scope resolved by
// ScopeMiddleware, answering the request itself when either is missing.
func callerAndScope(c *gin.Context) (string, *domain.Scope, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", nil, false
	}
	scope, ok := middleware.GetScopeFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Scope not found in context")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "scope not resolved"})
		return "", nil, false
	}
	return userID, scope, true
}
