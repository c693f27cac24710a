package dto

import "github.com/SscSPs/claims_ledger/internal/apperrors"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Reason  string                 `json:"reason,omitempty"`
	Details []apperrors.FieldError `json:"details,omitempty"`
}
