package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the resource is in a state that does not allow the requested change.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates that the actor is not allowed to perform the action in this scope.
var ErrForbidden = errors.New("action not permitted")

// ErrAlreadyVoid is returned when voiding an entry that is already void.
var ErrAlreadyVoid = errors.New("entry already void")

// ErrIntegrity marks security-relevant integrity violations such as ownership mismatches.
var ErrIntegrity = errors.New("integrity violation")

// ErrRetryable marks storage conflicts (serialization failures, deadlocks, busy
// database) after which the whole transaction can be safely retried.
var ErrRetryable = errors.New("transient storage conflict")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// AppError attaches a message and an underlying cause to one of the sentinel kinds above.
type AppError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewAppError builds an AppError of the given kind.
func NewAppError(kind error, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: cause}
}

// NewNotFoundError is shorthand for a not-found AppError naming the resource.
func NewNotFoundError(resource string) *AppError {
	return &AppError{Kind: ErrNotFound, Message: resource + " not found"}
}

// NewForbiddenError is shorthand for a forbidden AppError.
func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: ErrForbidden, Message: message}
}

// FieldError is one failed rule.
type FieldError struct {
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// ValidationErrors collects every failed rule instead of stopping at the first one.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(v.Reasons(), "; "))
}

func (v ValidationErrors) Unwrap() error { return ErrValidation }

// Add appends a failed rule.
func (v *ValidationErrors) Add(field, reason string) {
	*v = append(*v, FieldError{Field: field, Reason: reason})
}

// Reasons returns the reasons in the order they were added.
func (v ValidationErrors) Reasons() []string {
	out := make([]string, 0, len(v))
	for _, fe := range v {
		out = append(out, fe.Reason)
	}
	return out
}

// Has reports whether any collected rule failed with the given reason.
func (v ValidationErrors) Has(reason string) bool {
	for _, fe := range v {
		if fe.Reason == reason {
			return true
		}
	}
	return false
}

// OrNil returns nil when nothing failed, so callers can `return errs.OrNil()`.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// RejectedError is a claim submission refused for a specific reason.
type RejectedError struct {
	Reason string
	kind   error
}

// NewRejectedError returns an ineligible-input rejection.
func NewRejectedError(reason string) *RejectedError {
	return &RejectedError{Reason: reason, kind: ErrValidation}
}

// NewDuplicateRejection returns the rejection produced when the uniqueness
// constraint on a claim's linked entry fires.
func NewDuplicateRejection(reason string) *RejectedError {
	return &RejectedError{Reason: reason, kind: ErrDuplicate}
}

func (e *RejectedError) Error() string { return "rejected: " + e.Reason }

func (e *RejectedError) Unwrap() error { return e.kind }

// IntegrityError records an ownership mismatch between a claim and its linked entry.
// Errors carries every rule that failed during the same decision.
type IntegrityError struct {
	ClaimID      string
	ClaimActorID string
	EntryID      string
	EntryActorID string
	Errors       ValidationErrors
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: claim %s filed by %s links an entry owned by %s",
		ErrIntegrity, e.ClaimID, e.ClaimActorID, e.EntryActorID)
}

func (e *IntegrityError) Unwrap() []error {
	if len(e.Errors) == 0 {
		return []error{ErrIntegrity}
	}
	return []error{ErrIntegrity, e.Errors}
}
