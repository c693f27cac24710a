package dto

import (
	"time"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
)

// CreateScopeRequest defines the data needed to open a new sub-group.
type CreateScopeRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// ScopeResponse defines the data returned for a scope.
type ScopeResponse struct {
	JoinCode    string    `json:"joinCode"`
	Name        string    `json:"name"`
	OwnerID     string    `json:"ownerID"`
	SubGroupKey string    `json:"subGroupKey"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListScopesResponse wraps a list of scopes.
type ListScopesResponse struct {
	Scopes []ScopeResponse `json:"scopes"`
}

func ToScopeResponse(s *domain.Scope) ScopeResponse {
	return ScopeResponse{
		JoinCode:    s.JoinCode,
		Name:        s.Name,
		OwnerID:     s.OwnerID,
		SubGroupKey: s.SubGroupKey,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
	}
}

func ToListScopesResponse(scopes []domain.Scope) ListScopesResponse {
	out := make([]ScopeResponse, len(scopes))
	for i := range scopes {
		out[i] = ToScopeResponse(&scopes[i])
	}
	return ListScopesResponse{Scopes: out}
}
