package dto

import (
	"time"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitClaimRequest defines the data needed to file a claim.
// LinkedEntryID is required for linked-entry policies, RequestedAmount for free-form ones.
type SubmitClaimRequest struct {
	PolicyID        string           `json:"policyID" binding:"required"`
	LinkedEntryID   *string          `json:"linkedEntryID"`
	RequestedAmount *decimal.Decimal `json:"requestedAmount"`
	IncidentDate    time.Time        `json:"incidentDate" binding:"required"`
	Description     string           `json:"description" binding:"max=1000"`
}

// DecideClaimRequest approves or rejects a pending claim.
type DecideClaimRequest struct {
	Decision    domain.Decision  `json:"decision" binding:"required,oneof=approve reject"`
	CapOverride *decimal.Decimal `json:"capOverride"`
	Reason      string           `json:"reason" binding:"max=500"`
}

// ListClaimsParams are the query parameters for listing claims.
type ListClaimsParams struct {
	ActorID      string             `form:"actorID"`
	EnrollmentID string             `form:"enrollmentID"`
	Status       domain.ClaimStatus `form:"status" binding:"omitempty,oneof=pending approved rejected paid"`
	Limit        int                `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken    string             `form:"nextToken"`
}

// ClaimResponse defines the data returned for a claim.
type ClaimResponse struct {
	ClaimID         string             `json:"claimID"`
	EnrollmentID    string             `json:"enrollmentID"`
	PolicyID        string             `json:"policyID"`
	ActorID         string             `json:"actorID"`
	LinkedEntryID   *string            `json:"linkedEntryID,omitempty"`
	RequestedAmount *decimal.Decimal   `json:"requestedAmount,omitempty"`
	IncidentDate    time.Time          `json:"incidentDate"`
	Description     string             `json:"description"`
	Status          domain.ClaimStatus `json:"status"`
	ApprovedAmount  *decimal.Decimal   `json:"approvedAmount,omitempty"`
	RejectionReason *string            `json:"rejectionReason,omitempty"`
	FiledAt         time.Time          `json:"filedAt"`
	DecidedAt       *time.Time         `json:"decidedAt,omitempty"`
	DecidedBy       *string            `json:"decidedBy,omitempty"`
	PaidAt          *time.Time         `json:"paidAt,omitempty"`
	PayoutEntryID   *string            `json:"payoutEntryID,omitempty"`
}

// ListClaimsResponse is one page of claims.
type ListClaimsResponse struct {
	Claims    []ClaimResponse `json:"claims"`
	NextToken *string         `json:"nextToken,omitempty"`
}

func ToClaimResponse(c *domain.Claim) ClaimResponse {
	return ClaimResponse{
		ClaimID:         c.ClaimID,
		EnrollmentID:    c.EnrollmentID,
		PolicyID:        c.PolicyID,
		ActorID:         c.ActorID,
		LinkedEntryID:   c.LinkedEntryID,
		RequestedAmount: c.RequestedAmount,
		IncidentDate:    c.IncidentDate,
		Description:     c.Description,
		Status:          c.Status,
		ApprovedAmount:  c.ApprovedAmount,
		RejectionReason: c.RejectionReason,
		FiledAt:         c.FiledAt,
		DecidedAt:       c.DecidedAt,
		DecidedBy:       c.DecidedBy,
		PaidAt:          c.PaidAt,
		PayoutEntryID:   c.PayoutEntryID,
	}
}

func ToClaimResponses(claims []domain.Claim) []ClaimResponse {
	out := make([]ClaimResponse, len(claims))
	for i := range claims {
		out[i] = ToClaimResponse(&claims[i])
	}
	return out
}
