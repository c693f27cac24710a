package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClaimStatus is the state of a claim in the approval state machine.
type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
	ClaimPaid     ClaimStatus = "paid"
)

func (s ClaimStatus) IsValid() bool {
	switch s {
	case ClaimPending, ClaimApproved, ClaimRejected, ClaimPaid:
		return true
	}
	return false
}

// CanTransition reports whether the state machine allows from -> to.
// Rejected and paid are terminal. An approved claim awaiting deferred payout
// can still be rejected when its linked entry is voided.
func CanTransition(from, to ClaimStatus) bool {
	switch from {
	case ClaimPending:
		return to == ClaimApproved || to == ClaimRejected || to == ClaimPaid
	case ClaimApproved:
		return to == ClaimPaid || to == ClaimRejected
	}
	return false
}

// Decision is what a deciding actor does with a pending claim.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// Reasons reported by submission rejections and decision validation.
const (
	ReasonNotEnrolled           = "not enrolled"
	ReasonEnrollmentCancelled   = "enrollment cancelled"
	ReasonWaitingPeriod         = "coverage waiting period not elapsed"
	ReasonPaymentNotCurrent     = "premium payments not current"
	ReasonPolicyInactive        = "policy inactive"
	ReasonLinkedEntryRequired   = "linked entry required"
	ReasonLinkedEntryNotAllowed = "linked entry not allowed for free-form policy"
	ReasonLinkedEntryNotFound   = "linked entry not found"
	ReasonLinkedEntryVoided     = "linked entry voided"
	ReasonNotEntryOwner         = "linked entry not owned by claimant"
	ReasonAmountRequired        = "requested amount required"
	ReasonAmountNotPositive     = "requested amount must be positive"
	ReasonAmountExceedsEntry    = "requested amount exceeds linked entry"
	ReasonIncidentInFuture      = "incident date in the future"
	ReasonFilingDeadlinePassed  = "filing deadline passed"
	ReasonClaimLimitReached     = "claim limit reached for period"
	ReasonDuplicate             = "duplicate"
	ReasonNotPending            = "not pending"
	ReasonNotApproved           = "not approved"
	ReasonPeriodCapExhausted    = "period cap exhausted"
	ReasonCapOverrideInvalid    = "cap override must be positive"
	ReasonDecisionInvalid       = "decision must be approve or reject"
)

// Claim is a reimbursement request filed against an enrollment.
type Claim struct {
	ClaimID         string           `json:"claimID"`
	Scope           TenantScope      `json:"scope"`
	EnrollmentID    string           `json:"enrollmentID"`
	PolicyID        string           `json:"policyID"`
	ActorID         string           `json:"actorID"`
	LinkedEntryID   *string          `json:"linkedEntryID,omitempty"`
	RequestedAmount *decimal.Decimal `json:"requestedAmount,omitempty"`
	IncidentDate    time.Time        `json:"incidentDate"`
	Description     string           `json:"description"`
	Status          ClaimStatus      `json:"status"`
	ApprovedAmount  *decimal.Decimal `json:"approvedAmount,omitempty"`
	RejectionReason *string          `json:"rejectionReason,omitempty"`
	FiledAt         time.Time        `json:"filedAt"`
	DecidedAt       *time.Time       `json:"decidedAt,omitempty"`
	DecidedBy       *string          `json:"decidedBy,omitempty"`
	PaidAt          *time.Time       `json:"paidAt,omitempty"`
	PayoutEntryID   *string          `json:"payoutEntryID,omitempty"`
}

// ClaimFilter narrows claim listings. Empty fields do not filter.
type ClaimFilter struct {
	ActorID      string
	EnrollmentID string
	Status       ClaimStatus
}
