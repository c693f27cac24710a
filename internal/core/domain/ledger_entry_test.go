package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedgerEntry_ReimbursableAmount(t *testing.T) {
	purchase := LedgerEntry{Amount: decimal.RequireFromString("-30.10")}
	refund := LedgerEntry{Amount: decimal.RequireFromString("30.10")}
	assert.True(t, decimal.RequireFromString("30.10").Equal(purchase.ReimbursableAmount()))
	assert.True(t, purchase.ReimbursableAmount().Equal(refund.ReimbursableAmount()))
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, KindPremium.IsValid())
	assert.False(t, EntryKind("gift").IsValid())
	assert.True(t, ClaimPaid.IsValid())
	assert.False(t, ClaimStatus("void").IsValid())
	assert.True(t, DecisionReject.IsValid())
	assert.False(t, Decision("maybe").IsValid())
	assert.True(t, ClaimTypeFreeForm.IsValid())
	assert.False(t, ClaimType("").IsValid())
}

func TestTenantScope_IsOwner(t *testing.T) {
	s := TenantScope{OwnerID: "owner-1", SubGroupKey: "period-3"}
	assert.True(t, s.IsOwner("owner-1"))
	assert.False(t, s.IsOwner("student-1"))
	assert.False(t, s.IsZero())
	assert.True(t, TenantScope{}.IsZero())
}
