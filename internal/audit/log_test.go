package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityLogRecord(t *testing.T) {
	var buf bytes.Buffer
	log := NewSecurityLog(&buf)
	log.now = func() time.Time { return time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC) }

	ctx := WithRequestID(context.Background(), "req-123")
	log.Record(ctx, Event{
		Name:         EventOwnershipMismatch,
		Scope:        domain.TenantScope{OwnerID: "owner-1", SubGroupKey: "period-3"},
		ClaimID:      "claim-9",
		ClaimActorID: "alice",
		EntryActorID: "mallory",
		DeciderID:    "owner-1",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "audit", entry["type"])
	assert.Equal(t, EventOwnershipMismatch, entry["msg"])
	assert.Equal(t, "2025-05-01T08:00:00Z", entry["ts"])
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "claim-9", entry["claim_id"])
	assert.Equal(t, "alice", entry["claim_actor_id"])
	assert.Equal(t, "mallory", entry["entry_actor_id"])
	assert.Equal(t, "period-3", entry["sub_group_key"])
	assert.NotContains(t, entry, "entry_id")
	assert.NotContains(t, entry, "time")
}

func TestWithRequestIDIgnoresBlank(t *testing.T) {
	ctx := WithRequestID(context.Background(), "   ")
	assert.Empty(t, RequestIDFromContext(ctx))
}
