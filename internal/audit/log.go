// Package audit writes security-relevant events to a dedicated JSON log,
// separate from the application log, for forensic follow-up.
package audit

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/claims_ledger/internal/core/domain"
)

type ctxKey string

const requestIDKey ctxKey = "audit_request_id"

// Event names.
const (
	EventOwnershipMismatch = "claim.ownership_mismatch"
	EventPaidEntryVoided   = "ledger.paid_entry_voided"
)

// WithRequestID attaches the request identifier to the context for audit logging.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request id set by WithRequestID, if any.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// Event is one security-relevant occurrence.
type Event struct {
	Name         string
	Scope        domain.TenantScope
	ClaimID      string
	ClaimActorID string
	EntryID      string
	EntryActorID string
	DeciderID    string
}

// Recorder is what services depend on.
type Recorder interface {
	Record(ctx context.Context, event Event)
}

// SecurityLog is a Recorder writing one JSON line per event.
type SecurityLog struct {
	logger *slog.Logger
	now    func() time.Time
}

var _ Recorder = (*SecurityLog)(nil)

// NewSecurityLog writes events to w.
func NewSecurityLog(w io.Writer) *SecurityLog {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// The event carries its own UTC timestamp.
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return &SecurityLog{logger: slog.New(handler).With(slog.String("type", "audit")), now: time.Now}
}

// OpenSecurityLog appends to the file at path, or writes to stdout when path is empty.
// The returned close function releases the file.
func OpenSecurityLog(path string) (*SecurityLog, func() error, error) {
	if path == "" {
		return NewSecurityLog(os.Stdout), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return NewSecurityLog(f), f.Close, nil
}

// Record implements Recorder.
func (l *SecurityLog) Record(ctx context.Context, event Event) {
	attrs := []slog.Attr{
		slog.String("ts", l.now().UTC().Format(time.RFC3339Nano)),
		slog.String("owner_id", event.Scope.OwnerID),
		slog.String("sub_group_key", event.Scope.SubGroupKey),
	}
	optional := []struct{ key, value string }{
		{"claim_id", event.ClaimID},
		{"claim_actor_id", event.ClaimActorID},
		{"entry_id", event.EntryID},
		{"entry_actor_id", event.EntryActorID},
		{"decider_id", event.DeciderID},
		{"request_id", RequestIDFromContext(ctx)},
	}
	for _, f := range optional {
		if f.value != "" {
			attrs = append(attrs, slog.String(f.key, f.value))
		}
	}
	l.logger.LogAttrs(ctx, slog.LevelWarn, event.Name, attrs...)
}
