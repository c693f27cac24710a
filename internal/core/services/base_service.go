package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/SscSPs/claims_ledger/internal/audit"
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/claims_ledger/internal/middleware"
	"github.com/SscSPs/claims_ledger/internal/platform/metrics"
	"github.com/cenkalti/backoff/v4"
)

const defaultTxMaxRetries = 3

// BaseService provides common functionality for all services
type BaseService struct {
	txManager    portsrepo.TransactionManager
	metrics      *metrics.Metrics
	auditor      audit.Recorder
	location     *time.Location
	clock        func() time.Time
	txMaxRetries uint64
}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithMetrics adds the Prometheus collectors services report to.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BaseService) {
		s.metrics = m
	}
}

// WithAuditRecorder adds the security audit sink.
func WithAuditRecorder(r audit.Recorder) ServiceOption {
	return func(s *BaseService) {
		s.auditor = r
	}
}

// WithAccountingLocation sets the timezone accounting periods are cut in.
func WithAccountingLocation(loc *time.Location) ServiceOption {
	return func(s *BaseService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithClock replaces time.Now. Tests use it to pin periods and waiting times.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithTxMaxRetries bounds how often a conflicting transaction is rerun.
func WithTxMaxRetries(n uint64) ServiceOption {
	return func(s *BaseService) {
		s.txMaxRetries = n
	}
}

func newBaseService(txManager portsrepo.TransactionManager, options ...ServiceOption) BaseService {
	base := BaseService{
		txManager:    txManager,
		location:     time.UTC,
		clock:        time.Now,
		txMaxRetries: defaultTxMaxRetries,
	}
	for _, option := range options {
		option(&base)
	}
	return base
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning message with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

func (s *BaseService) now() time.Time {
	return s.clock().UTC()
}

func (s *BaseService) currentPeriod(unit domain.PeriodUnit) domain.Period {
	return domain.PeriodFor(unit, s.now(), s.location)
}

// requireOwner allows the call only for the owner of scope.
func (s *BaseService) requireOwner(ctx context.Context, scope domain.TenantScope, userID, action string) error {
	if scope.IsOwner(userID) {
		return nil
	}
	s.LogWarn(ctx, "Owner-only action refused",
		slog.String("action", action),
		slog.String("user_id", userID))
	return apperrors.NewForbiddenError("only the scope owner may " + action)
}

// requireSelfOrOwner allows the call for actorID itself or the scope owner.
func (s *BaseService) requireSelfOrOwner(ctx context.Context, scope domain.TenantScope, userID, actorID, action string) error {
	if userID != "" && userID == actorID {
		return nil
	}
	return s.requireOwner(ctx, scope, userID, action)
}

// runInTx runs fn in one transaction and reruns the whole unit with
// exponential backoff while storage reports a retryable conflict.
func (s *BaseService) runInTx(ctx context.Context, fn func(ctx context.Context, uow portsrepo.UnitOfWork) error) error {
	attempt := func() error {
		err := s.txManager.WithTx(ctx, fn)
		if err == nil || errors.Is(err, apperrors.ErrRetryable) {
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 20 * time.Millisecond
	policy.MaxInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = 5 * time.Second

	notify := func(err error, wait time.Duration) {
		s.metrics.TxRetried()
		s.LogWarn(ctx, "Retrying transaction after storage conflict",
			slog.String("error", err.Error()),
			slog.Duration("wait", wait))
	}

	return backoff.RetryNotify(attempt,
		backoff.WithContext(backoff.WithMaxRetries(policy, s.txMaxRetries), ctx),
		notify)
}

func (s *BaseService) recordAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	s.auditor.Record(ctx, event)
}

// outcomeOf maps a service error onto a metrics outcome label.
func outcomeOf(err error) string {
	var rejected *apperrors.RejectedError
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, apperrors.ErrIntegrity):
		return metrics.OutcomeIntegrity
	case errors.Is(err, apperrors.ErrDuplicate):
		return metrics.OutcomeDuplicate
	case errors.As(err, &rejected):
		return metrics.OutcomeRejected
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrForbidden), errors.Is(err, apperrors.ErrAlreadyVoid):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
