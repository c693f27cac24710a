package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/claims_ledger/internal/core/ports/services"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/SscSPs/claims_ledger/internal/utils"
	"github.com/google/uuid"
)

const (
	joinCodeLength = 8
	// No 0/O or 1/I so codes survive being read aloud.
	joinCodeAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	joinCodeMaxAttempts = 5
)

type scopeService struct {
	BaseService
	scopeRepo portsrepo.ScopeRepositoryFacade
	cache     portsrepo.ScopeCache
}

// NewScopeService creates the join code resolver. cache may be nil.
func NewScopeService(repo portsrepo.ScopeRepositoryFacade, cache portsrepo.ScopeCache, options ...ServiceOption) portssvc.ScopeSvcFacade {
	return &scopeService{
		BaseService: newBaseService(nil, options...),
		scopeRepo:   repo,
		cache:       cache,
	}
}

var _ portssvc.ScopeSvcFacade = (*scopeService)(nil)

// normalizeJoinCode makes resolution case-insensitive.
func normalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *scopeService) CreateScope(ctx context.Context, ownerID string, req dto.CreateScopeRequest) (*domain.Scope, error) {
	name := strings.TrimSpace(req.Name)
	var verrs apperrors.ValidationErrors
	if ownerID == "" {
		verrs.Add("ownerID", "owner is required")
	}
	if name == "" {
		verrs.Add("name", "name is required")
	}
	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	now := s.now()
	for attempt := 1; attempt <= joinCodeMaxAttempts; attempt++ {
		code, err := utils.GenerateSecureRandomString(joinCodeAlphabet, joinCodeLength)
		if err != nil {
			return nil, fmt.Errorf("generating join code: %w", err)
		}

		scope := domain.Scope{
			JoinCode: code,
			Name:     name,
			TenantScope: domain.TenantScope{
				OwnerID:     ownerID,
				SubGroupKey: uuid.NewString(),
			},
			IsActive: true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     ownerID,
				LastUpdatedAt: now,
				LastUpdatedBy: ownerID,
			},
		}

		err = s.scopeRepo.SaveScope(ctx, scope)
		if err == nil {
			s.LogInfo(ctx, "Scope created",
				slog.String("join_code", scope.JoinCode),
				slog.String("sub_group_key", scope.SubGroupKey))
			return &scope, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save scope")
			return nil, err
		}
		s.LogDebug(ctx, "Join code collision, regenerating", slog.Int("attempt", attempt))
	}

	return nil, apperrors.NewAppError(apperrors.ErrInternal, "could not allocate a unique join code", nil)
}

func (s *scopeService) ResolveScope(ctx context.Context, joinCode string) (*domain.Scope, error) {
	code := normalizeJoinCode(joinCode)
	if code == "" {
		return nil, apperrors.NewNotFoundError("scope")
	}

	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, code)
		if err != nil {
			s.LogWarn(ctx, "Scope cache read failed, falling back to store",
				slog.String("join_code", code),
				slog.String("error", err.Error()))
		} else if found {
			return cached, nil
		}
	}

	scope, err := s.scopeRepo.FindScopeByJoinCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("scope")
		}
		s.LogError(ctx, err, "Failed to resolve scope", slog.String("join_code", code))
		return nil, err
	}
	if !scope.IsActive {
		return nil, apperrors.NewNotFoundError("scope")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, scope); err != nil {
			s.LogWarn(ctx, "Scope cache write failed",
				slog.String("join_code", code),
				slog.String("error", err.Error()))
		}
	}
	return scope, nil
}

func (s *scopeService) ListScopes(ctx context.Context, ownerID string) ([]domain.Scope, error) {
	scopes, err := s.scopeRepo.ListScopesByOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list scopes", slog.String("owner_id", ownerID))
		return nil, err
	}
	return scopes, nil
}

func (s *scopeService) DeactivateScope(ctx context.Context, joinCode string, requestingUserID string) error {
	code := normalizeJoinCode(joinCode)
	scope, err := s.scopeRepo.FindScopeByJoinCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("scope")
		}
		return err
	}
	if err := s.requireOwner(ctx, scope.TenantScope, requestingUserID, "deactivate the scope"); err != nil {
		return err
	}
	if !scope.IsActive {
		return nil
	}

	if err := s.scopeRepo.DeactivateScope(ctx, code, requestingUserID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate scope", slog.String("join_code", code))
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, code); err != nil {
			s.LogWarn(ctx, "Scope cache eviction failed",
				slog.String("join_code", code),
				slog.String("error", err.Error()))
		}
	}
	s.LogInfo(ctx, "Scope deactivated", slog.String("join_code", code))
	return nil
}
