package services

import (
	"context"
	"errors"
	"log/slog"
	"unicode/utf8"

	"github.com/SscSPs/claims_ledger/internal/apperrors"
	"github.com/SscSPs/claims_ledger/internal/audit"
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/claims_ledger/internal/core/ports/services"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerEntryRepositoryFacade
}

// NewLedgerService creates the ledger store service.
func NewLedgerService(repo portsrepo.LedgerEntryRepositoryFacade, txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: newBaseService(txManager, options...),
		ledgerRepo:  repo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func validateDescription(verrs *apperrors.ValidationErrors, description string) {
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		verrs.Add("description", domain.ReasonDescriptionTooLong)
	}
}

func (s *ledgerService) GetEntry(ctx context.Context, scope domain.TenantScope, entryID string, requestingUserID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, scope, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("ledger entry")
		}
		s.LogError(ctx, err, "Failed to get ledger entry", slog.String("entry_id", entryID))
		return nil, err
	}
	if err := s.requireSelfOrOwner(ctx, scope, requestingUserID, entry.ActorID, "read another actor's entries"); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, scope domain.TenantScope, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	actorID := params.ActorID
	if !scope.IsOwner(requestingUserID) {
		if actorID != "" && actorID != requestingUserID {
			return nil, apperrors.NewForbiddenError("participants may only list their own entries")
		}
		actorID = requestingUserID
	}

	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	entries, next, err := s.ledgerRepo.ListEntries(ctx, scope, actorID, params.IncludeVoid, params.Limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("actor_id", actorID))
		return nil, err
	}
	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: next,
	}, nil
}

func (s *ledgerService) Balance(ctx context.Context, scope domain.TenantScope, actorID string, requestingUserID string) (decimal.Decimal, error) {
	if err := s.requireSelfOrOwner(ctx, scope, requestingUserID, actorID, "read another actor's balance"); err != nil {
		return decimal.Zero, err
	}
	balance, err := s.ledgerRepo.SumBalance(ctx, scope, actorID)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute balance", slog.String("actor_id", actorID))
		return decimal.Zero, err
	}
	return balance, nil
}

func (s *ledgerService) RecordEntry(ctx context.Context, scope domain.TenantScope, req dto.RecordEntryRequest, requestingUserID string) (*domain.LedgerEntry, error) {
	if err := s.requireOwner(ctx, scope, requestingUserID, "record ledger entries"); err != nil {
		return nil, err
	}

	var verrs apperrors.ValidationErrors
	if req.ActorID == "" {
		verrs.Add("actorID", "actor is required")
	}
	if req.Amount.IsZero() {
		verrs.Add("amount", domain.ReasonAmountZero)
	}
	if !req.Kind.IsValid() {
		verrs.Add("kind", domain.ReasonUnknownKind)
	}
	validateDescription(&verrs, req.Description)
	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		Scope:       scope,
		ActorID:     req.ActorID,
		Amount:      req.Amount,
		Kind:        req.Kind,
		Description: req.Description,
		CreatedAt:   s.now(),
		CreatedBy:   requestingUserID,
	}
	if err := s.ledgerRepo.InsertEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record ledger entry", slog.String("actor_id", req.ActorID))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry recorded",
		slog.String("entry_id", entry.EntryID),
		slog.String("actor_id", entry.ActorID),
		slog.String("kind", string(entry.Kind)),
		slog.String("amount", entry.Amount.String()))
	return &entry, nil
}

func (s *ledgerService) VoidEntry(ctx context.Context, scope domain.TenantScope, entryID string, requestingUserID string) (*domain.LedgerEntry, error) {
	if err := s.requireOwner(ctx, scope, requestingUserID, "void ledger entries"); err != nil {
		s.metrics.EntryVoided(outcomeOf(err))
		return nil, err
	}

	var (
		voided    *domain.LedgerEntry
		rejected  []string
		paidClaim *domain.Claim
	)
	err := s.runInTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		voided, rejected, paidClaim = nil, nil, nil

		entry, err := uow.Ledger().FindEntryByIDForUpdate(ctx, scope, entryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("ledger entry")
			}
			return err
		}
		if entry.IsVoid {
			return apperrors.NewAppError(apperrors.ErrAlreadyVoid, "entry "+entryID+" is already void", nil)
		}

		now := s.now()
		if err := uow.Ledger().MarkEntryVoid(ctx, scope, entryID, requestingUserID, now); err != nil {
			return err
		}

		rejected, err = uow.Claims().RejectUnpaidClaimsForEntry(ctx, scope, entryID, domain.ReasonLinkedEntryVoided, requestingUserID, now)
		if err != nil {
			return err
		}

		linked, err := uow.Claims().FindClaimByLinkedEntry(ctx, scope, entryID)
		switch {
		case err == nil:
			if linked.Status == domain.ClaimPaid {
				paidClaim = linked
			}
		case !errors.Is(err, apperrors.ErrNotFound):
			return err
		}

		entry.IsVoid = true
		entry.VoidedAt = &now
		entry.VoidedBy = &requestingUserID
		voided = entry
		return nil
	})
	s.metrics.EntryVoided(outcomeOf(err))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrAlreadyVoid) {
			s.LogError(ctx, err, "Failed to void ledger entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	if paidClaim != nil {
		s.LogWarn(ctx, "Voided an entry whose claim was already paid",
			slog.String("entry_id", entryID),
			slog.String("claim_id", paidClaim.ClaimID))
		s.recordAudit(ctx, audit.Event{
			Name:         audit.EventPaidEntryVoided,
			Scope:        scope,
			ClaimID:      paidClaim.ClaimID,
			ClaimActorID: paidClaim.ActorID,
			EntryID:      entryID,
			EntryActorID: voided.ActorID,
			DeciderID:    requestingUserID,
		})
	}

	s.LogInfo(ctx, "Ledger entry voided",
		slog.String("entry_id", entryID),
		slog.Int("claims_rejected", len(rejected)))
	return voided, nil
}

func (s *ledgerService) Transfer(ctx context.Context, scope domain.TenantScope, req dto.TransferRequest, requestingUserID string) ([]domain.LedgerEntry, error) {
	if err := s.requireSelfOrOwner(ctx, scope, requestingUserID, req.FromActorID, "transfer on behalf of another actor"); err != nil {
		return nil, err
	}

	var verrs apperrors.ValidationErrors
	if req.FromActorID == "" || req.ToActorID == "" {
		verrs.Add("toActorID", "sender and receiver are required")
	} else if req.FromActorID == req.ToActorID {
		verrs.Add("toActorID", domain.ReasonSameActor)
	}
	if !req.Amount.IsPositive() {
		verrs.Add("amount", domain.ReasonTransferNotPositive)
	}
	validateDescription(&verrs, req.Description)
	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	var legs []domain.LedgerEntry
	err := s.runInTx(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		balance, err := uow.Ledger().SumBalance(ctx, scope, req.FromActorID)
		if err != nil {
			return err
		}
		if balance.LessThan(req.Amount) {
			var insufficient apperrors.ValidationErrors
			insufficient.Add("amount", domain.ReasonInsufficientBalance)
			return insufficient
		}

		now := s.now()
		legs = []domain.LedgerEntry{
			{
				EntryID:     uuid.NewString(),
				Scope:       scope,
				ActorID:     req.FromActorID,
				Amount:      req.Amount.Neg(),
				Kind:        domain.KindTransfer,
				Description: req.Description,
				CreatedAt:   now,
				CreatedBy:   requestingUserID,
			},
			{
				EntryID:     uuid.NewString(),
				Scope:       scope,
				ActorID:     req.ToActorID,
				Amount:      req.Amount,
				Kind:        domain.KindTransfer,
				Description: req.Description,
				CreatedAt:   now,
				CreatedBy:   requestingUserID,
			},
		}
		for _, leg := range legs {
			if err := uow.Ledger().InsertEntry(ctx, leg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Transfer failed",
				slog.String("from_actor_id", req.FromActorID),
				slog.String("to_actor_id", req.ToActorID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transfer recorded",
		slog.String("from_actor_id", req.FromActorID),
		slog.String("to_actor_id", req.ToActorID),
		slog.String("amount", req.Amount.String()))
	return legs, nil
}
