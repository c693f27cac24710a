package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/claims_ledger/internal/core/ports/services"
	"github.com/SscSPs/claims_ledger/internal/dto"
	"github.com/SscSPs/claims_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests related to ledger entries.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers ledger routes under a scoped group.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/entries", h.recordEntry)
		ledger.GET("/entries", h.listEntries)
		ledger.GET("/entries/:entryID", h.getEntry)
		ledger.POST("/entries/:entryID/void", h.voidEntry)
		ledger.POST("/transfers", h.transfer)
		ledger.GET("/balances/:actorID", h.getBalance)
	}
}

// recordEntry godoc
// @Summary Record a ledger entry
// @Description Appends an entry to an actor's ledger. Owner only.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   entry body dto.RecordEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format"
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the scope"
// @Failure 422 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /scopes/{joinCode}/ledger/entries [post]
func (h *ledgerHandler) recordEntry(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}
	var req dto.RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	entry, err := h.ledgerService.RecordEntry(c.Request.Context(), scope.TenantScope, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to record entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Ledger entry recorded", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List ledger entries
// @Description Participants only see their own entries
// @Tags ledger
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   actorID query string false "Filter by actor"
// @Param   includeVoid query bool false "Include void entries"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 403 {object} dto.ErrorResponse "Listing another actor's entries"
// @Security BearerAuth
// @Router /scopes/{joinCode}/ledger/entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	page, err := h.ledgerService.ListEntries(c.Request.Context(), scope.TenantScope, userID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, page)
}

// getEntry godoc
// @Summary Get a ledger entry
// @Tags ledger
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 403 {object} dto.ErrorResponse "Entry belongs to another actor"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /scopes/{joinCode}/ledger/entries/{entryID} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.GetEntry(c.Request.Context(), scope.TenantScope, c.Param("entryID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to get entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// voidEntry godoc
// @Summary Void a ledger entry
// @Description Reverses the entry and rejects its pending claims in the same transaction. Owner only.
// @Tags ledger
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the scope"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Entry already void"
// @Security BearerAuth
// @Router /scopes/{joinCode}/ledger/entries/{entryID}/void [post]
func (h *ledgerHandler) voidEntry(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.VoidEntry(c.Request.Context(), scope.TenantScope, c.Param("entryID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to void entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// transfer godoc
// @Summary Transfer between participants
// @Description Writes a debit and a credit entry atomically
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format"
// @Failure 403 {object} dto.ErrorResponse "Caller may not move the sender's money"
// @Failure 422 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /scopes/{joinCode}/ledger/transfers [post]
func (h *ledgerHandler) transfer(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	legs, err := h.ledgerService.Transfer(c.Request.Context(), scope.TenantScope, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to transfer")
		return
	}
	c.JSON(http.StatusCreated, dto.TransferResponse{Entries: dto.ToEntryResponses(legs)})
}

// getBalance godoc
// @Summary Get an actor's balance
// @Tags ledger
// @Produce  json
// @Param   joinCode path string true "Join code"
// @Param   actorID path string true "Actor ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 403 {object} dto.ErrorResponse "Reading another actor's balance"
// @Security BearerAuth
// @Router /scopes/{joinCode}/ledger/balances/{actorID} [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	userID, scope, ok := callerAndScope(c)
	if !ok {
		return
	}
	actorID := c.Param("actorID")

	balance, err := h.ledgerService.Balance(c.Request.Context(), scope.TenantScope, actorID, userID)
	if err != nil {
		respondWithError(c, err, "Failed to get balance")
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{ActorID: actorID, Balance: balance})
}
