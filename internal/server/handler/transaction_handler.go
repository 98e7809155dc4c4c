package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/retail-bank-ledger/internal/domain/customer"
	"github.com/retail-bank-ledger/internal/ledger"
)

// TransactionHandler handles HTTP requests for deposits, withdrawals, and
// transfers
type TransactionHandler struct {
	ledgerService LedgerService
	logger        *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, ledgerService LedgerService) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// Create applies a deposit or withdrawal to one customer's account
func (h *TransactionHandler) Create(c *gin.Context) {
	username := c.Param("username")

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		RespondBadRequest(c, "Invalid amount: "+req.Amount)
		return
	}

	var kind customer.TransactionKind
	switch req.Type {
	case "DEPOSIT":
		kind = customer.KindDeposit
	case "WITHDRAWAL":
		kind = customer.KindWithdrawal
	}

	conf, err := h.ledgerService.ApplyTransaction(c.Request.Context(), username, req.AccountType, amount, kind)
	if err != nil {
		respondLedgerError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapConfirmation(conf))
}

// Transfer moves an amount between the default accounts of two customers
func (h *TransactionHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		RespondBadRequest(c, "Invalid amount: "+req.Amount)
		return
	}

	conf, err := h.ledgerService.Transfer(c.Request.Context(), req.FromUser, req.ToUser, amount)
	if err != nil {
		respondLedgerError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapConfirmation(conf))
}

// mapConfirmation maps a ledger confirmation to its response DTO
func mapConfirmation(conf ledger.Confirmation) ConfirmationResponse {
	return ConfirmationResponse{
		Message:     conf.Message,
		CommittedAt: conf.CommittedAt.Format(time.RFC3339Nano),
	}
}
