package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CustomerHandler handles HTTP requests for customer registration and views
type CustomerHandler struct {
	ledgerService LedgerService
	credentials   CredentialWriter
	logger        *slog.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(logger *slog.Logger, ledgerService LedgerService, credentials CredentialWriter) *CustomerHandler {
	return &CustomerHandler{
		ledgerService: ledgerService,
		credentials:   credentials,
		logger:        logger,
	}
}

// Create registers a new customer together with their credentials. The
// customer starts with no accounts; OpenAccount adds them.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.ledgerService.AddCustomer(req.Username, req.AddressLine); err != nil {
		respondLedgerError(c, h.logger, err)
		return
	}
	if err := h.credentials.Put(req.Username, req.Password); err != nil {
		// The customer record exists but cannot authenticate. Surface the
		// failure so the operator can retry the credential registration.
		h.logger.Error("Failed to store credentials", "username", req.Username, "error", err)
		RespondBadRequest(c, "Failed to store credentials: "+err.Error())
		return
	}

	h.logger.Info("Customer registered", "username", req.Username)
	RespondCreated(c, gin.H{"username": req.Username})
}

// OpenAccount opens a new account for an existing customer
func (h *CustomerHandler) OpenAccount(c *gin.Context) {
	username := c.Param("username")

	var req OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		RespondBadRequest(c, "Invalid balance: "+req.Balance)
		return
	}
	rate, err := decimal.NewFromString(req.InterestRatePercent)
	if err != nil {
		RespondBadRequest(c, "Invalid interest rate: "+req.InterestRatePercent)
		return
	}

	if err := h.ledgerService.OpenAccount(username, req.Type, balance, rate); err != nil {
		respondLedgerError(c, h.logger, err)
		return
	}

	h.logger.Info("Account opened", "username", username, "account_type", req.Type)
	RespondCreated(c, gin.H{"username": username, "type": req.Type})
}

// Summary returns a deep-copied snapshot of one customer's accounts and
// transaction history
func (h *CustomerHandler) Summary(c *gin.Context) {
	username := c.Param("username")

	view, ok := h.ledgerService.CustomerSummary(c.Request.Context(), username)
	if !ok {
		RespondNotFound(c, "Customer not found: "+username)
		return
	}

	RespondWithData(c, http.StatusOK, view)
}

// Forecast returns each account's balance projected one interest period ahead
func (h *CustomerHandler) Forecast(c *gin.Context) {
	username := c.Param("username")

	entries, err := h.ledgerService.Forecast(c.Request.Context(), username)
	if err != nil {
		respondLedgerError(c, h.logger, err)
		return
	}

	RespondOK(c, entries)
}
