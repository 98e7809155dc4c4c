package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/retail-bank-ledger/internal/domain/customer"
	"github.com/retail-bank-ledger/internal/ledger"
)

// respondLedgerError maps core ledger errors onto HTTP statuses. Unknown
// principals are 404, rejected inputs are 400, insufficient funds and
// duplicates are 409, anything else is a 500.
func respondLedgerError(c *gin.Context, logger *slog.Logger, err error) {
	var unknownUser ledger.ErrUnknownUser
	var unknownAccount ledger.ErrUnknownAccount
	var duplicateUser ledger.ErrDuplicateUser
	var unsupportedKind ledger.ErrUnsupportedKind

	switch {
	case errors.As(err, &unknownUser):
		RespondNotFound(c, "Customer not found: "+unknownUser.Username)
	case errors.As(err, &unknownAccount):
		RespondNotFound(c, "Account not found: "+unknownAccount.AccountType)
	case errors.As(err, &duplicateUser):
		RespondConflict(c, "Customer already exists: "+duplicateUser.Username)
	case errors.As(err, &unsupportedKind):
		RespondBadRequest(c, err.Error())
	case errors.Is(err, customer.ErrInvalidAmount):
		RespondBadRequest(c, "Amount must be positive")
	case errors.Is(err, customer.ErrInsufficientFunds):
		RespondConflict(c, "Insufficient funds")
	case errors.Is(err, customer.ErrDuplicateAccount):
		RespondConflict(c, "Account already exists")
	case errors.Is(err, customer.ErrNegativeBalance),
		errors.Is(err, customer.ErrNegativeRate),
		errors.Is(err, customer.ErrEmptyAccountType),
		errors.Is(err, customer.ErrEmptyUsername),
		errors.Is(err, customer.ErrNoAccounts):
		RespondBadRequest(c, err.Error())
	default:
		logger.Error("Unexpected ledger error", "error", err)
		RespondInternalError(c)
	}
}
