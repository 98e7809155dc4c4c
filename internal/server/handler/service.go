package handler

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/retail-bank-ledger/internal/auth"
	"github.com/retail-bank-ledger/internal/domain/customer"
	"github.com/retail-bank-ledger/internal/ledger"
	"github.com/retail-bank-ledger/internal/processor"
)

// LedgerService is the slice of the ledger the HTTP handlers depend on.
type LedgerService interface {
	AddCustomer(username, addressLine string) error
	OpenAccount(username, accountType string, balance, interestRatePercent decimal.Decimal) error
	CustomerSummary(ctx context.Context, username string) (*ledger.CustomerView, bool)
	Forecast(ctx context.Context, username string) (map[string]customer.ForecastEntry, error)
	ApplyTransaction(ctx context.Context, username, accountType string, amount decimal.Decimal, kind customer.TransactionKind) (ledger.Confirmation, error)
	Transfer(ctx context.Context, fromUser, toUser string, amount decimal.Decimal) (ledger.Confirmation, error)
}

// AuthService resolves credentials to a role.
type AuthService interface {
	Authenticate(username, password string) auth.Role
}

// CredentialWriter registers credentials for newly created customers.
type CredentialWriter interface {
	Put(username, password string) error
}

// BatchService executes a batch of operations concurrently.
type BatchService interface {
	Apply(ctx context.Context, ops []processor.OperationRequest) []processor.OperationResult
}
