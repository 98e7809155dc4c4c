package customer

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNegativeBalance   = errors.New("initial balance cannot be negative")
	ErrNegativeRate      = errors.New("interest rate cannot be negative")
	ErrEmptyAccountType  = errors.New("account type cannot be empty")
	ErrEmptyUsername     = errors.New("username cannot be empty")
	ErrDuplicateAccount  = errors.New("account type already exists for customer")
	ErrNoAccounts        = errors.New("customer has no accounts")
)

// Account is a named balance-bearing sub-record of a customer. The account
// type is unique within its owning customer and never renamed. Balance and
// interest arithmetic use decimal values to avoid floating-point drift.
type Account struct {
	Type                string              `json:"type"`
	Balance             decimal.Decimal     `json:"balance"`
	InterestRatePercent decimal.Decimal     `json:"interest_rate_percent"`
	Records             []TransactionRecord `json:"records"`
}

// newAccount validates and builds an account. Only the owning Customer opens
// accounts so that insertion order is preserved.
func newAccount(accountType string, balance, interestRatePercent decimal.Decimal) (*Account, error) {
	if accountType == "" {
		return nil, ErrEmptyAccountType
	}
	if balance.IsNegative() {
		return nil, ErrNegativeBalance
	}
	if interestRatePercent.IsNegative() {
		return nil, ErrNegativeRate
	}
	return &Account{
		Type:                accountType,
		Balance:             balance,
		InterestRatePercent: interestRatePercent,
	}, nil
}

// Credit adds amount to the balance and appends a record of the given kind.
// The amount must be strictly positive; nothing changes on failure.
func (a *Account) Credit(amount decimal.Decimal, kind TransactionKind, at time.Time) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	a.Records = append(a.Records, newRecord(kind, amount, at))
	return nil
}

// Debit subtracts amount from the balance and appends a record of the given
// kind. Fails without mutation if the amount is not positive or exceeds the
// balance, so the balance never goes negative.
func (a *Account) Debit(amount decimal.Decimal, kind TransactionKind, at time.Time) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	a.Records = append(a.Records, newRecord(kind, amount, at))
	return nil
}

// CanDebit reports whether the balance covers a debit of amount.
func (a *Account) CanDebit(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// Clone returns a deep copy safe to hand outside the ledger.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Records = make([]TransactionRecord, len(a.Records))
	copy(cp.Records, a.Records)
	return &cp
}
