package customer

import (
	"github.com/shopspring/decimal"
)

// Customer owns an ordered set of accounts. The first account opened is the
// customer's default account: transfers that do not name an account type
// debit and credit it. Usernames are case-sensitive and immutable.
type Customer struct {
	Username    string
	AddressLine string

	accounts []*Account          // insertion order, drives default-account policy
	index    map[string]*Account // account type -> account
}

// New creates a customer with no accounts.
func New(username, addressLine string) (*Customer, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	return &Customer{
		Username:    username,
		AddressLine: addressLine,
		index:       make(map[string]*Account),
	}, nil
}

// OpenAccount adds an account of the given type. Account types are unique
// within a customer; opening a duplicate fails.
func (c *Customer) OpenAccount(accountType string, balance, interestRatePercent decimal.Decimal) (*Account, error) {
	if _, exists := c.index[accountType]; exists {
		return nil, ErrDuplicateAccount
	}
	acc, err := newAccount(accountType, balance, interestRatePercent)
	if err != nil {
		return nil, err
	}
	c.accounts = append(c.accounts, acc)
	c.index[accountType] = acc
	return acc, nil
}

// Account returns the account with the given type, if present.
func (c *Customer) Account(accountType string) (*Account, bool) {
	acc, ok := c.index[accountType]
	return acc, ok
}

// DefaultAccount returns the first account by insertion order. This is the
// account transfers operate on when no account type is named.
func (c *Customer) DefaultAccount() (*Account, error) {
	if len(c.accounts) == 0 {
		return nil, ErrNoAccounts
	}
	return c.accounts[0], nil
}

// Accounts returns the customer's accounts in insertion order. The returned
// slice is a fresh copy but the elements are live; callers outside the
// ledger's locking must use Clone.
func (c *Customer) Accounts() []*Account {
	out := make([]*Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}
