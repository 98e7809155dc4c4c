package ledger

import (
	"context"

	"github.com/retail-bank-ledger/internal/domain/customer"
)

// CustomerView is an immutable snapshot of one customer: address, every
// account with its balance and interest rate, and the full transaction
// history. Credentials are not part of the ledger and can never appear here.
type CustomerView struct {
	Username    string             `json:"username"`
	AddressLine string             `json:"address_line"`
	Accounts    []customer.Account `json:"accounts"` // insertion order
}

// CustomerSummary returns a deep-copied snapshot of username's state, or
// false if the customer is unknown. Mutating the snapshot never affects the
// ledger.
func (l *Ledger) CustomerSummary(ctx context.Context, username string) (*CustomerView, bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	e, ok := l.lookup(username)
	if !ok {
		return nil, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	accounts := e.cust.Accounts()
	view := &CustomerView{
		Username:    e.cust.Username,
		AddressLine: e.cust.AddressLine,
		Accounts:    make([]customer.Account, 0, len(accounts)),
	}
	for _, acc := range accounts {
		view.Accounts = append(view.Accounts, *acc.Clone())
	}
	return view, true
}
