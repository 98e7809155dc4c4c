// Package ledger is the authoritative in-memory store of customers, accounts
// and transaction history. It owns every customer record exclusively: all
// reads hand out deep copies, and every mutating operation validates all of
// its preconditions before touching any state, so partial failure cannot
// occur. Operations on disjoint customers run concurrently; operations on the
// same customer are serialized by a per-customer mutex.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retail-bank-ledger/internal/domain/customer"
)

// Confirmation is the success result of a mutating operation.
type Confirmation struct {
	Message     string    `json:"message"`
	CommittedAt time.Time `json:"committed_at"`
}

// entry pairs a customer record with the mutex serializing access to it.
type entry struct {
	mu   sync.Mutex
	cust *customer.Customer
}

// Ledger holds the customer registry. The registry mutex only guards the map
// itself; customer state is guarded by the per-customer mutex, so operations
// touching disjoint customers do not serialize against each other.
type Ledger struct {
	mu        sync.RWMutex
	customers map[string]*entry
	logger    *slog.Logger
}

// New creates an empty ledger.
func New(logger *slog.Logger) *Ledger {
	return &Ledger{
		customers: make(map[string]*entry),
		logger:    logger,
	}
}

// AddCustomer registers a new customer record. Usernames are unique and
// case-sensitive.
func (l *Ledger) AddCustomer(username, addressLine string) error {
	cust, err := customer.New(username, addressLine)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.customers[username]; exists {
		return ErrDuplicateUser{Username: username}
	}
	l.customers[username] = &entry{cust: cust}
	return nil
}

// OpenAccount adds an account of the given type to an existing customer.
// Insertion order is preserved; the first account opened becomes the
// customer's default transfer account.
func (l *Ledger) OpenAccount(username, accountType string, balance, interestRatePercent decimal.Decimal) error {
	e, ok := l.lookup(username)
	if !ok {
		return ErrUnknownUser{Username: username}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	_, err := e.cust.OpenAccount(accountType, balance, interestRatePercent)
	return err
}

// HasCustomer reports whether a customer record exists for username. It
// satisfies auth.CustomerDirectory.
func (l *Ledger) HasCustomer(username string) bool {
	_, ok := l.lookup(username)
	return ok
}

// Transfer atomically moves amount from the default account of fromUser to
// the default account of toUser. Preconditions are checked in order, first
// failure wins: both users exist, amount is positive, the source default
// account covers the amount. Both balance updates and both audit records
// commit together with the same timestamp, or nothing changes.
//
// A self-transfer is permitted: the single account is debited and credited by
// the same amount (net zero) and still receives both records, keeping the
// audit trail symmetric with a two-party transfer.
func (l *Ledger) Transfer(ctx context.Context, fromUser, toUser string, amount decimal.Decimal) (Confirmation, error) {
	if err := ctx.Err(); err != nil {
		return Confirmation{}, err
	}

	src, ok := l.lookup(fromUser)
	if !ok {
		return Confirmation{}, ErrUnknownUser{Username: fromUser}
	}
	dst, ok := l.lookup(toUser)
	if !ok {
		return Confirmation{}, ErrUnknownUser{Username: toUser}
	}
	if !amount.IsPositive() {
		return Confirmation{}, customer.ErrInvalidAmount
	}

	lockPair(fromUser, src, toUser, dst)
	defer unlockPair(fromUser, src, toUser, dst)

	srcAccount, err := src.cust.DefaultAccount()
	if err != nil {
		return Confirmation{}, err
	}
	dstAccount, err := dst.cust.DefaultAccount()
	if err != nil {
		return Confirmation{}, err
	}
	if !srcAccount.CanDebit(amount) {
		return Confirmation{}, customer.ErrInsufficientFunds
	}

	// Both calls are infallible here: amount positivity and source funds
	// were checked above, and both locks are held.
	now := time.Now()
	if err := srcAccount.Debit(amount, customer.KindTransferOut, now); err != nil {
		return Confirmation{}, err
	}
	if err := dstAccount.Credit(amount, customer.KindTransferIn, now); err != nil {
		return Confirmation{}, err
	}

	l.logger.Info("transfer committed",
		"from", fromUser,
		"to", toUser,
		"amount", amount.String(),
	)
	return Confirmation{
		Message:     fmt.Sprintf("transferred %s from %s to %s", amount.StringFixed(2), fromUser, toUser),
		CommittedAt: now,
	}, nil
}

// ApplyTransaction applies a deposit or withdrawal of amount to the named
// account of username. Preconditions are checked in order: user exists,
// account exists, amount is positive, and (for withdrawals) funds are
// sufficient. Exactly one audit record is appended on success.
func (l *Ledger) ApplyTransaction(ctx context.Context, username, accountType string, amount decimal.Decimal, kind customer.TransactionKind) (Confirmation, error) {
	if err := ctx.Err(); err != nil {
		return Confirmation{}, err
	}
	if kind != customer.KindDeposit && kind != customer.KindWithdrawal {
		return Confirmation{}, ErrUnsupportedKind{Kind: string(kind)}
	}

	e, ok := l.lookup(username)
	if !ok {
		return Confirmation{}, ErrUnknownUser{Username: username}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	account, ok := e.cust.Account(accountType)
	if !ok {
		return Confirmation{}, ErrUnknownAccount{Username: username, AccountType: accountType}
	}

	now := time.Now()
	var verb string
	switch kind {
	case customer.KindDeposit:
		if err := account.Credit(amount, customer.KindDeposit, now); err != nil {
			return Confirmation{}, err
		}
		verb = "deposited"
	case customer.KindWithdrawal:
		if err := account.Debit(amount, customer.KindWithdrawal, now); err != nil {
			return Confirmation{}, err
		}
		verb = "withdrew"
	}

	l.logger.Info("transaction committed",
		"user", username,
		"account", accountType,
		"kind", string(kind),
		"amount", amount.String(),
	)
	return Confirmation{
		Message:     fmt.Sprintf("successfully %s %s", verb, amount.StringFixed(2)),
		CommittedAt: now,
	}, nil
}

// Forecast projects every account of username one interest period ahead,
// keyed by account type. Read-only: no balances move and no records are
// appended.
func (l *Ledger) Forecast(ctx context.Context, username string) (map[string]customer.ForecastEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, ok := l.lookup(username)
	if !ok {
		return nil, ErrUnknownUser{Username: username}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cust.Forecast(), nil
}

// lookup fetches the registry entry for username under the registry read
// lock.
func (l *Ledger) lookup(username string) (*entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.customers[username]
	return e, ok
}

// lockPair acquires both customer mutexes in lexicographic username order so
// two crossing transfers over the same pair cannot deadlock. A self-transfer
// locks once.
func lockPair(nameA string, a *entry, nameB string, b *entry) {
	switch {
	case a == b:
		a.mu.Lock()
	case nameA < nameB:
		a.mu.Lock()
		b.mu.Lock()
	default:
		b.mu.Lock()
		a.mu.Lock()
	}
}

func unlockPair(nameA string, a *entry, nameB string, b *entry) {
	if a == b {
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()
	b.mu.Unlock()
}
