package ledger

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retail-bank-ledger/internal/domain/customer"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// newTestLedger seeds the demo customer set: Boris with one account, Chloe
// and David with two each.
func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l := New(slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, l.AddCustomer("Boris", "10 london road"))
	require.NoError(t, l.OpenAccount("Boris", "current", dec("2000"), dec("0")))

	require.NoError(t, l.AddCustomer("Chloe", "99 queens road"))
	require.NoError(t, l.OpenAccount("Chloe", "current", dec("1000"), dec("2.99")))
	require.NoError(t, l.OpenAccount("Chloe", "savings", dec("4000"), dec("2.99")))

	require.NoError(t, l.AddCustomer("David", "2 birmingham street"))
	require.NoError(t, l.OpenAccount("David", "savings1", dec("200"), dec("0.99")))
	require.NoError(t, l.OpenAccount("David", "savings2", dec("5000"), dec("4.99")))

	return l
}

func balance(t *testing.T, l *Ledger, username, accountType string) decimal.Decimal {
	t.Helper()
	view, ok := l.CustomerSummary(context.Background(), username)
	require.True(t, ok)
	for _, acc := range view.Accounts {
		if acc.Type == accountType {
			return acc.Balance
		}
	}
	t.Fatalf("account %s not found for %s", accountType, username)
	return decimal.Zero
}

func records(t *testing.T, l *Ledger, username, accountType string) []customer.TransactionRecord {
	t.Helper()
	view, ok := l.CustomerSummary(context.Background(), username)
	require.True(t, ok)
	for _, acc := range view.Accounts {
		if acc.Type == accountType {
			return acc.Records
		}
	}
	t.Fatalf("account %s not found for %s", accountType, username)
	return nil
}

func TestLedger_AddCustomer(t *testing.T) {
	l := newTestLedger(t)

	t.Run("DuplicateUsername", func(t *testing.T) {
		err := l.AddCustomer("Boris", "somewhere else")
		var dup ErrDuplicateUser
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "Boris", dup.Username)
	})

	t.Run("UsernamesAreCaseSensitive", func(t *testing.T) {
		require.NoError(t, l.AddCustomer("boris", "lowercase town"))
		assert.True(t, l.HasCustomer("boris"))
		assert.True(t, l.HasCustomer("Boris"))
	})

	t.Run("OpenAccountForUnknownUser", func(t *testing.T) {
		err := l.OpenAccount("Ghost", "current", dec("1"), decimal.Zero)
		var unknown ErrUnknownUser
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "Ghost", unknown.Username)
	})
}

func TestLedger_ApplyTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Withdraw", func(t *testing.T) {
		l := newTestLedger(t)

		conf, err := l.ApplyTransaction(ctx, "Boris", "current", dec("500"), customer.KindWithdrawal)

		require.NoError(t, err)
		assert.Contains(t, conf.Message, "withdrew")
		assert.True(t, balance(t, l, "Boris", "current").Equal(dec("1500")))

		recs := records(t, l, "Boris", "current")
		require.Len(t, recs, 1)
		assert.Equal(t, customer.KindWithdrawal, recs[0].Kind)
		assert.True(t, recs[0].Amount.Equal(dec("500")))
	})

	t.Run("Deposit", func(t *testing.T) {
		l := newTestLedger(t)

		conf, err := l.ApplyTransaction(ctx, "Chloe", "savings", dec("250.50"), customer.KindDeposit)

		require.NoError(t, err)
		assert.Contains(t, conf.Message, "deposited")
		assert.True(t, balance(t, l, "Chloe", "savings").Equal(dec("4250.50")))
	})

	t.Run("NegativeAmountRejectedWithoutRecord", func(t *testing.T) {
		l := newTestLedger(t)

		_, err := l.ApplyTransaction(ctx, "Boris", "current", dec("-5"), customer.KindDeposit)

		assert.ErrorIs(t, err, customer.ErrInvalidAmount)
		assert.True(t, balance(t, l, "Boris", "current").Equal(dec("2000")))
		assert.Empty(t, records(t, l, "Boris", "current"))
	})

	t.Run("UnknownUser", func(t *testing.T) {
		l := newTestLedger(t)
		_, err := l.ApplyTransaction(ctx, "Ghost", "current", dec("10"), customer.KindDeposit)
		var unknown ErrUnknownUser
		assert.ErrorAs(t, err, &unknown)
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		l := newTestLedger(t)
		_, err := l.ApplyTransaction(ctx, "Boris", "savings", dec("10"), customer.KindDeposit)
		var unknown ErrUnknownAccount
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "Boris", unknown.Username)
		assert.Equal(t, "savings", unknown.AccountType)
	})

	t.Run("AccountBeforeAmountInPreconditionOrder", func(t *testing.T) {
		l := newTestLedger(t)
		// Both the account and the amount are invalid; the account check wins.
		_, err := l.ApplyTransaction(ctx, "Boris", "savings", dec("-10"), customer.KindDeposit)
		var unknown ErrUnknownAccount
		assert.ErrorAs(t, err, &unknown)
	})

	t.Run("OverdraftRejected", func(t *testing.T) {
		l := newTestLedger(t)

		_, err := l.ApplyTransaction(ctx, "David", "savings1", dec("200.01"), customer.KindWithdrawal)

		assert.ErrorIs(t, err, customer.ErrInsufficientFunds)
		assert.True(t, balance(t, l, "David", "savings1").Equal(dec("200")))
	})

	t.Run("TransferKindsRejected", func(t *testing.T) {
		l := newTestLedger(t)
		_, err := l.ApplyTransaction(ctx, "Boris", "current", dec("10"), customer.KindTransferIn)
		var unsupported ErrUnsupportedKind
		assert.ErrorAs(t, err, &unsupported)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		l := newTestLedger(t)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := l.ApplyTransaction(cancelled, "Boris", "current", dec("10"), customer.KindDeposit)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLedger_Transfer(t *testing.T) {
	ctx := context.Background()

	t.Run("DebitsAndCreditsDefaultAccounts", func(t *testing.T) {
		l := newTestLedger(t)
		_, err := l.ApplyTransaction(ctx, "Boris", "current", dec("500"), customer.KindWithdrawal)
		require.NoError(t, err)

		conf, err := l.Transfer(ctx, "Boris", "Chloe", dec("100"))

		require.NoError(t, err)
		assert.Contains(t, conf.Message, "transferred")
		assert.True(t, balance(t, l, "Boris", "current").Equal(dec("1400")))
		// Chloe's first-declared account takes the credit, not her savings.
		assert.True(t, balance(t, l, "Chloe", "current").Equal(dec("1100")))
		assert.True(t, balance(t, l, "Chloe", "savings").Equal(dec("4000")))

		outRecs := records(t, l, "Boris", "current")
		require.Len(t, outRecs, 2) // withdrawal + transfer out
		assert.Equal(t, customer.KindTransferOut, outRecs[1].Kind)

		inRecs := records(t, l, "Chloe", "current")
		require.Len(t, inRecs, 1)
		assert.Equal(t, customer.KindTransferIn, inRecs[0].Kind)
		assert.Equal(t, outRecs[1].Timestamp, inRecs[0].Timestamp, "both records carry the commit timestamp")
	})

	t.Run("ConservesTotalBalance", func(t *testing.T) {
		l := newTestLedger(t)
		before := balance(t, l, "Boris", "current").Add(balance(t, l, "Chloe", "current"))

		_, err := l.Transfer(ctx, "Boris", "Chloe", dec("123.45"))
		require.NoError(t, err)

		after := balance(t, l, "Boris", "current").Add(balance(t, l, "Chloe", "current"))
		assert.True(t, before.Equal(after))
	})

	t.Run("UnknownSourceUser", func(t *testing.T) {
		l := newTestLedger(t)

		_, err := l.Transfer(ctx, "Ghost", "Boris", dec("10"))

		var unknown ErrUnknownUser
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "Ghost", unknown.Username)
		assert.True(t, balance(t, l, "Boris", "current").Equal(dec("2000")), "no state change on either side")
		assert.Empty(t, records(t, l, "Boris", "current"))
	})

	t.Run("UnknownDestinationUser", func(t *testing.T) {
		l := newTestLedger(t)
		_, err := l.Transfer(ctx, "Boris", "Ghost", dec("10"))
		var unknown ErrUnknownUser
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "Ghost", unknown.Username)
	})

	t.Run("ExistenceBeforeAmountInPreconditionOrder", func(t *testing.T) {
		l := newTestLedger(t)
		// Unknown user and invalid amount together: the user check wins.
		_, err := l.Transfer(ctx, "Ghost", "Boris", dec("-10"))
		var unknown ErrUnknownUser
		assert.ErrorAs(t, err, &unknown)
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		l := newTestLedger(t)
		for _, amount := range []decimal.Decimal{decimal.Zero, dec("-1")} {
			_, err := l.Transfer(ctx, "Boris", "Chloe", amount)
			assert.ErrorIs(t, err, customer.ErrInvalidAmount)
		}
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		l := newTestLedger(t)

		_, err := l.Transfer(ctx, "David", "Boris", dec("200.01")) // David's default holds 200

		assert.ErrorIs(t, err, customer.ErrInsufficientFunds)
		assert.True(t, balance(t, l, "David", "savings1").Equal(dec("200")))
		assert.True(t, balance(t, l, "Boris", "current").Equal(dec("2000")))
	})

	t.Run("SelfTransferNetZeroTwoRecords", func(t *testing.T) {
		l := newTestLedger(t)

		_, err := l.Transfer(ctx, "Boris", "Boris", dec("50"))

		require.NoError(t, err)
		assert.True(t, balance(t, l, "Boris", "current").Equal(dec("2000")))
		recs := records(t, l, "Boris", "current")
		require.Len(t, recs, 2)
		assert.Equal(t, customer.KindTransferOut, recs[0].Kind)
		assert.Equal(t, customer.KindTransferIn, recs[1].Kind)
	})
}

func TestLedger_Forecast(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	t.Run("ProjectsEveryAccount", func(t *testing.T) {
		forecast, err := l.Forecast(ctx, "David")

		require.NoError(t, err)
		require.Len(t, forecast, 2)
		assert.True(t, forecast["savings1"].ForecastedBalance.Equal(dec("201.98")))
		assert.True(t, forecast["savings2"].ForecastedBalance.Equal(dec("5249.5")))
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := l.Forecast(ctx, "Ghost")
		var unknown ErrUnknownUser
		assert.ErrorAs(t, err, &unknown)
	})

	t.Run("ReadOnly", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			_, err := l.Forecast(ctx, "David")
			require.NoError(t, err)
		}
		assert.True(t, balance(t, l, "David", "savings1").Equal(dec("200")))
		assert.Empty(t, records(t, l, "David", "savings1"))
	})
}

func TestLedger_CustomerSummary(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	t.Run("SnapshotContents", func(t *testing.T) {
		view, ok := l.CustomerSummary(ctx, "Chloe")

		require.True(t, ok)
		assert.Equal(t, "Chloe", view.Username)
		assert.Equal(t, "99 queens road", view.AddressLine)
		require.Len(t, view.Accounts, 2)
		assert.Equal(t, "current", view.Accounts[0].Type, "accounts come back in insertion order")
		assert.Equal(t, "savings", view.Accounts[1].Type)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, ok := l.CustomerSummary(ctx, "Ghost")
		assert.False(t, ok)
	})

	t.Run("SnapshotIsDetached", func(t *testing.T) {
		view, ok := l.CustomerSummary(ctx, "Boris")
		require.True(t, ok)

		// Mutating the snapshot must never leak into ledger state.
		view.Accounts[0].Balance = dec("999999")
		view.Accounts[0].Records = append(view.Accounts[0].Records, customer.TransactionRecord{})

		assert.True(t, balance(t, l, "Boris", "current").Equal(dec("2000")))
		assert.Empty(t, records(t, l, "Boris", "current"))
	})
}

// TestLedger_DepositWithdrawIdentity checks the arithmetic identity of spec
// operations: final balance = initial + sum(deposits) - sum(withdrawals).
func TestLedger_DepositWithdrawIdentity(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	deposits := []string{"100", "2.50", "47.25", "0.01"}
	withdrawals := []string{"30", "19.99", "500"}

	expected := dec("2000")
	for _, d := range deposits {
		_, err := l.ApplyTransaction(ctx, "Boris", "current", dec(d), customer.KindDeposit)
		require.NoError(t, err)
		expected = expected.Add(dec(d))
	}
	for _, w := range withdrawals {
		_, err := l.ApplyTransaction(ctx, "Boris", "current", dec(w), customer.KindWithdrawal)
		require.NoError(t, err)
		expected = expected.Sub(dec(w))
	}

	assert.True(t, balance(t, l, "Boris", "current").Equal(expected))
	assert.Len(t, records(t, l, "Boris", "current"), len(deposits)+len(withdrawals))
}

// TestLedger_ConcurrentCrossingTransfers drives opposing transfers over the
// same customer pair. Lexicographic lock ordering must prevent deadlock, and
// serialization must prevent lost updates: the pair's total is invariant.
func TestLedger_ConcurrentCrossingTransfers(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	total := balance(t, l, "Boris", "current").Add(balance(t, l, "Chloe", "current"))

	const n = 200
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := l.Transfer(ctx, "Boris", "Chloe", dec("1")); err != nil {
				t.Errorf("Boris->Chloe: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := l.Transfer(ctx, "Chloe", "Boris", dec("1")); err != nil {
				t.Errorf("Chloe->Boris: %v", err)
			}
		}()
	}
	wg.Wait()

	after := balance(t, l, "Boris", "current").Add(balance(t, l, "Chloe", "current"))
	assert.True(t, total.Equal(after), "pair total changed: %s -> %s", total, after)
	assert.False(t, balance(t, l, "Boris", "current").IsNegative())
	assert.False(t, balance(t, l, "Chloe", "current").IsNegative())
	assert.Len(t, records(t, l, "Boris", "current"), 2*n)
	assert.Len(t, records(t, l, "Chloe", "current"), 2*n)
}

// TestLedger_ConcurrentDisjointPairs runs transfers over disjoint customer
// pairs concurrently; the final state must match a sequential replay.
func TestLedger_ConcurrentDisjointPairs(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	require.NoError(t, l.AddCustomer("Erin", "5 park lane"))
	require.NoError(t, l.OpenAccount("Erin", "current", dec("300"), decimal.Zero))

	const n = 100
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := l.Transfer(ctx, "Boris", "Chloe", dec("2"))
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := l.Transfer(ctx, "David", "Erin", dec("1"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Sequential replay outcome.
	assert.True(t, balance(t, l, "Boris", "current").Equal(dec("1800")))
	assert.True(t, balance(t, l, "Chloe", "current").Equal(dec("1200")))
	assert.True(t, balance(t, l, "David", "savings1").Equal(dec("100")))
	assert.True(t, balance(t, l, "Erin", "current").Equal(dec("400")))
}

// TestLedger_ConcurrentSameCustomerSerializes hammers one account with
// deposits and withdrawals; the identity property must survive.
func TestLedger_ConcurrentSameCustomerSerializes(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)

	const n = 150
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := l.ApplyTransaction(ctx, "Boris", "current", dec("3"), customer.KindDeposit)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := l.ApplyTransaction(ctx, "Boris", "current", dec("1"), customer.KindWithdrawal)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// 2000 + 150*3 - 150*1
	assert.True(t, balance(t, l, "Boris", "current").Equal(dec("2300")))
	assert.Len(t, records(t, l, "Boris", "current"), 2*n)
}
