// Package seed provisions customers into the ledger and credential store.
// The demo set mirrors the sample data the presentation layer expects and is
// reproducible, which the test suites rely on.
package seed

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/retail-bank-ledger/internal/auth"
	"github.com/retail-bank-ledger/internal/ledger"
)

// AccountSeed describes one account to open for a customer.
type AccountSeed struct {
	Type                string
	Balance             decimal.Decimal
	InterestRatePercent decimal.Decimal
}

// CustomerSeed describes one customer to provision. The password is hashed
// into the credential store and discarded.
type CustomerSeed struct {
	Username    string
	Password    string
	AddressLine string
	Accounts    []AccountSeed
}

// DemoCustomers returns the built-in sample customer set. Account order
// matters: the first account listed becomes each customer's default transfer
// account.
func DemoCustomers() []CustomerSeed {
	return []CustomerSeed{
		{
			Username:    "Boris",
			Password:    "ABC",
			AddressLine: "10 london road",
			Accounts: []AccountSeed{
				{Type: "current", Balance: decimal.NewFromInt(2000), InterestRatePercent: decimal.Zero},
			},
		},
		{
			Username:    "Chloe",
			Password:    "1+x",
			AddressLine: "99 queens road",
			Accounts: []AccountSeed{
				{Type: "current", Balance: decimal.NewFromInt(1000), InterestRatePercent: decimal.RequireFromString("2.99")},
				{Type: "savings", Balance: decimal.NewFromInt(4000), InterestRatePercent: decimal.RequireFromString("2.99")},
			},
		},
		{
			Username:    "David",
			Password:    "aBC",
			AddressLine: "2 birmingham street",
			Accounts: []AccountSeed{
				{Type: "savings1", Balance: decimal.NewFromInt(200), InterestRatePercent: decimal.RequireFromString("0.99")},
				{Type: "savings2", Balance: decimal.NewFromInt(5000), InterestRatePercent: decimal.RequireFromString("4.99")},
			},
		},
	}
}

// Apply provisions the given customers: a ledger record, their accounts in
// declaration order, and a credential digest each. It stops at the first
// failure.
func Apply(l *ledger.Ledger, creds *auth.CredentialStore, customers []CustomerSeed) error {
	for _, c := range customers {
		if err := l.AddCustomer(c.Username, c.AddressLine); err != nil {
			return fmt.Errorf("seeding customer %s: %w", c.Username, err)
		}
		for _, a := range c.Accounts {
			if err := l.OpenAccount(c.Username, a.Type, a.Balance, a.InterestRatePercent); err != nil {
				return fmt.Errorf("seeding account %s/%s: %w", c.Username, a.Type, err)
			}
		}
		if err := creds.Put(c.Username, c.Password); err != nil {
			return fmt.Errorf("seeding credential for %s: %w", c.Username, err)
		}
	}
	return nil
}
