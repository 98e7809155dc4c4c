package customer

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// ForecastEntry is the projected state of one account after a single
// interest period.
type ForecastEntry struct {
	CurrentBalance      decimal.Decimal `json:"current_balance"`
	InterestRatePercent decimal.Decimal `json:"interest_rate_percent"`
	ForecastedBalance   decimal.Decimal `json:"forecasted_balance"`
}

// Forecast computes balance * (1 + rate/100) in decimal arithmetic. Pure;
// the account is not touched.
func (a *Account) Forecast() ForecastEntry {
	multiplier := decimal.New(1, 0).Add(a.InterestRatePercent.Div(oneHundred))
	return ForecastEntry{
		CurrentBalance:      a.Balance,
		InterestRatePercent: a.InterestRatePercent,
		ForecastedBalance:   a.Balance.Mul(multiplier),
	}
}

// Forecast projects every account of the customer, keyed by account type.
func (c *Customer) Forecast() map[string]ForecastEntry {
	out := make(map[string]ForecastEntry, len(c.accounts))
	for _, acc := range c.accounts {
		out[acc.Type] = acc.Forecast()
	}
	return out
}
