package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind classifies a balance-affecting event
type TransactionKind string

const (
	KindDeposit     TransactionKind = "DEPOSIT"
	KindWithdrawal  TransactionKind = "WITHDRAWAL"
	KindTransferIn  TransactionKind = "TRANSFER_IN"
	KindTransferOut TransactionKind = "TRANSFER_OUT"
)

// TransactionRecord is one immutable entry of an account's audit trail.
// Records are append-only; slice order is chronological order.
type TransactionRecord struct {
	ID        uuid.UUID       `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Kind      TransactionKind `json:"kind"`
	Amount    decimal.Decimal `json:"amount"` // Always positive; direction is carried by Kind
}

func newRecord(kind TransactionKind, amount decimal.Decimal, at time.Time) TransactionRecord {
	return TransactionRecord{
		ID:        uuid.New(),
		Timestamp: at,
		Kind:      kind,
		Amount:    amount,
	}
}
