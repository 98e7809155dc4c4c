// Package processor applies batches of ledger operations through a bounded
// worker pool. Each operation is an independent ledger call; the ledger's own
// locking provides per-customer ordering, so a batch touching disjoint
// customers fans out across workers while operations on the same customer
// serialize.
package processor

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"

	"github.com/retail-bank-ledger/internal/domain/customer"
	"github.com/retail-bank-ledger/internal/ledger"
)

// OperationType names a batchable ledger operation
type OperationType string

const (
	OpDeposit  OperationType = "DEPOSIT"
	OpWithdraw OperationType = "WITHDRAWAL"
	OpTransfer OperationType = "TRANSFER"
)

var ErrUnknownOperation = errors.New("unknown operation type")

// OperationRequest describes one operation in a batch. Username and
// AccountType apply to deposits and withdrawals; FromUser and ToUser apply to
// transfers.
type OperationRequest struct {
	ID          uuid.UUID       `json:"id"`
	Type        OperationType   `json:"type"`
	Username    string          `json:"username,omitempty"`
	AccountType string          `json:"account_type,omitempty"`
	FromUser    string          `json:"from_user,omitempty"`
	ToUser      string          `json:"to_user,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// OperationResult reports the outcome of one operation. Exactly one of
// Confirmation and Err is meaningful.
type OperationResult struct {
	ID           uuid.UUID
	Confirmation ledger.Confirmation
	Err          error
}

// BatchProcessor fans a batch of operations out over an ants worker pool.
type BatchProcessor struct {
	ledger *ledger.Ledger
	pool   *ants.Pool
	logger *slog.Logger
}

// NewBatchProcessor creates a processor with the given pool size.
func NewBatchProcessor(l *ledger.Ledger, size int, logger *slog.Logger) (*BatchProcessor, error) {
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	return &BatchProcessor{
		ledger: l,
		pool:   pool,
		logger: logger,
	}, nil
}

// Apply runs every operation in the batch and returns results in input
// order. It blocks until the whole batch has settled; individual failures are
// reported per result, never as a batch failure.
func (p *BatchProcessor) Apply(ctx context.Context, ops []OperationRequest) []OperationResult {
	results := make([]OperationResult, len(ops))

	var wg sync.WaitGroup
	for i := range ops {
		i := i
		op := ops[i]
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			results[i] = p.run(ctx, op)
		})
		if err != nil {
			// Pool rejected the task (released or overloaded); settle the
			// slot here instead of leaving it pending.
			wg.Done()
			results[i] = OperationResult{ID: op.ID, Err: err}
			p.logger.Error("failed to submit operation to worker pool",
				"operation_id", op.ID.String(),
				"error", err,
			)
		}
	}
	wg.Wait()

	return results
}

// run dispatches one operation to the matching ledger call.
func (p *BatchProcessor) run(ctx context.Context, op OperationRequest) OperationResult {
	var (
		conf ledger.Confirmation
		err  error
	)
	switch op.Type {
	case OpDeposit:
		conf, err = p.ledger.ApplyTransaction(ctx, op.Username, op.AccountType, op.Amount, customer.KindDeposit)
	case OpWithdraw:
		conf, err = p.ledger.ApplyTransaction(ctx, op.Username, op.AccountType, op.Amount, customer.KindWithdrawal)
	case OpTransfer:
		conf, err = p.ledger.Transfer(ctx, op.FromUser, op.ToUser, op.Amount)
	default:
		err = ErrUnknownOperation
	}
	return OperationResult{ID: op.ID, Confirmation: conf, Err: err}
}

// Shutdown releases the worker pool.
func (p *BatchProcessor) Shutdown() {
	p.logger.Info("shutting down batch processor", "running_workers", p.pool.Running())
	p.pool.Release()
}

// Running returns the number of busy workers.
func (p *BatchProcessor) Running() int {
	return p.pool.Running()
}

// Capacity returns the worker pool capacity.
func (p *BatchProcessor) Capacity() int {
	return p.pool.Cap()
}
