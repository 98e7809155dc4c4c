package handler

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/retail-bank-ledger/internal/auth"
	"github.com/retail-bank-ledger/internal/domain/customer"
	"github.com/retail-bank-ledger/internal/ledger"
	"github.com/retail-bank-ledger/internal/processor"
)

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) AddCustomer(username, addressLine string) error {
	args := m.Called(username, addressLine)
	return args.Error(0)
}

func (m *MockLedgerService) OpenAccount(username, accountType string, balance, interestRatePercent decimal.Decimal) error {
	args := m.Called(username, accountType, balance, interestRatePercent)
	return args.Error(0)
}

func (m *MockLedgerService) CustomerSummary(ctx context.Context, username string) (*ledger.CustomerView, bool) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*ledger.CustomerView), args.Bool(1)
}

func (m *MockLedgerService) Forecast(ctx context.Context, username string) (map[string]customer.ForecastEntry, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]customer.ForecastEntry), args.Error(1)
}

func (m *MockLedgerService) ApplyTransaction(ctx context.Context, username, accountType string, amount decimal.Decimal, kind customer.TransactionKind) (ledger.Confirmation, error) {
	args := m.Called(ctx, username, accountType, amount, kind)
	return args.Get(0).(ledger.Confirmation), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, fromUser, toUser string, amount decimal.Decimal) (ledger.Confirmation, error) {
	args := m.Called(ctx, fromUser, toUser, amount)
	return args.Get(0).(ledger.Confirmation), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(username, password string) auth.Role {
	args := m.Called(username, password)
	return args.Get(0).(auth.Role)
}

type MockCredentialWriter struct {
	mock.Mock
}

func (m *MockCredentialWriter) Put(username, password string) error {
	args := m.Called(username, password)
	return args.Error(0)
}

type MockBatchService struct {
	mock.Mock
}

func (m *MockBatchService) Apply(ctx context.Context, ops []processor.OperationRequest) []processor.OperationResult {
	args := m.Called(ctx, ops)
	return args.Get(0).([]processor.OperationResult)
}
