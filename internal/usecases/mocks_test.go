package usecases_test

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"asset-ledger.backend/internal/domain/entities"
)

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetByUserAndAsset(ctx context.Context, userID, assetID uint) (*entities.Wallet, error) {
	args := m.Called(ctx, userID, assetID)
	if w, ok := args.Get(0).(*entities.Wallet); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWalletRepository) GetFirstByUser(ctx context.Context, userID uint) (*entities.Wallet, error) {
	args := m.Called(ctx, userID)
	if w, ok := args.Get(0).(*entities.Wallet); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWalletRepository) GetByAddress(ctx context.Context, address string) (*entities.Wallet, error) {
	args := m.Called(ctx, address)
	if w, ok := args.Get(0).(*entities.Wallet); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWalletRepository) Debit(ctx context.Context, walletID uint, amount decimal.Decimal) error {
	args := m.Called(ctx, walletID, amount)
	return args.Error(0)
}

func (m *MockWalletRepository) Credit(ctx context.Context, walletID uint, amount decimal.Decimal) error {
	args := m.Called(ctx, walletID, amount)
	return args.Error(0)
}

type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *entities.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id uint) (*entities.Asset, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*entities.Asset); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAssetRepository) GetBySymbol(ctx context.Context, symbol string) (*entities.Asset, error) {
	args := m.Called(ctx, symbol)
	if a, ok := args.Get(0).(*entities.Asset); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *entities.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uint) (*entities.Transaction, error) {
	args := m.Called(ctx, id)
	if tx, ok := args.Get(0).(*entities.Transaction); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

// matchTransaction matches a ledger entry by type and address.
func matchTransaction(txType entities.TransactionType, address string) interface{} {
	return mock.MatchedBy(func(txn *entities.Transaction) bool {
		return txn.Type == txType && txn.Address == address
	})
}

// fakeUnitOfWork runs the function directly; transactional behavior is
// covered by the repository-level tests.
type fakeUnitOfWork struct{}

func (fakeUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeBalanceCache is a map-backed cache recording invalidations.
type fakeBalanceCache struct {
	entries     map[string]decimal.Decimal
	invalidated []string
}

func newFakeBalanceCache() *fakeBalanceCache {
	return &fakeBalanceCache{entries: map[string]decimal.Decimal{}}
}

func cacheKey(userID, assetID uint) string {
	return fmt.Sprintf("%d:%d", userID, assetID)
}

func (c *fakeBalanceCache) Get(_ context.Context, userID, assetID uint) (decimal.Decimal, bool) {
	amount, ok := c.entries[cacheKey(userID, assetID)]
	return amount, ok
}

func (c *fakeBalanceCache) Set(_ context.Context, userID, assetID uint, amount decimal.Decimal) {
	c.entries[cacheKey(userID, assetID)] = amount
}

func (c *fakeBalanceCache) Invalidate(_ context.Context, userID, assetID uint) {
	key := cacheKey(userID, assetID)
	delete(c.entries, key)
	c.invalidated = append(c.invalidated, key)
}
