package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-ledger.backend/internal/domain/entities"
	domainerrors "asset-ledger.backend/internal/domain/errors"
	"asset-ledger.backend/internal/usecases"
)

func newTransactionUsecase(walletRepo *MockWalletRepository, assetRepo *MockAssetRepository, txRepo *MockTransactionRepository, cache usecases.BalanceCache) *usecases.TransactionUsecase {
	return usecases.NewTransactionUsecase(walletRepo, assetRepo, txRepo, fakeUnitOfWork{}, cache)
}

func TestTransactionUsecase_CreateWithdrawal_NoAddressMatch(t *testing.T) {
	mockWalletRepo := new(MockWalletRepository)
	mockTxRepo := new(MockTransactionRepository)
	cache := newFakeBalanceCache()
	uc := newTransactionUsecase(mockWalletRepo, new(MockAssetRepository), mockTxRepo, cache)

	amount := decimal.RequireFromString("4")
	wallet := &entities.Wallet{ID: 1, UserID: 1, AssetID: 1, Address: "0xaaa", Amount: decimal.RequireFromString("10")}

	mockWalletRepo.On("GetFirstByUser", context.Background(), uint(1)).Return(wallet, nil).Once()
	mockWalletRepo.On("Debit", context.Background(), uint(1), amount).Return(nil).Once()
	mockTxRepo.On("Create", context.Background(), matchTransaction(entities.TransactionTypeWithdrawal, "0xbbb")).Return(nil).Once()
	mockWalletRepo.On("GetByAddress", context.Background(), "0xbbb").Return(nil, domainerrors.ErrNotFound).Once()

	txn, err := uc.CreateWithdrawal(context.Background(), &entities.WithdrawalInput{
		UserID:  1,
		AssetID: 1,
		Amount:  amount,
		Address: "0xbbb",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.TransactionTypeWithdrawal, txn.Type)
	assert.True(t, txn.UserID.Valid)
	assert.Equal(t, uint(1), txn.UserID.Uint)
	assert.Equal(t, "0xbbb", txn.Address)

	// no other wallet credited, debited wallet's balance entry dropped
	mockWalletRepo.AssertNotCalled(t, "Credit", context.Background(), uint(1), amount)
	assert.Equal(t, []string{"1:1"}, cache.invalidated)
	mockWalletRepo.AssertExpectations(t)
	mockTxRepo.AssertExpectations(t)
}

func TestTransactionUsecase_CreateWithdrawal_SelfReferentialAddress(t *testing.T) {
	mockWalletRepo := new(MockWalletRepository)
	mockTxRepo := new(MockTransactionRepository)
	uc := newTransactionUsecase(mockWalletRepo, new(MockAssetRepository), mockTxRepo, nil)

	amount := decimal.RequireFromString("4")
	wallet := &entities.Wallet{ID: 1, UserID: 1, AssetID: 1, Address: "0xaaa", Amount: decimal.RequireFromString("10")}

	mockWalletRepo.On("GetFirstByUser", context.Background(), uint(1)).Return(wallet, nil).Once()
	mockWalletRepo.On("Debit", context.Background(), uint(1), amount).Return(nil).Once()
	mockTxRepo.On("Create", context.Background(), matchTransaction(entities.TransactionTypeWithdrawal, "0xaaa")).Return(nil).Once()
	// the withdrawing wallet owns the destination address: debit then credit
	// by the same amount, net balance unchanged
	mockWalletRepo.On("GetByAddress", context.Background(), "0xaaa").Return(wallet, nil).Once()
	mockWalletRepo.On("Credit", context.Background(), uint(1), amount).Return(nil).Once()

	_, err := uc.CreateWithdrawal(context.Background(), &entities.WithdrawalInput{
		UserID:  1,
		AssetID: 1,
		Amount:  amount,
		Address: "0xaaa",
	})
	require.NoError(t, err)
	mockWalletRepo.AssertExpectations(t)
}

func TestTransactionUsecase_CreateWithdrawal_CreditsMatchingWalletOfOtherUser(t *testing.T) {
	mockWalletRepo := new(MockWalletRepository)
	mockTxRepo := new(MockTransactionRepository)
	cache := newFakeBalanceCache()
	uc := newTransactionUsecase(mockWalletRepo, new(MockAssetRepository), mockTxRepo, cache)

	amount := decimal.RequireFromString("4")
	source := &entities.Wallet{ID: 1, UserID: 1, AssetID: 1, Address: "0xaaa", Amount: decimal.RequireFromString("10")}
	// different user AND different asset: the credit still applies
	target := &entities.Wallet{ID: 2, UserID: 7, AssetID: 3, Address: "0xbbb", Amount: decimal.Zero}

	mockWalletRepo.On("GetFirstByUser", context.Background(), uint(1)).Return(source, nil).Once()
	mockWalletRepo.On("Debit", context.Background(), uint(1), amount).Return(nil).Once()
	mockTxRepo.On("Create", context.Background(), matchTransaction(entities.TransactionTypeWithdrawal, "0xbbb")).Return(nil).Once()
	mockWalletRepo.On("GetByAddress", context.Background(), "0xbbb").Return(target, nil).Once()
	mockWalletRepo.On("Credit", context.Background(), uint(2), amount).Return(nil).Once()

	_, err := uc.CreateWithdrawal(context.Background(), &entities.WithdrawalInput{
		UserID:  1,
		AssetID: 1,
		Amount:  amount,
		Address: "0xbbb",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1:1", "7:3"}, cache.invalidated)
	mockWalletRepo.AssertExpectations(t)
}

func TestTransactionUsecase_CreateWithdrawal_InsufficientFunds(t *testing.T) {
	mockWalletRepo := new(MockWalletRepository)
	mockTxRepo := new(MockTransactionRepository)
	uc := newTransactionUsecase(mockWalletRepo, new(MockAssetRepository), mockTxRepo, nil)

	wallet := &entities.Wallet{ID: 1, UserID: 1, AssetID: 1, Address: "0xaaa", Amount: decimal.RequireFromString("10")}
	mockWalletRepo.On("GetFirstByUser", context.Background(), uint(1)).Return(wallet, nil).Once()

	_, err := uc.CreateWithdrawal(context.Background(), &entities.WithdrawalInput{
		UserID:  1,
		AssetID: 1,
		Amount:  decimal.RequireFromString("10.01"),
		Address: "0xbbb",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)
	mockWalletRepo.AssertNotCalled(t, "Debit", context.Background(), uint(1), decimal.RequireFromString("10.01"))
	mockTxRepo.AssertNotCalled(t, "Create", context.Background(), matchTransaction(entities.TransactionTypeWithdrawal, "0xbbb"))
}

func TestTransactionUsecase_CreateWithdrawal_UserNotFound(t *testing.T) {
	mockWalletRepo := new(MockWalletRepository)
	mockTxRepo := new(MockTransactionRepository)
	uc := newTransactionUsecase(mockWalletRepo, new(MockAssetRepository), mockTxRepo, nil)

	mockWalletRepo.On("GetFirstByUser", context.Background(), uint(42)).Return(nil, domainerrors.ErrNotFound).Once()

	_, err := uc.CreateWithdrawal(context.Background(), &entities.WithdrawalInput{
		UserID:  42,
		AssetID: 1,
		Amount:  decimal.RequireFromString("1"),
		Address: "0xbbb",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	mockTxRepo.AssertNotCalled(t, "Create", context.Background(), matchTransaction(entities.TransactionTypeWithdrawal, "0xbbb"))
}

func TestTransactionUsecase_CreateWithdrawal_NonPositiveAmount(t *testing.T) {
	uc := newTransactionUsecase(new(MockWalletRepository), new(MockAssetRepository), new(MockTransactionRepository), nil)

	_, err := uc.CreateWithdrawal(context.Background(), &entities.WithdrawalInput{
		UserID:  1,
		AssetID: 1,
		Amount:  decimal.Zero,
		Address: "0xbbb",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	_, err = uc.CreateWithdrawal(context.Background(), &entities.WithdrawalInput{
		UserID:  1,
		AssetID: 1,
		Amount:  decimal.RequireFromString("-1"),
		Address: "0xbbb",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestTransactionUsecase_CreateWithdrawal_WalletLookupIgnoresAsset(t *testing.T) {
	mockWalletRepo := new(MockWalletRepository)
	mockTxRepo := new(MockTransactionRepository)
	uc := newTransactionUsecase(mockWalletRepo, new(MockAssetRepository), mockTxRepo, nil)

	amount := decimal.RequireFromString("1")
	// the user's first wallet holds asset 2; the request names asset 1.
	// The asset-2 wallet is still the one debited.
	wallet := &entities.Wallet{ID: 9, UserID: 1, AssetID: 2, Address: "0xaaa", Amount: decimal.RequireFromString("5")}

	mockWalletRepo.On("GetFirstByUser", context.Background(), uint(1)).Return(wallet, nil).Once()
	mockWalletRepo.On("Debit", context.Background(), uint(9), amount).Return(nil).Once()
	mockTxRepo.On("Create", context.Background(), matchTransaction(entities.TransactionTypeWithdrawal, "0xbbb")).Return(nil).Once()
	mockWalletRepo.On("GetByAddress", context.Background(), "0xbbb").Return(nil, domainerrors.ErrNotFound).Once()

	txn, err := uc.CreateWithdrawal(context.Background(), &entities.WithdrawalInput{
		UserID:  1,
		AssetID: 1,
		Amount:  amount,
		Address: "0xbbb",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), txn.AssetID, "transaction keeps the requested asset")
	mockWalletRepo.AssertExpectations(t)
}

func TestTransactionUsecase_CreateWithdrawal_CreateErrorAborts(t *testing.T) {
	mockWalletRepo := new(MockWalletRepository)
	mockTxRepo := new(MockTransactionRepository)
	cache := newFakeBalanceCache()
	uc := newTransactionUsecase(mockWalletRepo, new(MockAssetRepository), mockTxRepo, cache)

	amount := decimal.RequireFromString("4")
	wallet := &entities.Wallet{ID: 1, UserID: 1, AssetID: 1, Address: "0xaaa", Amount: decimal.RequireFromString("10")}
	dbErr := errors.New("insert failed")

	mockWalletRepo.On("GetFirstByUser", context.Background(), uint(1)).Return(wallet, nil).Once()
	mockWalletRepo.On("Debit", context.Background(), uint(1), amount).Return(nil).Once()
	mockTxRepo.On("Create", context.Background(), matchTransaction(entities.TransactionTypeWithdrawal, "0xbbb")).Return(dbErr).Once()

	_, err := uc.CreateWithdrawal(context.Background(), &entities.WithdrawalInput{
		UserID:  1,
		AssetID: 1,
		Amount:  amount,
		Address: "0xbbb",
	})
	assert.ErrorIs(t, err, dbErr)
	assert.Empty(t, cache.invalidated, "cache untouched when the unit of work fails")
}

func TestTransactionUsecase_CreateDeposit_CreditsMatchingWallet(t *testing.T) {
	mockWalletRepo := new(MockWalletRepository)
	mockAssetRepo := new(MockAssetRepository)
	mockTxRepo := new(MockTransactionRepository)
	cache := newFakeBalanceCache()
	uc := newTransactionUsecase(mockWalletRepo, mockAssetRepo, mockTxRepo, cache)

	amount := decimal.RequireFromString("0.01")
	target := &entities.Wallet{ID: 3, UserID: 2, AssetID: 1, Address: "0xccc", Amount: decimal.Zero}

	mockAssetRepo.On("GetByID", context.Background(), uint(1)).Return(&entities.Asset{ID: 1, Symbol: "BTC", Name: "Bitcoin"}, nil).Once()
	mockTxRepo.On("Create", context.Background(), matchTransaction(entities.TransactionTypeDeposit, "0xccc")).Return(nil).Once()
	mockWalletRepo.On("GetByAddress", context.Background(), "0xccc").Return(target, nil).Once()
	mockWalletRepo.On("Credit", context.Background(), uint(3), amount).Return(nil).Once()

	txn, err := uc.CreateDeposit(context.Background(), &entities.DepositInput{
		AssetID: 1,
		Amount:  amount,
		Address: "0xccc",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.TransactionTypeDeposit, txn.Type)
	assert.False(t, txn.UserID.Valid, "deposits carry no user")
	assert.Equal(t, []string{"2:1"}, cache.invalidated)
	mockWalletRepo.AssertExpectations(t)
	mockAssetRepo.AssertExpectations(t)
}

func TestTransactionUsecase_CreateDeposit_NoMatchLeavesWalletsUntouched(t *testing.T) {
	mockWalletRepo := new(MockWalletRepository)
	mockAssetRepo := new(MockAssetRepository)
	mockTxRepo := new(MockTransactionRepository)
	cache := newFakeBalanceCache()
	uc := newTransactionUsecase(mockWalletRepo, mockAssetRepo, mockTxRepo, cache)

	amount := decimal.RequireFromString("1")
	mockAssetRepo.On("GetByID", context.Background(), uint(1)).Return(&entities.Asset{ID: 1}, nil).Once()
	mockTxRepo.On("Create", context.Background(), matchTransaction(entities.TransactionTypeDeposit, "0xext")).Return(nil).Once()
	mockWalletRepo.On("GetByAddress", context.Background(), "0xext").Return(nil, domainerrors.ErrNotFound).Once()

	_, err := uc.CreateDeposit(context.Background(), &entities.DepositInput{
		AssetID: 1,
		Amount:  amount,
		Address: "0xext",
	})
	require.NoError(t, err)
	mockWalletRepo.AssertNotCalled(t, "Credit", context.Background(), uint(0), amount)
	assert.Empty(t, cache.invalidated)
}

func TestTransactionUsecase_CreateDeposit_AssetNotFound(t *testing.T) {
	mockWalletRepo := new(MockWalletRepository)
	mockAssetRepo := new(MockAssetRepository)
	mockTxRepo := new(MockTransactionRepository)
	uc := newTransactionUsecase(mockWalletRepo, mockAssetRepo, mockTxRepo, nil)

	mockAssetRepo.On("GetByID", context.Background(), uint(9)).Return(nil, domainerrors.ErrNotFound).Once()

	_, err := uc.CreateDeposit(context.Background(), &entities.DepositInput{
		AssetID: 9,
		Amount:  decimal.RequireFromString("1"),
		Address: "0xccc",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAssetNotFound)
	mockTxRepo.AssertNotCalled(t, "Create", context.Background(), matchTransaction(entities.TransactionTypeDeposit, "0xccc"))
}

func TestTransactionUsecase_CreateDeposit_NonPositiveAmount(t *testing.T) {
	uc := newTransactionUsecase(new(MockWalletRepository), new(MockAssetRepository), new(MockTransactionRepository), nil)

	_, err := uc.CreateDeposit(context.Background(), &entities.DepositInput{
		AssetID: 1,
		Amount:  decimal.Zero,
		Address: "0xccc",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}
