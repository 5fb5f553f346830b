package usecases

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domainerrors "asset-ledger.backend/internal/domain/errors"
	"asset-ledger.backend/internal/domain/repositories"
)

// BalanceCache caches wallet balances keyed by (user, asset). Implementations
// must swallow infrastructure errors; a broken cache degrades to DB reads.
type BalanceCache interface {
	Get(ctx context.Context, userID, assetID uint) (decimal.Decimal, bool)
	Set(ctx context.Context, userID, assetID uint, amount decimal.Decimal)
	Invalidate(ctx context.Context, userID, assetID uint)
}

// BalanceUsecase handles balance lookups
type BalanceUsecase struct {
	walletRepo repositories.WalletRepository
	cache      BalanceCache
}

// NewBalanceUsecase creates a new balance usecase. cache may be nil.
func NewBalanceUsecase(walletRepo repositories.WalletRepository, cache BalanceCache) *BalanceUsecase {
	return &BalanceUsecase{walletRepo: walletRepo, cache: cache}
}

// GetBalance returns the amount held in the wallet for (user, asset).
// A wallet that exists but was never credited reports 0; a missing wallet
// is ErrWalletNotFound.
func (u *BalanceUsecase) GetBalance(ctx context.Context, userID, assetID uint) (decimal.Decimal, error) {
	if u.cache != nil {
		if amount, ok := u.cache.Get(ctx, userID, assetID); ok {
			return amount, nil
		}
	}

	wallet, err := u.walletRepo.GetByUserAndAsset(ctx, userID, assetID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return decimal.Zero, domainerrors.ErrWalletNotFound
		}
		return decimal.Zero, err
	}

	if u.cache != nil {
		u.cache.Set(ctx, userID, assetID, wallet.Amount)
	}
	return wallet.Amount, nil
}
