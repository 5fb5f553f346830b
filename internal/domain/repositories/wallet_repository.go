package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"asset-ledger.backend/internal/domain/entities"
)

// WalletRepository defines wallet data operations
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	// GetByUserAndAsset returns the wallet holding one asset for one user.
	GetByUserAndAsset(ctx context.Context, userID, assetID uint) (*entities.Wallet, error)
	// GetFirstByUser returns the first wallet for a user regardless of asset.
	// This mirrors the withdrawal lookup, which filters on user_id only.
	GetFirstByUser(ctx context.Context, userID uint) (*entities.Wallet, error)
	// GetByAddress returns the wallet owning an address, regardless of user or asset.
	GetByAddress(ctx context.Context, address string) (*entities.Wallet, error)
	// Debit subtracts amount from the wallet balance. The update is conditional
	// on amount being covered; ErrInsufficientFunds is returned otherwise.
	Debit(ctx context.Context, walletID uint, amount decimal.Decimal) error
	// Credit adds amount to the wallet balance.
	Credit(ctx context.Context, walletID uint, amount decimal.Decimal) error
}
