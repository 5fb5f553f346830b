package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"asset-ledger.backend/internal/domain/entities"
	domainerrors "asset-ledger.backend/internal/domain/errors"
	"asset-ledger.backend/internal/infrastructure/models"
)

// WalletRepository implements wallet data operations
type WalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// Create creates a new wallet
func (r *WalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	m := &models.Wallet{
		UserID:    wallet.UserID,
		AssetID:   wallet.AssetID,
		Address:   wallet.Address,
		Amount:    wallet.Amount,
		UpdatedAt: time.Now(),
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	wallet.ID = m.ID
	wallet.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByUserAndAsset gets the wallet for one user and one asset
func (r *WalletRepository) GetByUserAndAsset(ctx context.Context, userID, assetID uint) (*entities.Wallet, error) {
	var m models.Wallet
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND asset_id = ?", userID, assetID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetFirstByUser gets the first wallet for a user, ignoring the asset.
// Ordered by id so the selection is at least deterministic for users
// holding several wallets.
func (r *WalletRepository) GetFirstByUser(ctx context.Context, userID uint) (*entities.Wallet, error) {
	var m models.Wallet
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByAddress gets the wallet owning an address, regardless of user or asset
func (r *WalletRepository) GetByAddress(ctx context.Context, address string) (*entities.Wallet, error) {
	var m models.Wallet
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("address = ?", address).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Debit subtracts amount from the wallet balance. The WHERE guard makes the
// update conditional on sufficient funds, so two concurrent withdrawals
// cannot drive the balance negative.
func (r *WalletRepository) Debit(ctx context.Context, walletID uint, amount decimal.Decimal) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ? AND amount >= ?", walletID, amount).
		Updates(map[string]interface{}{
			"amount":     gorm.Expr("amount - ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInsufficientFunds
	}
	return nil
}

// Credit adds amount to the wallet balance
func (r *WalletRepository) Credit(ctx context.Context, walletID uint, amount decimal.Decimal) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Updates(map[string]interface{}{
			"amount":     gorm.Expr("amount + ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *WalletRepository) toEntity(m *models.Wallet) *entities.Wallet {
	return &entities.Wallet{
		ID:        m.ID,
		UserID:    m.UserID,
		AssetID:   m.AssetID,
		Address:   m.Address,
		Amount:    m.Amount,
		UpdatedAt: m.UpdatedAt,
	}
}
