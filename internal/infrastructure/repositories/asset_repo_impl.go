package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"asset-ledger.backend/internal/domain/entities"
	domainerrors "asset-ledger.backend/internal/domain/errors"
	"asset-ledger.backend/internal/infrastructure/models"
)

// AssetRepository implements asset data operations
type AssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create creates a new asset
func (r *AssetRepository) Create(ctx context.Context, asset *entities.Asset) error {
	m := &models.Asset{
		Symbol:    asset.Symbol,
		Name:      asset.Name,
		CreatedAt: time.Now(),
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	asset.ID = m.ID
	asset.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets an asset by ID
func (r *AssetRepository) GetByID(ctx context.Context, id uint) (*entities.Asset, error) {
	var m models.Asset
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetBySymbol gets an asset by symbol
func (r *AssetRepository) GetBySymbol(ctx context.Context, symbol string) (*entities.Asset, error) {
	var m models.Asset
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("symbol = ?", symbol).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *AssetRepository) toEntity(m *models.Asset) *entities.Asset {
	return &entities.Asset{
		ID:        m.ID,
		Symbol:    m.Symbol,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}
