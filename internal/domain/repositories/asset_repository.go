package repositories

import (
	"context"

	"asset-ledger.backend/internal/domain/entities"
)

// AssetRepository defines asset data operations
type AssetRepository interface {
	Create(ctx context.Context, asset *entities.Asset) error
	GetByID(ctx context.Context, id uint) (*entities.Asset, error)
	GetBySymbol(ctx context.Context, symbol string) (*entities.Asset, error)
}
