package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"asset-ledger.backend/internal/domain/entities"
	domainerrors "asset-ledger.backend/internal/domain/errors"
	"asset-ledger.backend/internal/infrastructure/models"
)

// TransactionRepository implements ledger entry operations
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a new ledger entry and fills in the generated id and
// timestamps on the passed entity.
func (r *TransactionRepository) Create(ctx context.Context, transaction *entities.Transaction) error {
	now := time.Now()
	m := &models.Transaction{
		UserID:    transaction.UserID.Ptr(),
		AssetID:   transaction.AssetID,
		Type:      string(transaction.Type),
		Amount:    transaction.Amount,
		Address:   transaction.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	transaction.ID = m.ID
	transaction.CreatedAt = m.CreatedAt
	transaction.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uint) (*entities.Transaction, error) {
	var m models.Transaction
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TransactionRepository) toEntity(m *models.Transaction) *entities.Transaction {
	return &entities.Transaction{
		ID:        m.ID,
		UserID:    null.UintFromPtr(m.UserID),
		AssetID:   m.AssetID,
		Type:      entities.TransactionType(m.Type),
		Amount:    m.Amount,
		Address:   m.Address,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
