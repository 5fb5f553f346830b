package repositories

import (
	"context"

	"asset-ledger.backend/internal/domain/entities"
)

// TransactionRepository defines ledger entry operations. Transactions are
// append-only; there is no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entities.Transaction) error
	GetByID(ctx context.Context, id uint) (*entities.Transaction, error)
}
