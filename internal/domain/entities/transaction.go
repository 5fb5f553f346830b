package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// TransactionType distinguishes ledger entry kinds
type TransactionType string

const (
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeDeposit    TransactionType = "deposit"
)

// Transaction is an immutable ledger entry. UserID is null for deposits,
// which arrive from outside the platform with no known sender.
type Transaction struct {
	ID        uint            `json:"id"`
	UserID    null.Uint       `json:"user_id"`
	AssetID   uint            `json:"asset_id"`
	Type      TransactionType `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Address   string          `json:"address"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// WithdrawalInput is the request payload for creating a withdrawal
type WithdrawalInput struct {
	UserID  uint            `json:"user_id" binding:"required"`
	AssetID uint            `json:"asset_id" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Address string          `json:"address" binding:"required,max=62"`
}

// DepositInput is the request payload for recording a deposit
type DepositInput struct {
	AssetID uint            `json:"asset_id" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Address string          `json:"address" binding:"required,max=62"`
}
