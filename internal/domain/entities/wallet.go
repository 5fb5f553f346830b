package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet represents a user's holding of one asset at one address.
// Amount never goes negative; it is mutated only by transaction processing.
type Wallet struct {
	ID        uint            `json:"id"`
	UserID    uint            `json:"user_id"`
	AssetID   uint            `json:"asset_id"`
	Address   string          `json:"address"`
	Amount    decimal.Decimal `json:"amount"`
	UpdatedAt time.Time       `json:"updated_at"`
}
