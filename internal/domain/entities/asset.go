package entities

import (
	"time"
)

// Asset represents a currency supported by the ledger.
type Asset struct {
	ID        uint      `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
