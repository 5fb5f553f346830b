package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	UserID    *uint           `gorm:"index"`          // Nullable; deposits carry no user
	AssetID   uint            `gorm:"not null;index"` // FK to assets.id
	Type      string          `gorm:"type:varchar(20);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(36,18);not null"`
	Address   string          `gorm:"type:varchar(62);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Asset Asset `gorm:"foreignKey:AssetID;references:ID"`
}

func (Transaction) TableName() string {
	return "transactions"
}
