package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Wallet struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	UserID    uint            `gorm:"not null;index"` // FK to users.id
	AssetID   uint            `gorm:"not null;index"` // FK to assets.id
	Address   string          `gorm:"type:varchar(62);uniqueIndex;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(36,18);not null;default:0"`
	UpdatedAt time.Time

	// Relations
	User  User  `gorm:"foreignKey:UserID;references:ID"`
	Asset Asset `gorm:"foreignKey:AssetID;references:ID"`
}

func (Wallet) TableName() string {
	return "wallets"
}
