package models

import (
	"time"
)

type Asset struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Symbol    string    `gorm:"type:varchar(10);uniqueIndex;not null"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Asset) TableName() string {
	return "assets"
}
