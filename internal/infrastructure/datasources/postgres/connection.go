package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"asset-ledger.backend/internal/infrastructure/models"
)

// Open connects to PostgreSQL using GORM. The simple protocol avoids
// prepared-statement caching issues behind connection poolers.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
	})
}

// Migrate creates the schema if absent. There is no versioned migration
// history; AutoMigrate only adds what is missing.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Asset{},
		&models.Wallet{},
		&models.Transaction{},
	)
}
