package database

import (
	"github.com/rogeriosouza/construtora-api/internal/models"
	"gorm.io/gorm"
)

// Migrate applies the schema for every registered model
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Client{},
		&models.Supplier{},
		&models.Broker{},
		&models.Project{},
		&models.Debt{},
		&models.Installment{},
		&models.Payable{},
		&models.Commission{},
		&models.AuditLog{},
		&models.ReportCache{},
	)
}
