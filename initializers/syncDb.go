package initializers

import (
	"fmt"

	"github.com/Kariqs/agromarket-api/models"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func allModels() []any {
	return []any{
		&models.Profile{},
		&models.Equipment{}, &models.AnimalListing{}, &models.LandListing{}, &models.NurseryListing{},
		&models.ExpertProfile{},
		&models.MarketplaceItem{},
		&models.Order{}, &models.OrderItem{},
		&models.Cart{}, &models.CartItem{},
		&models.EmailLog{}, &models.AdminNotification{}, &models.FileUpload{},
		&models.ContactMessage{},
	}
}

func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202401010000_initial",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(allModels()...)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(allModels()...)
			},
		},
	}
}

func SyncDatabase(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	Logger.Info("database synced successfully")
	return nil
}
