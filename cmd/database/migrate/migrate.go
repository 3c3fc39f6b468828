package migration

import (
	"fmt"

	"bloodbank/entities"
	"bloodbank/internal/logger"

	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&entities.User{},
		&entities.BloodBank{},
		&entities.DonorProfile{},
		&entities.BloodInventory{},
		&entities.DonationHistory{},
		&entities.BloodRequest{},
	}
}

func Migrate(db *gorm.DB, log *logger.Logger) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("create uuid-ossp extension: %w", err)
	}

	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			log.Error(err, fmt.Sprintf("error migrating %T", model))
			return err
		}
	}

	log.Info("database migration complete")
	return nil
}
