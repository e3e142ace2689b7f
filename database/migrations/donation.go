package migrations

import (
	"cemaat.app/configs/configslog"
	"cemaat.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateDonationsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating donations table...")
	if err := db.AutoMigrate(&models.Donation{}); err != nil {
		configslog.Log.Error("Failed to migrate donations table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Donations table migrated successfully")
	return nil
}
