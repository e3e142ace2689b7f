package migrations

import (
	"cemaat.app/configs/configslog"
	"cemaat.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateMembersTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating members table...")
	if err := db.AutoMigrate(&models.Member{}); err != nil {
		configslog.Log.Error("Failed to migrate members table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Members table migrated successfully")
	return nil
}
