package migrations

import (
	"cemaat.app/configs/configslog"
	"cemaat.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateAttendanceTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating attendance_records & event_rsvps tables...")
	if err := db.AutoMigrate(&models.AttendanceRecord{}, &models.EventRSVP{}); err != nil {
		configslog.Log.Error("Failed to migrate attendance_records & event_rsvps tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Attendance_records & event_rsvps tables migrated successfully")
	return nil
}
