package seeders

import (
	"errors"
	"os"

	"cemaat.app/configs/configslog"
	"cemaat.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedDefaultOrganization DEFAULT_ORG_NAME verilmişse ilk organizasyonu
// oluşturur. Verilmemişse sessizce atlanır; organizasyonlar dashboard'dan da
// açılabilir.
func SeedDefaultOrganization(db *gorm.DB) error {
	name := os.Getenv("DEFAULT_ORG_NAME")
	if name == "" {
		configslog.SLog.Info("DEFAULT_ORG_NAME belirtilmedi, organizasyon seed adımı atlanıyor.")
		return nil
	}

	var existing models.Organization
	result := db.Where("name = ?", name).First(&existing)
	if result.Error == nil {
		configslog.SLog.Debugf("Organizasyon '%s' zaten mevcut, oluşturma atlanıyor.", name)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Organizasyon kontrol edilirken veritabanı hatası",
			zap.String("name", name), zap.Error(result.Error))
		return result.Error
	}

	org := models.Organization{
		Name:     name,
		City:     os.Getenv("DEFAULT_ORG_CITY"),
		IsActive: true,
	}
	if err := db.Create(&org).Error; err != nil {
		configslog.Log.Error("Organizasyon oluşturulamadı", zap.String("name", name), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Organizasyon oluşturuldu: %s (ID: %d)", name, org.ID)
	return nil
}
