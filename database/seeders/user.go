package seeders

import (
	"errors"
	"os"

	"cemaat.app/configs/configslog"
	"cemaat.app/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSystemUser ortam değişkenlerinden sistem yöneticisini oluşturur veya
// şifresini günceller. SYSTEM_EMAIL ve SYSTEM_PASSWORD zorunludur.
func SeedSystemUser(db *gorm.DB) error {
	email := os.Getenv("SYSTEM_EMAIL")
	password := os.Getenv("SYSTEM_PASSWORD")
	name := os.Getenv("SYSTEM_NAME")
	if name == "" {
		name = "Sistem Yöneticisi"
	}
	if email == "" || password == "" {
		return errors.New("SYSTEM_EMAIL ve SYSTEM_PASSWORD ortam değişkenleri zorunludur")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı şifresi hashlenemedi", zap.Error(err))
		return err
	}

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		existing.Name = name
		existing.PasswordHash = string(hashed)
		existing.IsSystem = true
		existing.IsActive = true
		if err := db.Save(&existing).Error; err != nil {
			configslog.Log.Error("Sistem kullanıcısı güncellenemedi", zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Sistem kullanıcısı güncellendi: %s", email)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem kullanıcısı kontrol edilemedi", zap.Error(result.Error))
		return result.Error
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		IsSystem:     true,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Sistem kullanıcısı oluşturuldu: %s (ID: %d)", email, user.ID)
	return nil
}
