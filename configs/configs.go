package configs

import (
	"os"
	"time"

	"cemaat.app/configs/configsdatabase"
	"cemaat.app/configs/configslog"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// LoadEnv .env dosyasını yükler; dosya yoksa sessizce ortam değişkenleriyle
// devam edilir (container ortamlarında .env bulunmaz).
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Info(".env dosyası bulunamadı, ortam değişkenleri kullanılacak.")
	}
}

// GetDB servislerin kullandığı paylaşılan gorm bağlantısı.
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

// SetupSession çerez tabanlı oturum deposunu kurar.
func SetupSession() *session.Store {
	return session.New(session.Config{
		Expiration:     12 * time.Hour,
		KeyLookup:      "cookie:cemaat_session",
		CookieHTTPOnly: true,
		CookieSecure:   os.Getenv("APP_ENV") == "production",
		CookieSameSite: "Lax",
	})
}

// AppPort HTTP sunucusunun dinleyeceği port.
func AppPort() string {
	if p := os.Getenv("APP_PORT"); p != "" {
		return ":" + p
	}
	return ":3000"
}
