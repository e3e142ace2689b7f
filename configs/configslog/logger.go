package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış logger, SLog ise sugared varyantı.
// InitLogger çağrılana kadar no-op'tur; böylece kütüphane olarak kullanan
// kod ve testler logger kurulumu yapmadan çalışabilir.
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// InitLogger ortama göre logger'ı kurar. APP_ENV=production ise JSON,
// aksi halde konsol çıktısı kullanılır.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// Logger kurulamazsa uygulamanın devam etmesinin anlamı yok.
		panic("logger başlatılamadı: " + err.Error())
	}
	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger tamponlanmış log kayıtlarını boşaltır (main'de defer edilir).
func SyncLogger() {
	_ = Log.Sync()
}
