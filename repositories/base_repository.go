package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound repository katmanının ortak "kayıt yok" hatası.
// Servisler gorm.ErrRecordNotFound yerine bunu görür.
var ErrNotFound = errors.New("kayıt bulunamadı")

type ctxKey string

// txContextKey context üzerinden taşınan transaction (varsa) için anahtar.
const txContextKey ctxKey = "tx"

// ContextWithTx transaction'ı context'e koyar; getDB onu önceliklendirir.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey, tx)
}

// getDB context'te transaction varsa onu, yoksa verilen bağlantıyı döndürür.
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}

// softDelete kaydı DeletedBy bilgisiyle birlikte soft delete yapar.
func softDelete(db *gorm.DB, model interface{}, id uint, deletedByUserID uint) error {
	now := time.Now().UTC()
	result := db.Model(model).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
