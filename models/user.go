package models

// User panel ve dashboard'a giriş yapabilen görevli/yönetici hesabı.
// IsSystem true olan hesaplar dashboard'a (sistem yönetimi), diğerleri
// kendi organizasyonlarının paneline erişir.
type User struct {
	BaseModel
	Name           string `gorm:"type:varchar(100);not null"`
	Email          string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash   string `gorm:"type:varchar(255);not null"`
	IsSystem       bool   `gorm:"default:false;index"`
	IsActive       bool   `gorm:"index"`
	OrganizationID *uint  `gorm:"index"` // Sistem kullanıcılarında boş olabilir
}
