package models

// Organization bir cemaat/kilise topluluğunu temsil eder. Tüm üye, etkinlik,
// bağış ve yoklama kayıtları bir organizasyona bağlıdır; çok kiracılı izolasyon
// sorgulara organizasyon ID'sini açıkça geçiren çağıran tarafından sağlanır.
type Organization struct {
	BaseModel
	Name     string `gorm:"type:varchar(200);not null"`
	City     string `gorm:"type:varchar(100)"`
	Address  string `gorm:"type:text"`
	Phone    string `gorm:"type:varchar(30)"`
	Email    string `gorm:"type:varchar(255)"`
	IsActive bool   `gorm:"index"`
}
