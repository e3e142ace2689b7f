package models

import "time"

// Bağış fonları (serbest metin yerine sabit sözlük).
const (
	DonationFundGeneral  = "GENEL"
	DonationFundBuilding = "BINA"
	DonationFundCharity  = "YARDIM"
	DonationFundMissions = "MISYON"
)

// Donation bir üyenin veya isimsiz bağışçının bağış kaydı.
type Donation struct {
	BaseModel
	OrganizationID uint      `gorm:"index;not null"`
	MemberID       *uint     `gorm:"index"` // İsimsiz bağışlarda boş
	Amount         float64   `gorm:"type:numeric(12,2);not null"`
	Currency       string    `gorm:"type:varchar(3);default:'TRY'"`
	Fund           string    `gorm:"type:varchar(30);default:'GENEL';index"`
	DonatedAt      time.Time `gorm:"index;not null"`
	Notes          string    `gorm:"type:text"`

	Member *Member `gorm:"foreignKey:MemberID"`
}
