package models

import "time"

// Member cemaat üyesi.
type Member struct {
	BaseModel
	OrganizationID uint       `gorm:"index;not null"`
	FirstName      string     `gorm:"type:varchar(100);not null"`
	LastName       string     `gorm:"type:varchar(100);not null"`
	Email          string     `gorm:"type:varchar(255);index"`
	Phone          string     `gorm:"type:varchar(30)"`
	Address        string     `gorm:"type:text"`
	BirthDate      *time.Time `gorm:"type:date"`
	JoinedAt       *time.Time `gorm:"type:date"`
	Notes          string     `gorm:"type:text"`
	IsActive       bool       `gorm:"index"`
}

// FullName listelerde gösterim için.
func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
