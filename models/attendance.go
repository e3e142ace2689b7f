package models

import "time"

// AttendanceRecord bir üyenin belirli bir etkinlik satırına (tekil etkinlik
// veya seri instance'ı) check-in kaydı. Aynı (event, member) ikilisi için tek
// kayıt tutulur; tekrarlanan check-in denemeleri mevcut kaydı günceller.
type AttendanceRecord struct {
	BaseModel
	OrganizationID uint      `gorm:"index;not null"`
	EventID        uint      `gorm:"not null;index:idx_attendance_event_member,unique"`
	MemberID       uint      `gorm:"not null;index:idx_attendance_event_member,unique"`
	CheckedInAt    time.Time `gorm:"not null"`
	Notes          string    `gorm:"type:varchar(255)"`

	Event  Event  `gorm:"foreignKey:EventID"`
	Member Member `gorm:"foreignKey:MemberID"`
}
