package models

import "time"

// RSVP durumları.
const (
	RSVPStatusAttending    = "KATILIYOR"
	RSVPStatusNotAttending = "KATILMIYOR"
	RSVPStatusMaybe        = "BELKI"
)

// EventRSVP bir üyenin etkinlik satırına LCV yanıtı. RSVPEnabled bayrağı
// kapalı etkinlikler için kayıt oluşturulmaz; kontrol servis katmanındadır.
type EventRSVP struct {
	BaseModel
	OrganizationID uint       `gorm:"index;not null"`
	EventID        uint       `gorm:"not null;index:idx_rsvp_event_member,unique"`
	MemberID       uint       `gorm:"not null;index:idx_rsvp_event_member,unique"`
	Status         string     `gorm:"type:varchar(20);not null"`
	GuestCount     int        `gorm:"type:integer;default:0"`
	Notes          string     `gorm:"type:varchar(255)"`
	RespondedAt    *time.Time

	Event  Event  `gorm:"foreignKey:EventID"`
	Member Member `gorm:"foreignKey:MemberID"`
}
