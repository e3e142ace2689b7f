package models

import (
	"time"

	"cemaat.app/pkg/recurrence"
)

// Event hem tekil etkinlikleri hem de tekrarlı serilerin master ve instance
// satırlarını tutan tek tablodur.
//
//   - Tekil etkinlik: IsMaster=false, SeriesKey boş, desen boş.
//   - Master: IsMaster=true, SeriesKey kendi EventKey'ine eşit; serinin
//     kurallarını ve şablon süresini (EndTime-StartTime) tanımlar.
//   - Instance: IsMaster=false, SeriesKey master'ın anahtarı, EventKey
//     recurrence.DeriveInstanceKey ile türetilmiş; başlık/açıklama/konum
//     üretim anında master'dan kopyalanır (liste ekranları join'siz okusun
//     diye bilinçli denormalizasyon). Instance'lardaki tekrar alanları salt
//     gösterim içindir, seri düzenlemesinde yalnızca master'da değişir.
type Event struct {
	BaseModel
	EventKey       string `gorm:"type:varchar(64);uniqueIndex;not null"`
	OrganizationID uint   `gorm:"index;not null"`

	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Location    string    `gorm:"type:varchar(255)"`
	StartTime   time.Time `gorm:"index;not null"`
	EndTime     time.Time `gorm:"not null"`

	RecurrencePattern     recurrence.Pattern `gorm:"type:varchar(20);index"`
	RecurrenceWeekday     int                `gorm:"type:integer;default:0"` // 0=Pazar..6=Cumartesi (yalnız monthly_weekday)
	RecurrenceWeekOrdinal int                `gorm:"type:integer;default:0"` // 1-4 veya 5=son hafta (yalnız monthly_weekday)

	IsMaster  bool   `gorm:"default:false;index"`
	SeriesKey string `gorm:"type:varchar(64);index"`

	// Default tag yok: gorm default taşıyan sıfır değerli alanı INSERT'ten
	// düşürür, kapalı bayrak açık yazılır. Bayraklar çağıran tarafından atanır.
	RSVPEnabled       bool
	AttendanceEnabled bool
}

// IsRecurring satır bir tekrar desenine sahip mi?
func (e Event) IsRecurring() bool {
	return e.RecurrencePattern.IsRecurring()
}

// IsSeriesInstance satır bir serinin üretilmiş tekrarı mı?
func (e Event) IsSeriesInstance() bool {
	return !e.IsMaster && e.SeriesKey != ""
}

// Duration şablon süre; her instance'ın bitişi başlangıç + bu süredir.
func (e Event) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// RecurrenceSeries master satırdan üretici için saf seri tanımı çıkarır.
func (e Event) RecurrenceSeries() recurrence.Series {
	return recurrence.Series{
		Key:         e.SeriesKey,
		Start:       e.StartTime,
		End:         e.EndTime,
		Pattern:     e.RecurrencePattern,
		WeekOrdinal: e.RecurrenceWeekOrdinal,
		Weekday:     e.RecurrenceWeekday,
	}
}
