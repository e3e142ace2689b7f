package recurrence

import "time"

// Pattern bir etkinliğin tekrar desenini belirtir.
// Boş string tekrar olmayan (tekil) etkinlik anlamına gelir.
type Pattern string

const (
	PatternNone           Pattern = ""
	PatternDaily          Pattern = "daily"
	PatternWeekly         Pattern = "weekly"
	PatternBiweekly       Pattern = "biweekly"
	PatternMonthly        Pattern = "monthly"
	PatternMonthlyWeekday Pattern = "monthly_weekday"
)

// IsRecurring desen tekrar gerektiriyor mu?
func (p Pattern) IsRecurring() bool {
	return p != PatternNone
}

// IsValid desenin bilinen değerlerden biri olup olmadığını kontrol eder.
// Yeni kayıtlar oluşturulurken bilinmeyen desenler reddedilir; mevcut
// kayıtlardaki bilinmeyen değerler NextOccurrence'ta haftalık davranışa düşer.
func (p Pattern) IsValid() bool {
	switch p {
	case PatternNone, PatternDaily, PatternWeekly, PatternBiweekly, PatternMonthly, PatternMonthlyWeekday:
		return true
	}
	return false
}

// NextOccurrence verilen tarihten sonraki tekrar tarihini hesaplar.
// weekOrdinal ve weekday yalnızca monthly_weekday deseni için kullanılır
// (weekday 0=Pazar..6=Cumartesi, weekOrdinal 1-4 veya 5="son hafta").
// Bilinmeyen desenler kaynak sistemle uyumluluk için haftalık gibi davranır.
func NextOccurrence(current time.Time, p Pattern, weekOrdinal, weekday int) time.Time {
	switch p {
	case PatternDaily:
		return current.AddDate(0, 0, 1)
	case PatternBiweekly:
		return current.AddDate(0, 0, 14)
	case PatternMonthly:
		// Go'nun doğal ay taşma davranışı korunur (31 Oca -> 3 Mar gibi).
		return current.AddDate(0, 1, 0)
	case PatternMonthlyWeekday:
		return nextMonthlyWeekday(current, weekOrdinal, weekday)
	default:
		// weekly ve bilinmeyen desenler: +7 gün.
		return current.AddDate(0, 0, 7)
	}
}

// nextMonthlyWeekday bir sonraki aydaki N. haftanın istenen gününü bulur.
// weekOrdinal 5 "ayın son X günü" demektir ve ay sonundan geriye yürünür.
// Saat bileşeni tarih hesabından sonra aynen geri uygulanır.
func nextMonthlyWeekday(current time.Time, weekOrdinal, weekday int) time.Time {
	target := time.Weekday(weekday)
	year, month, _ := current.Date()
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, current.Location())

	var day time.Time
	if weekOrdinal >= 5 {
		// Ayın son günü: takip eden ayın ilk gününden bir gün geri.
		day = firstOfNext.AddDate(0, 1, 0).AddDate(0, 0, -1)
		for day.Weekday() != target {
			day = day.AddDate(0, 0, -1)
		}
	} else {
		day = firstOfNext
		for day.Weekday() != target {
			day = day.AddDate(0, 0, 1)
		}
		if weekOrdinal > 1 {
			day = day.AddDate(0, 0, 7*(weekOrdinal-1))
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(),
		current.Hour(), current.Minute(), current.Second(), current.Nanosecond(),
		current.Location())
}
