package recurrence

import "time"

const (
	// DefaultWindowMonths üretim penceresinin varsayılan uzunluğu (ay).
	DefaultWindowMonths = 6
	// DefaultMaxInstances tek üretim çağrısında emniyet tavanı.
	// Patolojik desenlerde sınırsız üretimi engeller.
	DefaultMaxInstances = 52
	// DefaultLookaheadMonths ufuk bakım kontrolünün varsayılan ileri bakışı (ay).
	DefaultLookaheadMonths = 3
)

// Series üretim için gereken tekrar tanımı. Master etkinlik satırının
// takvimle ilgili alanlarının saf bir izdüşümüdür; depolama ayrıntısı içermez.
type Series struct {
	Key         string
	Start       time.Time
	End         time.Time
	Pattern     Pattern
	WeekOrdinal int
	Weekday     int
}

// Occurrence serinin somut bir tekrarı.
type Occurrence struct {
	Key   string
	Start time.Time
	End   time.Time
}

// GenerateOccurrences serinin başlangıcından itibaren windowEnd'e (hariç)
// kadar olan tekrarları kronolojik sırayla üretir. maxInstances tavanına
// ulaşılırsa üretim hatasız kesilir ve ikinci dönüş değeri true olur;
// çağıranın bunu loglaması beklenir, kullanıcıya hata olarak yansımaz.
func GenerateOccurrences(s Series, windowEnd time.Time, maxInstances int) ([]Occurrence, bool) {
	if maxInstances <= 0 {
		maxInstances = DefaultMaxInstances
	}
	duration := s.End.Sub(s.Start)

	var occurrences []Occurrence
	current := s.Start
	for current.Before(windowEnd) {
		if len(occurrences) >= maxInstances {
			return occurrences, true
		}
		occurrences = append(occurrences, Occurrence{
			Key:   DeriveInstanceKey(s.Key, current),
			Start: current,
			End:   current.Add(duration),
		})
		current = NextOccurrence(current, s.Pattern, s.WeekOrdinal, s.Weekday)
	}
	return occurrences, false
}
