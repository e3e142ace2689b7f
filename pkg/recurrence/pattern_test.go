package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("geçersiz test tarihi %q: %v", value, err)
	}
	return parsed
}

func TestNextOccurrenceIntervals(t *testing.T) {
	start := mustTime(t, "2025-01-05T10:30:00Z")

	tests := []struct {
		name    string
		pattern Pattern
		want    string
	}{
		{"daily", PatternDaily, "2025-01-06T10:30:00Z"},
		{"weekly", PatternWeekly, "2025-01-12T10:30:00Z"},
		{"biweekly", PatternBiweekly, "2025-01-19T10:30:00Z"},
		{"monthly", PatternMonthly, "2025-02-05T10:30:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOccurrence(start, tt.pattern, 0, 0)
			assert.Equal(t, mustTime(t, tt.want), got)
		})
	}
}

func TestNextOccurrenceUnknownPatternFallsBackToWeekly(t *testing.T) {
	start := mustTime(t, "2025-03-01T09:00:00Z")
	got := NextOccurrence(start, Pattern("yearly"), 0, 0)
	assert.Equal(t, start.AddDate(0, 0, 7), got)
}

func TestNextOccurrenceMonthlyRollsOverNaturally(t *testing.T) {
	// 31 Ocak + 1 ay: Şubat 31 diye bir gün olmadığı için 2/3 Mart'a taşar.
	start := mustTime(t, "2025-01-31T18:00:00Z")
	got := NextOccurrence(start, PatternMonthly, 0, 0)
	assert.Equal(t, mustTime(t, "2025-03-03T18:00:00Z"), got)
}

func TestNextOccurrenceMonthlyWeekdayFirstTuesday(t *testing.T) {
	// 7 Ocak 2025 Salı, saat 19:00. Sonraki tekrar Şubat'ın ilk Salısı olmalı.
	start := mustTime(t, "2025-01-07T19:00:00Z")
	got := NextOccurrence(start, PatternMonthlyWeekday, 1, int(time.Tuesday))

	assert.Equal(t, mustTime(t, "2025-02-04T19:00:00Z"), got)
	assert.Equal(t, time.Tuesday, got.Weekday())
}

func TestNextOccurrenceMonthlyWeekdayThirdSunday(t *testing.T) {
	start := mustTime(t, "2025-01-19T11:00:00Z") // Ocak'ın 3. Pazarı
	got := NextOccurrence(start, PatternMonthlyWeekday, 3, int(time.Sunday))

	assert.Equal(t, mustTime(t, "2025-02-16T11:00:00Z"), got)
}

func TestNextOccurrenceMonthlyWeekdayLastWeek(t *testing.T) {
	// Ordinal 5: ayın son istenen günü. Sonuç her zaman ayın son 7 günü içinde
	// ve doğru haftanın gününde olmalı.
	start := mustTime(t, "2025-01-31T08:00:00Z")
	current := start
	for i := 0; i < 12; i++ {
		next := NextOccurrence(current, PatternMonthlyWeekday, 5, int(time.Friday))

		assert.Equal(t, time.Friday, next.Weekday())
		lastOfMonth := time.Date(next.Year(), next.Month()+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		assert.LessOrEqual(t, lastOfMonth.Day()-next.Day(), 6,
			"tekrar ayın son 7 günü içinde olmalı: %s", next)
		assert.Equal(t, 8, next.Hour(), "saat bileşeni korunmalı")
		assert.True(t, next.After(current))
		current = next
	}
}

func TestNextOccurrencePreservesTimeOfDay(t *testing.T) {
	start := mustTime(t, "2025-06-15T23:45:30Z")
	for _, p := range []Pattern{PatternDaily, PatternWeekly, PatternBiweekly, PatternMonthly} {
		got := NextOccurrence(start, p, 0, 0)
		assert.Equal(t, 23, got.Hour(), "desen %s", p)
		assert.Equal(t, 45, got.Minute(), "desen %s", p)
		assert.Equal(t, 30, got.Second(), "desen %s", p)
	}
}

func TestPatternIsValid(t *testing.T) {
	assert.True(t, PatternNone.IsValid())
	assert.True(t, PatternWeekly.IsValid())
	assert.True(t, PatternMonthlyWeekday.IsValid())
	assert.False(t, Pattern("yearly").IsValid())
	assert.False(t, Pattern("WEEKLY").IsValid())
}

func TestPatternIsRecurring(t *testing.T) {
	assert.False(t, PatternNone.IsRecurring())
	assert.True(t, PatternDaily.IsRecurring())
	assert.True(t, Pattern("yearly").IsRecurring())
}
