package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weeklySeries(start time.Time) Series {
	return Series{
		Key:     "seri-1",
		Start:   start,
		End:     start.Add(time.Hour),
		Pattern: PatternWeekly,
	}
}

func TestGenerateOccurrencesWeeklySixMonths(t *testing.T) {
	// 5 Ocak 2025'ten 5 Temmuz'a (hariç) haftalık: 26 tekrar.
	start := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	windowEnd := start.AddDate(0, DefaultWindowMonths, 0)

	occurrences, truncated := GenerateOccurrences(weeklySeries(start), windowEnd, DefaultMaxInstances)

	require.False(t, truncated)
	require.Len(t, occurrences, 26)
	assert.Equal(t, start, occurrences[0].Start)
	assert.Equal(t, start.Add(time.Hour), occurrences[0].End)

	for i := 1; i < len(occurrences); i++ {
		assert.Equal(t, occurrences[i-1].Start.AddDate(0, 0, 7), occurrences[i].Start,
			"tekrarlar 7 gün arayla olmalı")
	}
	last := occurrences[len(occurrences)-1]
	assert.True(t, last.Start.Before(windowEnd), "pencere sonu hariçtir")
}

func TestGenerateOccurrencesDailyHitsCap(t *testing.T) {
	// Günlük desen 6 ayda ~180 tekrar üretirdi; 52 tavanında kesilmeli.
	start := time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC)
	s := Series{Key: "gunluk", Start: start, End: start.Add(30 * time.Minute), Pattern: PatternDaily}

	occurrences, truncated := GenerateOccurrences(s, start.AddDate(0, DefaultWindowMonths, 0), DefaultMaxInstances)

	assert.True(t, truncated)
	assert.Len(t, occurrences, DefaultMaxInstances)
}

func TestGenerateOccurrencesWindowEndExclusive(t *testing.T) {
	// Pencere sonuna tam denk gelen tekrar üretilmez.
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	windowEnd := start.AddDate(0, 0, 14)
	s := weeklySeries(start)
	s.Key = "sinir"

	occurrences, truncated := GenerateOccurrences(s, windowEnd, DefaultMaxInstances)

	require.False(t, truncated)
	require.Len(t, occurrences, 2)
	assert.Equal(t, start, occurrences[0].Start)
	assert.Equal(t, start.AddDate(0, 0, 7), occurrences[1].Start)
}

func TestGenerateOccurrencesKeysAreUniqueAndDerived(t *testing.T) {
	start := time.Date(2025, 2, 3, 19, 0, 0, 0, time.UTC)
	occurrences, _ := GenerateOccurrences(weeklySeries(start), start.AddDate(0, 2, 0), DefaultMaxInstances)

	seen := make(map[string]struct{})
	for _, occ := range occurrences {
		assert.Equal(t, DeriveInstanceKey("seri-1", occ.Start), occ.Key)
		_, dup := seen[occ.Key]
		assert.False(t, dup, "anahtar tekrarlanmamalı: %s", occ.Key)
		seen[occ.Key] = struct{}{}
	}
}

func TestGenerateOccurrencesPreservesDuration(t *testing.T) {
	start := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	s := weeklySeries(start)
	s.End = start.Add(90 * time.Minute)

	occurrences, _ := GenerateOccurrences(s, start.AddDate(0, 1, 0), DefaultMaxInstances)
	require.NotEmpty(t, occurrences)
	for _, occ := range occurrences {
		assert.Equal(t, 90*time.Minute, occ.End.Sub(occ.Start))
	}
}

func TestGenerateOccurrencesEmptyWindow(t *testing.T) {
	start := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	occurrences, truncated := GenerateOccurrences(weeklySeries(start), start, DefaultMaxInstances)
	assert.Empty(t, occurrences)
	assert.False(t, truncated)
}
