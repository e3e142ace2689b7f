package services

import (
	"testing"
	"time"

	"cemaat.app/models"
	"cemaat.app/pkg/recurrence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instanceRow(title, seriesKey string, start time.Time) models.Event {
	return models.Event{
		EventKey:          recurrence.DeriveInstanceKey(seriesKey, start),
		Title:             title,
		StartTime:         start,
		EndTime:           start.Add(time.Hour),
		RecurrencePattern: recurrence.PatternWeekly,
		SeriesKey:         seriesKey,
	}
}

func TestProjectNextOccurrencesCollapsesSeries(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	base := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	rows := []models.Event{
		instanceRow("Pazar İbadeti", "s1", base),
		instanceRow("Pazar İbadeti", "s1", base.AddDate(0, 0, 7)),
		instanceRow("Pazar İbadeti", "s1", base.AddDate(0, 0, 14)),
	}

	result := ProjectNextOccurrences(rows, now)

	require.Len(t, result, 1)
	assert.Equal(t, base.AddDate(0, 0, 7), result[0].StartTime, "bugünden sonraki ilk tekrar seçilir")
}

func TestProjectNextOccurrencesPassesStandaloneThrough(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	solo := models.Event{
		EventKey:  "solo-1",
		Title:     "Seminer",
		StartTime: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 2, 1, 11, 0, 0, 0, time.UTC),
	}
	past := models.Event{
		EventKey:  "solo-2",
		Title:     "Geçmiş Etkinlik",
		StartTime: time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC),
	}

	result := ProjectNextOccurrences([]models.Event{solo, past}, now)

	// Tekil satırlar filtrelenmez; geçmiş tekil satır da aynen geçer.
	require.Len(t, result, 2)
	assert.Equal(t, "Geçmiş Etkinlik", result[0].Title)
	assert.Equal(t, "Seminer", result[1].Title)
}

func TestProjectNextOccurrencesSynthesizesWhenAllStoredArePast(t *testing.T) {
	// Saklanan tüm tekrarlar geçmişte kalmışsa sonraki tarih desen
	// uygulanarak türetilir; seri listeden kaybolmaz.
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	base := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	rows := []models.Event{
		instanceRow("Pazar İbadeti", "s1", base),
		instanceRow("Pazar İbadeti", "s1", base.AddDate(0, 0, 7)),
	}

	result := ProjectNextOccurrences(rows, now)

	require.Len(t, result, 1)
	next := result[0]
	assert.Equal(t, time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC), next.StartTime)
	assert.Equal(t, time.Hour, next.EndTime.Sub(next.StartTime), "şablon süre korunur")
	assert.Equal(t, recurrence.DeriveInstanceKey("s1", next.StartTime), next.EventKey,
		"türetilmiş tekrar gerçek üretimde aynı anahtarı alır")
}

func TestProjectNextOccurrencesMergesSameTitleAndPattern(t *testing.T) {
	// Aynı başlık + deseni paylaşan iki ayrı seri tek gruba iner; gruplama
	// anahtarında seri kimliği yoktur.
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := []models.Event{
		instanceRow("Dua Toplantısı", "seriA", time.Date(2025, 1, 8, 19, 0, 0, 0, time.UTC)),
		instanceRow("Dua Toplantısı", "seriB", time.Date(2025, 1, 6, 19, 0, 0, 0, time.UTC)),
	}

	result := ProjectNextOccurrences(rows, now)

	require.Len(t, result, 1)
	assert.Equal(t, "seriB", result[0].SeriesKey, "gruptan bugüne en yakın üye seçilir")
}

func TestProjectNextOccurrencesSortsByStart(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := []models.Event{
		instanceRow("B Serisi", "sb", time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)),
		{
			EventKey:  "solo",
			Title:     "Tekil",
			StartTime: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2025, 1, 15, 11, 0, 0, 0, time.UTC),
		},
		instanceRow("A Serisi", "sa", time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)),
	}

	result := ProjectNextOccurrences(rows, now)

	require.Len(t, result, 3)
	assert.Equal(t, "Tekil", result[0].Title)
	assert.Equal(t, "A Serisi", result[1].Title)
	assert.Equal(t, "B Serisi", result[2].Title)
}

func TestProjectNextOccurrencesEmptyInput(t *testing.T) {
	result := ProjectNextOccurrences(nil, time.Now().UTC())
	assert.Empty(t, result)
}
