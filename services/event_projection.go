package services

import (
	"sort"
	"time"

	"cemaat.app/models"
	"cemaat.app/pkg/recurrence"
)

// ProjectNextOccurrences tarih aralığı sorgusundan dönen düz satır listesini
// liste ekranlarının beklediği biçime indirger: tekrarlı satırlar
// (başlık, desen) ile gruplanır ve her grup bugünden itibaren ilk tekrarına
// iner; tekil satırlar aynen geçer. Sonuç başlangıca göre artan sıradadır.
//
// Saklanan satırlardan hiçbiri bugün veya sonrasında değilse grup boş
// bırakılmaz; doğru sonraki tarih desen tekrar tekrar uygulanarak türetilir.
// Aktif bir serinin liste ekranında her zaman bir "sıradaki tekrar"ı vardır.
func ProjectNextOccurrences(rows []models.Event, now time.Time) []models.Event {
	type groupKey struct {
		title   string
		pattern recurrence.Pattern
	}

	var result []models.Event
	groups := make(map[groupKey][]models.Event)
	var order []groupKey

	for _, row := range rows {
		if !row.IsRecurring() {
			result = append(result, row)
			continue
		}
		// Aynı başlık + deseni paylaşan iki ayrı seri burada tek gruba iner;
		// bilinen bir kısıttır, gruplama anahtarında seri kimliği yoktur.
		key := groupKey{title: row.Title, pattern: row.RecurrencePattern}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	for _, key := range order {
		members := groups[key]
		next, found := nextFromToday(members, now)
		if !found {
			next = synthesizeNext(members[0], now)
		}
		result = append(result, next)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result
}

// nextFromToday bugünden itibaren en erken başlayan üyeyi seçer.
func nextFromToday(members []models.Event, now time.Time) (models.Event, bool) {
	var best models.Event
	found := false
	for _, m := range members {
		if m.StartTime.Before(now) {
			continue
		}
		if !found || m.StartTime.Before(best.StartTime) {
			best = m
			found = true
		}
	}
	return best, found
}

// synthesizeNext saklanan satırın başlangıcından desen uygulanarak bugünün
// sonrasındaki ilk tekrarı türetir. Anahtar deterministik türetildiği için
// aynı tekrar daha sonra gerçekten üretilirse aynı kimliğe sahip olur.
func synthesizeNext(row models.Event, now time.Time) models.Event {
	start := row.StartTime
	for start.Before(now) {
		start = recurrence.NextOccurrence(start, row.RecurrencePattern,
			row.RecurrenceWeekOrdinal, row.RecurrenceWeekday)
	}
	synthesized := row
	synthesized.StartTime = start
	synthesized.EndTime = start.Add(row.Duration())
	if row.SeriesKey != "" {
		synthesized.EventKey = recurrence.DeriveInstanceKey(row.SeriesKey, start)
	}
	return synthesized
}
