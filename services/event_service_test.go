package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"cemaat.app/models"
	"cemaat.app/pkg/queryparams"
	"cemaat.app/pkg/recurrence"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testOrgID  = uint(1)
	testUserID = uint(7)
)

func setupEventDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "events.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Event{}))
	return db
}

func weeklyInput(start time.Time) models.Event {
	return models.Event{
		Title:             "Pazar İbadeti",
		Description:       "Haftalık toplantı",
		Location:          "Ana salon",
		StartTime:         start,
		EndTime:           start.Add(time.Hour),
		RecurrencePattern: recurrence.PatternWeekly,
	}
}

func countRows(t *testing.T, db *gorm.DB, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Event{}).Where(where, args...).Count(&n).Error)
	return n
}

func TestCreateEventWeeklySeriesFillsWindow(t *testing.T) {
	db := setupEventDB(t)
	svc := NewEventServiceWithDB(db)
	ctx := context.Background()
	start := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	master, err := svc.CreateEvent(ctx, testOrgID, testUserID, weeklyInput(start), start)
	require.NoError(t, err)

	assert.True(t, master.IsMaster)
	assert.Equal(t, master.EventKey, master.SeriesKey, "master kendi serisinin anahtarını taşır")

	var instances []models.Event
	require.NoError(t, db.
		Where("series_key = ? AND is_master = ?", master.SeriesKey, false).
		Order("start_time asc").Find(&instances).Error)

	// 5 Ocak - 5 Temmuz (hariç) haftalık: 26 instance.
	require.Len(t, instances, 26)
	assert.Equal(t, start, instances[0].StartTime.UTC())
	for _, inst := range instances {
		assert.False(t, inst.IsMaster)
		assert.Equal(t, recurrence.DeriveInstanceKey(master.SeriesKey, inst.StartTime), inst.EventKey)
		assert.Equal(t, master.Title, inst.Title)
		assert.Equal(t, time.Hour, inst.Duration())
	}
}

func TestCreateEventStandaloneDeduplicates(t *testing.T) {
	db := setupEventDB(t)
	svc := NewEventServiceWithDB(db)
	ctx := context.Background()
	start := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)

	input := models.Event{Title: "Bahar Pikniği", StartTime: start, EndTime: start.Add(3 * time.Hour)}

	first, err := svc.CreateEvent(ctx, testOrgID, testUserID, input, start)
	require.NoError(t, err)
	second, err := svc.CreateEvent(ctx, testOrgID, testUserID, input, start)
	require.NoError(t, err)

	assert.Equal(t, first.EventKey, second.EventKey, "tekrarlanan istek mevcut kaydı döndürür")
	assert.EqualValues(t, 1, countRows(t, db, "title = ?", "Bahar Pikniği"))
	assert.False(t, first.IsMaster)
	assert.Empty(t, first.SeriesKey)
}

func TestCreateEventRejectsInvalidInput(t *testing.T) {
	db := setupEventDB(t)
	svc := NewEventServiceWithDB(db)
	ctx := context.Background()
	start := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	t.Run("unknown pattern", func(t *testing.T) {
		input := weeklyInput(start)
		input.RecurrencePattern = recurrence.Pattern("yearly")
		_, err := svc.CreateEvent(ctx, testOrgID, testUserID, input, start)
		assert.ErrorIs(t, err, ErrEventPatternInvalid)
	})

	t.Run("missing title", func(t *testing.T) {
		input := weeklyInput(start)
		input.Title = ""
		_, err := svc.CreateEvent(ctx, testOrgID, testUserID, input, start)
		assert.ErrorIs(t, err, ErrEventTitleRequired)
	})

	t.Run("missing organization", func(t *testing.T) {
		_, err := svc.CreateEvent(ctx, 0, testUserID, weeklyInput(start), start)
		assert.ErrorIs(t, err, ErrEventOrganizationRequired)
	})

	t.Run("monthly_weekday without ordinal", func(t *testing.T) {
		input := weeklyInput(start)
		input.RecurrencePattern = recurrence.PatternMonthlyWeekday
		input.RecurrenceWeekOrdinal = 0
		_, err := svc.CreateEvent(ctx, testOrgID, testUserID, input, start)
		assert.ErrorIs(t, err, ErrEventWeekdayRequired)
	})
}

func TestUpdateSeriesPropagatesDisplayFields(t *testing.T) {
	db := setupEventDB(t)
	svc := NewEventServiceWithDB(db)
	ctx := context.Background()
	start := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	master, err := svc.CreateEvent(ctx, testOrgID, testUserID, weeklyInput(start), start)
	require.NoError(t, err)

	var before []models.Event
	require.NoError(t, db.Where("series_key = ? AND is_master = ?", master.SeriesKey, false).
		Order("start_time asc").Find(&before).Error)
	require.NotEmpty(t, before)

	// Güncelleme instance anahtarıyla yapılır; master'a yönlendirilmeli.
	instanceKey := before[3].EventKey
	changes := models.Event{
		Title:       "Pazar İbadeti (Yeni Salon)",
		Description: "Haftalık toplantı",
		Location:    "Yan bina",
	}
	updated, err := svc.UpdateEvent(ctx, testOrgID, testUserID, instanceKey, changes, start)
	require.NoError(t, err)
	assert.True(t, updated.IsMaster, "instance anahtarı master'a çözülür")
	assert.Equal(t, "Yan bina", updated.Location)

	var after []models.Event
	require.NoError(t, db.Where("series_key = ? AND is_master = ?", master.SeriesKey, false).
		Order("start_time asc").Find(&after).Error)
	require.Len(t, after, len(before))

	for i, inst := range after {
		assert.Equal(t, "Pazar İbadeti (Yeni Salon)", inst.Title)
		assert.Equal(t, "Yan bina", inst.Location)
		// Gösterim dışı alanlar yerinde kalır: instance'lar yeniden tarihlenmez.
		assert.Equal(t, before[i].StartTime.UTC(), inst.StartTime.UTC())
		assert.Equal(t, before[i].EventKey, inst.EventKey)
	}
}

func TestUpdateSeriesByTitleFallback(t *testing.T) {
	db := setupEventDB(t)
	svc := NewEventServiceWithDB(db)
	ctx := context.Background()
	start := time.Date(2025, 1, 7, 19, 0, 0, 0, time.UTC)

	input := weeklyInput(start)
	input.Title = "Gençlik Toplantısı"
	_, err := svc.CreateEvent(ctx, testOrgID, testUserID, input, start)
	require.NoError(t, err)

	changes := models.Event{Title: "Gençlik Toplantısı", Location: "Gençlik salonu"}
	updated, err := svc.UpdateEvent(ctx, testOrgID, testUserID, "Gençlik Toplantısı", changes, start)
	require.NoError(t, err)
	assert.True(t, updated.IsMaster)
	assert.Equal(t, "Gençlik salonu", updated.Location)
}

func TestDeleteSeriesRemovesMasterAndInstances(t *testing.T) {
	db := setupEventDB(t)
	svc := NewEventServiceWithDB(db)
	ctx := context.Background()
	start := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	master, err := svc.CreateEvent(ctx, testOrgID, testUserID, weeklyInput(start), start)
	require.NoError(t, err)
	require.Greater(t, countRows(t, db, "series_key = ?", master.SeriesKey), int64(1))

	require.NoError(t, svc.DeleteEvent(ctx, testOrgID, testUserID, master.SeriesKey))

	// Soft delete: normal sorgular hiçbir satır görmemeli.
	assert.EqualValues(t, 0, countRows(t, db, "series_key = ?", master.SeriesKey))

	var deleted int64
	require.NoError(t, db.Unscoped().Model(&models.Event{}).
		Where("series_key = ? AND deleted_at IS NOT NULL", master.SeriesKey).
		Count(&deleted).Error)
	assert.EqualValues(t, 27, deleted, "master + 26 instance soft delete edilmiş olmalı")
}

func TestDeleteStandaloneByKey(t *testing.T) {
	db := setupEventDB(t)
	svc := NewEventServiceWithDB(db)
	ctx := context.Background()
	start := time.Date(2025, 4, 12, 9, 0, 0, 0, time.UTC)

	input := models.Event{Title: "Tek Seferlik Seminer", StartTime: start, EndTime: start.Add(2 * time.Hour)}
	created, err := svc.CreateEvent(ctx, testOrgID, testUserID, input, start)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(ctx, testOrgID, testUserID, created.EventKey))
	assert.EqualValues(t, 0, countRows(t, db, "event_key = ?", created.EventKey))

	err = svc.DeleteEvent(ctx, testOrgID, testUserID, created.EventKey)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEnsureHorizonExtendsAndIsIdempotent(t *testing.T) {
	db := setupEventDB(t)
	svc := NewEventServiceWithDB(db)
	ctx := context.Background()
	start := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	master, err := svc.CreateEvent(ctx, testOrgID, testUserID, weeklyInput(start), start)
	require.NoError(t, err)

	var before []models.Event
	require.NoError(t, db.Where("series_key = ? AND is_master = ?", master.SeriesKey, false).
		Order("start_time asc").Find(&before).Error)
	require.Len(t, before, 26)
	latestBefore := before[len(before)-1].StartTime.UTC()

	// Haziran başında son instance (29 Haziran) 3 aylık ileri bakışın içinde
	// kalır; ufuk son instance'dan 6 ay ileri genişletilmeli.
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	created, err := svc.EnsureHorizon(ctx, testOrgID, master.SeriesKey, now)
	require.NoError(t, err)
	assert.Greater(t, created, 0)

	var after []models.Event
	require.NoError(t, db.Where("series_key = ? AND is_master = ?", master.SeriesKey, false).
		Order("start_time asc").Find(&after).Error)
	assert.Len(t, after, 26+created)

	// Mevcut satırlar dokunulmadan kalır; yeni satırlar eskinin devamıdır.
	for i, inst := range after[:26] {
		assert.Equal(t, before[i].EventKey, inst.EventKey)
		assert.Equal(t, before[i].StartTime.UTC(), inst.StartTime.UTC())
	}
	assert.Equal(t, latestBefore.AddDate(0, 0, 7), after[26].StartTime.UTC(),
		"ilk yeni instance çapanın bir hafta sonrasıdır")

	// İkinci çağrı: ufuk artık dolu, hiçbir şey eklenmez.
	createdAgain, err := svc.EnsureHorizon(ctx, testOrgID, master.SeriesKey, now)
	require.NoError(t, err)
	assert.Zero(t, createdAgain)
}

func TestEnsureHorizonFullWindowIsNoop(t *testing.T) {
	db := setupEventDB(t)
	svc := NewEventServiceWithDB(db)
	ctx := context.Background()
	start := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	master, err := svc.CreateEvent(ctx, testOrgID, testUserID, weeklyInput(start), start)
	require.NoError(t, err)

	// Oluşturma anında pencere 6 ay dolu, 3 aylık bakış fazlasıyla karşılanır.
	created, err := svc.EnsureHorizon(ctx, testOrgID, master.SeriesKey, start)
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestEnsureHorizonRejectsNonSeries(t *testing.T) {
	db := setupEventDB(t)
	svc := NewEventServiceWithDB(db)
	ctx := context.Background()
	start := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	input := models.Event{Title: "Tekil", StartTime: start, EndTime: start.Add(time.Hour)}
	created, err := svc.CreateEvent(ctx, testOrgID, testUserID, input, start)
	require.NoError(t, err)

	_, err = svc.EnsureHorizon(ctx, testOrgID, created.EventKey, start)
	assert.ErrorIs(t, err, ErrEventNotASeries)

	_, err = svc.EnsureHorizon(ctx, testOrgID, "yok-boyle-seri", start)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestGetUpcomingEventsOneRowPerSeries(t *testing.T) {
	db := setupEventDB(t)
	svc := NewEventServiceWithDB(db)
	ctx := context.Background()
	seriesStart := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	master, err := svc.CreateEvent(ctx, testOrgID, testUserID, weeklyInput(seriesStart), seriesStart)
	require.NoError(t, err)

	soloStart := time.Date(2025, 2, 1, 14, 0, 0, 0, time.UTC)
	solo := models.Event{Title: "Bahar Pikniği", StartTime: soloStart, EndTime: soloStart.Add(3 * time.Hour)}
	_, err = svc.CreateEvent(ctx, testOrgID, testUserID, solo, soloStart)
	require.NoError(t, err)

	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	upcoming, err := svc.GetUpcomingEvents(ctx, testOrgID, now)
	require.NoError(t, err)

	// Seri tek satıra iner (12 Ocak), tekil etkinlik aynen geçer.
	require.Len(t, upcoming, 2)
	assert.Equal(t, time.Date(2025, 1, 12, 10, 0, 0, 0, time.UTC), upcoming[0].StartTime.UTC())
	assert.Equal(t, master.SeriesKey, upcoming[0].SeriesKey)
	assert.Equal(t, "Bahar Pikniği", upcoming[1].Title)
}

func TestGetEventsPaginatedListsMastersAndStandalone(t *testing.T) {
	db := setupEventDB(t)
	svc := NewEventServiceWithDB(db)
	ctx := context.Background()
	start := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	_, err := svc.CreateEvent(ctx, testOrgID, testUserID, weeklyInput(start), start)
	require.NoError(t, err)
	soloStart := start.AddDate(0, 0, 3)
	_, err = svc.CreateEvent(ctx, testOrgID, testUserID,
		models.Event{Title: "Tekil", StartTime: soloStart, EndTime: soloStart.Add(time.Hour)}, soloStart)
	require.NoError(t, err)

	params := queryparams.DefaultListParams("start_time")
	result, err := svc.GetEventsPaginated(ctx, testOrgID, params)
	require.NoError(t, err)

	events, ok := result.Data.([]models.Event)
	require.True(t, ok)
	// Instance satırları liste ekranına sızmaz.
	assert.Len(t, events, 2)
	assert.EqualValues(t, 2, result.Meta.TotalItems)
}
