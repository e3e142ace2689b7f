package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"cemaat.app/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAttendanceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "attendance.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Event{}, &models.Member{}, &models.AttendanceRecord{}, &models.EventRSVP{}))
	return db
}

func seedCheckinEvent(t *testing.T, db *gorm.DB, key string, rsvpEnabled, attendanceEnabled bool) *models.Event {
	t.Helper()
	start := time.Date(2025, 1, 12, 10, 0, 0, 0, time.UTC)
	event := &models.Event{
		EventKey:          key,
		OrganizationID:    testOrgID,
		Title:             "Pazar İbadeti",
		StartTime:         start,
		EndTime:           start.Add(time.Hour),
		RSVPEnabled:       rsvpEnabled,
		AttendanceEnabled: attendanceEnabled,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func seedMember(t *testing.T, db *gorm.DB) *models.Member {
	t.Helper()
	member := &models.Member{
		OrganizationID: testOrgID,
		FirstName:      "Ayşe",
		LastName:       "Yılmaz",
		IsActive:       true,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func TestCheckInIsIdempotentPerMember(t *testing.T) {
	db := setupAttendanceDB(t)
	svc := NewAttendanceServiceWithDB(db)
	ctx := context.Background()

	event := seedCheckinEvent(t, db, "etkinlik-1", false, true)
	member := seedMember(t, db)
	now := time.Date(2025, 1, 12, 10, 5, 0, 0, time.UTC)

	first, err := svc.CheckIn(ctx, testOrgID, testUserID, event.EventKey, member.ID, now)
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	later := now.Add(10 * time.Minute)
	second, err := svc.CheckIn(ctx, testOrgID, testUserID, event.EventKey, member.ID, later)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "aynı üye için ikinci check-in kopya üretmez")

	var count int64
	require.NoError(t, db.Model(&models.AttendanceRecord{}).
		Where("event_id = ? AND member_id = ?", event.ID, member.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	records, err := svc.GetAttendanceForEvent(ctx, testOrgID, event.EventKey)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, later.UTC(), records[0].CheckedInAt.UTC(), "check-in zamanı güncellenir")
}

func TestCheckInRejectedWhenAttendanceDisabled(t *testing.T) {
	db := setupAttendanceDB(t)
	svc := NewAttendanceServiceWithDB(db)
	ctx := context.Background()

	event := seedCheckinEvent(t, db, "etkinlik-kapali", false, false)
	member := seedMember(t, db)

	// Kapalı bayrak yazıldığı gibi saklanır; INSERT onu true'ya çeviremez.
	var stored models.Event
	require.NoError(t, db.First(&stored, event.ID).Error)
	require.False(t, stored.AttendanceEnabled)

	_, err := svc.CheckIn(ctx, testOrgID, testUserID, event.EventKey, member.ID, time.Now().UTC())
	assert.ErrorIs(t, err, ErrAttendanceDisabled)
}

func TestCheckInUnknownEvent(t *testing.T) {
	db := setupAttendanceDB(t)
	svc := NewAttendanceServiceWithDB(db)

	_, err := svc.CheckIn(context.Background(), testOrgID, testUserID, "yok", 1, time.Now().UTC())
	assert.ErrorIs(t, err, ErrAttendanceEventNotFound)
}

func TestSubmitRSVPHonorsEnabledFlag(t *testing.T) {
	db := setupAttendanceDB(t)
	svc := NewAttendanceServiceWithDB(db)
	ctx := context.Background()
	member := seedMember(t, db)
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	t.Run("disabled", func(t *testing.T) {
		event := seedCheckinEvent(t, db, "etkinlik-1", false, true)
		_, err := svc.SubmitRSVP(ctx, testOrgID, testUserID, event.EventKey, member.ID,
			models.RSVPStatusAttending, 0, now)
		assert.ErrorIs(t, err, ErrRSVPDisabled)
	})

	t.Run("enabled", func(t *testing.T) {
		event := seedCheckinEvent(t, db, "etkinlik-rsvp", true, true)

		rsvp, err := svc.SubmitRSVP(ctx, testOrgID, testUserID, event.EventKey, member.ID,
			models.RSVPStatusAttending, 2, now)
		require.NoError(t, err)
		assert.Equal(t, models.RSVPStatusAttending, rsvp.Status)
		assert.Equal(t, 2, rsvp.GuestCount)

		// Yanıt değişikliği aynı kaydı günceller.
		changed, err := svc.SubmitRSVP(ctx, testOrgID, testUserID, event.EventKey, member.ID,
			models.RSVPStatusNotAttending, 0, now.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, rsvp.ID, changed.ID)

		rsvps, err := svc.GetRSVPsForEvent(ctx, testOrgID, event.EventKey)
		require.NoError(t, err)
		require.Len(t, rsvps, 1)
		assert.Equal(t, models.RSVPStatusNotAttending, rsvps[0].Status)
	})
}

func TestSubmitRSVPRejectsUnknownStatus(t *testing.T) {
	db := setupAttendanceDB(t)
	svc := NewAttendanceServiceWithDB(db)

	event := seedCheckinEvent(t, db, "etkinlik-rsvp", true, true)
	member := seedMember(t, db)

	_, err := svc.SubmitRSVP(context.Background(), testOrgID, testUserID, event.EventKey, member.ID,
		"GELMEYEBILIRIM", 0, time.Now().UTC())
	assert.ErrorIs(t, err, ErrRSVPInvalidStatus)
}
