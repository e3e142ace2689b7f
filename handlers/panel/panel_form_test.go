package handlers

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"cemaat.app/models"
	"cemaat.app/pkg/recurrence"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postForm verilen form alanlarıyla handler'ı çağırır; parse sonuçları
// capture fonksiyonuna düşer.
func postForm(t *testing.T, form url.Values, capture fiber.Handler) {
	t.Helper()
	app := fiber.New()
	app.Post("/test", capture)

	req := httptest.NewRequest(fiber.MethodPost, "/test", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestParseEventFormMonthlyWeekday(t *testing.T) {
	form := url.Values{}
	form.Set("title", "Aylık Kahvaltı")
	form.Set("start_time", "2025-01-07T09:00")
	form.Set("recurrence_pattern", string(recurrence.PatternMonthlyWeekday))
	form.Set("week_ordinal", "1")
	form.Set("weekday", "2")
	form.Set("attendance_enabled", "on")

	var got models.Event
	var parseErr error
	postForm(t, form, func(c *fiber.Ctx) error {
		got, parseErr = parseEventForm(c)
		return c.SendStatus(fiber.StatusOK)
	})

	require.NoError(t, parseErr)
	assert.Equal(t, "Aylık Kahvaltı", got.Title)
	assert.Equal(t, time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC), got.StartTime)
	assert.Equal(t, got.StartTime.Add(time.Hour), got.EndTime, "bitiş verilmezse +1 saat")
	assert.Equal(t, 1, got.RecurrenceWeekOrdinal)
	assert.Equal(t, 2, got.RecurrenceWeekday, "hafta günü Salı olarak işlenir")
	assert.True(t, got.AttendanceEnabled)
	assert.False(t, got.RSVPEnabled)
}

func TestParseEventFormRejectsBadStart(t *testing.T) {
	form := url.Values{}
	form.Set("title", "Bozuk Tarih")
	form.Set("start_time", "07.01.2025 09:00")

	var parseErr error
	postForm(t, form, func(c *fiber.Ctx) error {
		_, parseErr = parseEventForm(c)
		return c.SendStatus(fiber.StatusOK)
	})

	assert.Error(t, parseErr)
}

func TestParseDonationForm(t *testing.T) {
	form := url.Values{}
	form.Set("amount", "250.50")
	form.Set("fund", models.DonationFundMissions)
	form.Set("member_id", "42")
	form.Set("donated_at", "2025-03-15")

	var got models.Donation
	postForm(t, form, func(c *fiber.Ctx) error {
		got = parseDonationForm(c)
		return c.SendStatus(fiber.StatusOK)
	})

	assert.Equal(t, 250.50, got.Amount)
	assert.Equal(t, "TRY", got.Currency)
	assert.Equal(t, models.DonationFundMissions, got.Fund)
	require.NotNil(t, got.MemberID)
	assert.EqualValues(t, 42, *got.MemberID)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), got.DonatedAt)
}
