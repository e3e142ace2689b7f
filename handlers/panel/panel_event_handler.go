package handlers // handlers/panel paketi

import (
	"net/http"
	"strconv"
	"time"

	"cemaat.app/configs/configslog"
	"cemaat.app/models"
	"cemaat.app/pkg/flashmessages"
	"cemaat.app/pkg/queryparams"
	"cemaat.app/pkg/recurrence"
	"cemaat.app/pkg/renderer"
	"cemaat.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HTML datetime-local girişlerinin biçimi.
const formTimeLayout = "2006-01-02T15:04"

// PanelEventHandler organizasyonun etkinlikleri için handler.
type PanelEventHandler struct {
	service services.IEventService
}

// NewPanelEventHandler yeni bir PanelEventHandler örneği oluşturur.
func NewPanelEventHandler() *PanelEventHandler {
	return &PanelEventHandler{service: services.NewEventService()}
}

func sessionScope(c *fiber.Ctx) (orgID, userID uint, ok bool) {
	userID, uok := c.Locals("userID").(uint)
	orgID, ook := c.Locals("organizationID").(uint)
	if !uok || userID == 0 || !ook || orgID == 0 {
		return 0, 0, false
	}
	return orgID, userID, true
}

// parseEventForm form alanlarını Event modeline çevirir.
func parseEventForm(c *fiber.Ctx) (models.Event, error) {
	var event models.Event
	event.Title = c.FormValue("title")
	event.Description = c.FormValue("description")
	event.Location = c.FormValue("location")
	event.RecurrencePattern = recurrence.Pattern(c.FormValue("recurrence_pattern"))
	event.RSVPEnabled = c.FormValue("rsvp_enabled") == "on"
	event.AttendanceEnabled = c.FormValue("attendance_enabled") == "on"

	start, err := time.ParseInLocation(formTimeLayout, c.FormValue("start_time"), time.UTC)
	if err != nil {
		return event, err
	}
	event.StartTime = start

	if v := c.FormValue("end_time"); v != "" {
		end, err := time.ParseInLocation(formTimeLayout, v, time.UTC)
		if err != nil {
			return event, err
		}
		event.EndTime = end
	} else {
		event.EndTime = start.Add(time.Hour)
	}

	if event.RecurrencePattern == recurrence.PatternMonthlyWeekday {
		ordinal, _ := strconv.Atoi(c.FormValue("week_ordinal"))
		weekday, _ := strconv.Atoi(c.FormValue("weekday"))
		event.RecurrenceWeekOrdinal = ordinal
		event.RecurrenceWeekday = weekday
	}
	return event, nil
}

// ListEvents organizasyonun etkinliklerini sayfalı listeler. Tekrarlı
// serilerin üretilmiş tekil satırları burada görünmez; seri tek satırdır.
func (h *PanelEventHandler) ListEvents(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("start_time")
	}
	params.Validate()

	paginatedResult, err := h.service.GetEventsPaginated(c.UserContext(), orgID, params)

	renderData := fiber.Map{
		"Title":  "Etkinlikler",
		"Result": paginatedResult,
		"Params": params,
	}
	flash, _ := flashmessages.GetFlashMessages(c)
	renderer.SetFlashMessages(renderData, flash)

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Etkinlikler listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Event{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Panel - ListEvents Error", zap.Uint("userID", userID), zap.Error(err))
	}
	return renderer.Render(c, "panel/events/list", "layouts/panel_layout", renderData, http.StatusOK)
}

// UpcomingEvents yaklaşan etkinlik listesini gösterir: tekil satırlar ve her
// tekrarlı serinin bugünden sonraki ilk tekrarı.
func (h *PanelEventHandler) UpcomingEvents(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	events, err := h.service.GetUpcomingEvents(c.UserContext(), orgID, time.Now().UTC())
	renderData := fiber.Map{
		"Title":  "Yaklaşan Etkinlikler",
		"Events": events,
	}
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Yaklaşan etkinlikler alınırken bir hata oluştu."
		configslog.Log.Error("Panel - UpcomingEvents Error", zap.Uint("userID", userID), zap.Error(err))
	}
	return renderer.Render(c, "panel/events/upcoming", "layouts/panel_layout", renderData)
}

// ShowCreateEvent yeni etkinlik formunu gösterir.
func (h *PanelEventHandler) ShowCreateEvent(c *fiber.Ctx) error {
	flash, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":    "Yeni Etkinlik Oluştur",
		"Patterns": []recurrence.Pattern{recurrence.PatternDaily, recurrence.PatternWeekly, recurrence.PatternBiweekly, recurrence.PatternMonthly, recurrence.PatternMonthlyWeekday},
	}
	renderer.SetFlashMessages(renderData, flash)
	return renderer.Render(c, "panel/events/create", "layouts/panel_layout", renderData)
}

// CreateEvent yeni etkinlik veya tekrarlı seri oluşturur. Tekrarlı desen
// seçilmişse seri ana kaydıyla birlikte altı aylık pencere doldurulur.
func (h *PanelEventHandler) CreateEvent(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	input, err := parseEventForm(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect("/panel/events/create", fiber.StatusSeeOther)
	}

	created, err := h.service.CreateEvent(c.UserContext(), orgID, userID, input, time.Now().UTC())
	if err != nil {
		configslog.Log.Error("Panel - CreateEvent Error", zap.Uint("userID", userID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Oluşturma hatası: "+err.Error())
		return c.Redirect("/panel/events/create", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Etkinlik başarıyla oluşturuldu: "+created.Title)
	return c.Redirect("/panel/events", fiber.StatusFound)
}

// ShowUpdateEvent etkinlik düzenleme formunu gösterir.
func (h *PanelEventHandler) ShowUpdateEvent(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	key := c.Params("key")
	event, err := h.service.GetEventByKey(c.UserContext(), orgID, key)
	if err != nil {
		if err != services.ErrEventNotFound {
			configslog.Log.Error("Panel - ShowUpdateEvent Error", zap.String("key", key), zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Etkinlik bulunamadı.")
		return c.Redirect("/panel/events")
	}

	flash, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title": "Etkinliği Düzenle",
		"Event": event,
	}
	renderer.SetFlashMessages(renderData, flash)
	return renderer.Render(c, "panel/events/update", "layouts/panel_layout", renderData)
}

// UpdateEvent etkinliği günceller. Tekrarlı seride değişiklik tüm gelecekteki
// tekrarlara yansıtılır.
func (h *PanelEventHandler) UpdateEvent(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	key := c.Params("key")
	redirectPathOnError := "/panel/events/update/" + key

	changes, err := parseEventForm(c)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return c.Redirect(redirectPathOnError, fiber.StatusSeeOther)
	}

	_, err = h.service.UpdateEvent(c.UserContext(), orgID, userID, key, changes, time.Now().UTC())
	if err != nil {
		if err == services.ErrEventNotFound {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Etkinlik bulunamadı.")
			return c.Redirect("/panel/events")
		}
		configslog.Log.Error("Panel - UpdateEvent Error", zap.String("key", key), zap.Uint("userID", userID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Güncelleme hatası: "+err.Error())
		return c.Redirect(redirectPathOnError, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Etkinlik başarıyla güncellendi.")
	return c.Redirect(redirectPathOnError, fiber.StatusFound)
}

// DeleteEvent etkinliği siler; seri verilmişse tüm tekrarlarıyla birlikte.
func (h *PanelEventHandler) DeleteEvent(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	key := c.Params("key")
	if err := h.service.DeleteEvent(c.UserContext(), orgID, userID, key); err != nil {
		if err != services.ErrEventNotFound {
			configslog.Log.Error("Panel - DeleteEvent Error", zap.String("key", key), zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Silme hatası: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Etkinlik başarıyla silindi.")
	}
	return c.Redirect("/panel/events", fiber.StatusSeeOther)
}
