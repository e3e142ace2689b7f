package handlers // handlers/panel paketi

import (
	"strconv"
	"time"

	"cemaat.app/configs/configslog"
	"cemaat.app/pkg/flashmessages"
	"cemaat.app/pkg/renderer"
	"cemaat.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelCheckinHandler etkinlik yoklaması ve LCV yanıtları için handler.
type PanelCheckinHandler struct {
	service      services.IAttendanceService
	eventService services.IEventService
}

// NewPanelCheckinHandler yeni bir PanelCheckinHandler örneği oluşturur.
func NewPanelCheckinHandler() *PanelCheckinHandler {
	return &PanelCheckinHandler{
		service:      services.NewAttendanceService(),
		eventService: services.NewEventService(),
	}
}

// ShowCheckin etkinliğin yoklama ekranını gösterir: etkinlik bilgisi, mevcut
// check-in listesi ve varsa LCV yanıtları.
func (h *PanelCheckinHandler) ShowCheckin(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	key := c.Params("key")
	event, err := h.eventService.GetEventByKey(c.UserContext(), orgID, key)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Etkinlik bulunamadı.")
		return c.Redirect("/panel/events")
	}

	records, err := h.service.GetAttendanceForEvent(c.UserContext(), orgID, key)
	if err != nil {
		configslog.Log.Error("Panel - ShowCheckin Error", zap.String("key", key), zap.Uint("userID", userID), zap.Error(err))
	}
	rsvps, _ := h.service.GetRSVPsForEvent(c.UserContext(), orgID, key)

	flash, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":      "Yoklama: " + event.Title,
		"Event":      event,
		"Attendance": records,
		"RSVPs":      rsvps,
	}
	renderer.SetFlashMessages(renderData, flash)
	return renderer.Render(c, "panel/events/checkin", "layouts/panel_layout", renderData)
}

// Checkin seçilen üyeyi etkinliğe işler. Aynı üye için tekrar gönderim kopya
// kayıt üretmez.
func (h *PanelCheckinHandler) Checkin(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	key := c.Params("key")
	redirectPath := "/panel/events/checkin/" + key

	memberID, err := strconv.Atoi(c.FormValue("member_id"))
	if err != nil || memberID <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz üye seçimi.")
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	_, err = h.service.CheckIn(c.UserContext(), orgID, userID, key, uint(memberID), time.Now().UTC())
	if err != nil {
		configslog.Log.Error("Panel - Checkin Error", zap.String("key", key), zap.Uint("userID", userID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Check-in hatası: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Check-in kaydedildi.")
	}
	return c.Redirect(redirectPath, fiber.StatusSeeOther)
}

// SubmitRSVP üyenin LCV yanıtını kaydeder.
func (h *PanelCheckinHandler) SubmitRSVP(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	key := c.Params("key")
	redirectPath := "/panel/events/checkin/" + key

	memberID, err := strconv.Atoi(c.FormValue("member_id"))
	if err != nil || memberID <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz üye seçimi.")
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}
	guestCount, _ := strconv.Atoi(c.FormValue("guest_count", "0"))

	_, err = h.service.SubmitRSVP(c.UserContext(), orgID, userID, key, uint(memberID),
		c.FormValue("status"), guestCount, time.Now().UTC())
	if err != nil {
		configslog.Log.Error("Panel - SubmitRSVP Error", zap.String("key", key), zap.Uint("userID", userID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "LCV hatası: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "LCV yanıtı kaydedildi.")
	}
	return c.Redirect(redirectPath, fiber.StatusSeeOther)
}
