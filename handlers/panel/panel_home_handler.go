package handlers // handlers/panel paketi

import (
	"time"

	"cemaat.app/configs/configslog"
	"cemaat.app/pkg/flashmessages"
	"cemaat.app/pkg/renderer"
	"cemaat.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelHomeHandler panel ana sayfası için handler.
type PanelHomeHandler struct {
	eventService      services.IEventService
	memberService     services.IMemberService
	donationService   services.IDonationService
	attendanceService services.IAttendanceService
}

// NewPanelHomeHandler yeni bir PanelHomeHandler örneği oluşturur.
func NewPanelHomeHandler() *PanelHomeHandler {
	return &PanelHomeHandler{
		eventService:      services.NewEventService(),
		memberService:     services.NewMemberService(),
		donationService:   services.NewDonationService(),
		attendanceService: services.NewAttendanceService(),
	}
}

// PanelHomeHandler organizasyon özetini gösterir: yaklaşan etkinlikler, üye
// sayısı, bu ayın bağış toplamı ve toplam yoklama sayısı. Tek bir özet
// sorgusunun hatası sayfayı düşürmez; ilgili kutu boş kalır.
func (h *PanelHomeHandler) PanelHomeHandler(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	upcoming, err := h.eventService.GetUpcomingEvents(c.UserContext(), orgID, now)
	if err != nil {
		configslog.Log.Error("Panel - Home: yaklaşan etkinlikler alınamadı",
			zap.Uint("userID", userID), zap.Error(err))
	}
	memberCount, err := h.memberService.GetMemberCount(c.UserContext(), orgID)
	if err != nil {
		configslog.Log.Error("Panel - Home: üye sayısı alınamadı", zap.Error(err))
	}
	donationTotal, err := h.donationService.GetDonationTotal(c.UserContext(), orgID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		configslog.Log.Error("Panel - Home: bağış toplamı alınamadı", zap.Error(err))
	}
	attendanceCount, err := h.attendanceService.GetAttendanceCount(c.UserContext(), orgID)
	if err != nil {
		configslog.Log.Error("Panel - Home: yoklama sayısı alınamadı", zap.Error(err))
	}

	flash, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":           "Panel",
		"UpcomingEvents":  upcoming,
		"MemberCount":     memberCount,
		"DonationTotal":   donationTotal,
		"AttendanceCount": attendanceCount,
	}
	renderer.SetFlashMessages(renderData, flash)
	return renderer.Render(c, "panel/home", "layouts/panel_layout", renderData)
}
