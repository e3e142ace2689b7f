package handlers // handlers/dashboard paketi

import (
	"time"

	"cemaat.app/configs/configslog"
	"cemaat.app/pkg/flashmessages"
	"cemaat.app/pkg/recurrence"
	"cemaat.app/pkg/renderer"
	"cemaat.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardHomeHandler sistem yöneticisinin genel bakış sayfası için handler.
type DashboardHomeHandler struct {
	orgService   services.IOrganizationService
	eventService services.IEventService
}

// NewDashboardHomeHandler yeni bir DashboardHomeHandler örneği oluşturur.
func NewDashboardHomeHandler() *DashboardHomeHandler {
	return &DashboardHomeHandler{
		orgService:   services.NewOrganizationService(),
		eventService: services.NewEventService(),
	}
}

// OrganizationStats bir organizasyonun dashboard satırı.
type OrganizationStats struct {
	OrganizationID   uint
	OrganizationName string
	TotalEvents      int
	RecurringSeries  int
	UpcomingEvents   int
}

// DashboardHome tüm organizasyonların etkinlik istatistiklerini listeler.
// Bir organizasyonun sorgusu başarısız olursa satırı atlanır, sayfa düşmez.
func (h *DashboardHomeHandler) DashboardHome(c *fiber.Ctx) error {
	orgs, err := h.orgService.GetAllOrganizations(c.UserContext())
	if err != nil {
		configslog.Log.Error("Dashboard - Home: organizasyonlar alınamadı", zap.Error(err))
	}

	now := time.Now().UTC()
	var stats []OrganizationStats
	for _, org := range orgs {
		events, err := h.eventService.GetAllEventsForStats(c.UserContext(), org.ID)
		if err != nil {
			configslog.Log.Error("Dashboard - Home: etkinlik istatistiği alınamadı",
				zap.Uint("organizationID", org.ID), zap.Error(err))
			continue
		}

		row := OrganizationStats{OrganizationID: org.ID, OrganizationName: org.Name}
		seriesKeys := make(map[string]struct{})
		for _, e := range events {
			row.TotalEvents++
			if e.IsMaster && e.RecurrencePattern != recurrence.PatternNone {
				seriesKeys[e.SeriesKey] = struct{}{}
			}
			if e.StartTime.After(now) {
				row.UpcomingEvents++
			}
		}
		row.RecurringSeries = len(seriesKeys)
		stats = append(stats, row)
	}

	flash, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title": "Genel Bakış",
		"Stats": stats,
	}
	renderer.SetFlashMessages(renderData, flash)
	return renderer.Render(c, "dashboard/home", "layouts/dashboard_layout", renderData)
}
