package routes

import (
	panel_handlers "cemaat.app/handlers/panel"
	"cemaat.app/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki rotaları ve middleware'leri tanımlar.
// Sadece organizasyon kullanıcılarının (IsSystem == false) erişimine izin verilir.
func registerPanelRoutes(app *fiber.App) {
	panelHomeHandler := panel_handlers.NewPanelHomeHandler()
	eventHandler := panel_handlers.NewPanelEventHandler()
	memberHandler := panel_handlers.NewPanelMemberHandler()
	donationHandler := panel_handlers.NewPanelDonationHandler()
	checkinHandler := panel_handlers.NewPanelCheckinHandler()

	panelGroup := app.Group("/panel")
	panelGroup.Use(
		middlewares.AuthMiddleware,   // 1. Giriş yapmış mı?
		middlewares.StatusMiddleware, // 2. Hesap aktif mi?
		middlewares.RequireUser(),    // 3. Organizasyon kullanıcısı mı?
	)

	// --- Panel Ana Sayfa ---
	panelGroup.Get("/home", panelHomeHandler.PanelHomeHandler)

	// --- Etkinlikler ---
	panelGroup.Get("/events", eventHandler.ListEvents)
	panelGroup.Get("/events/upcoming", eventHandler.UpcomingEvents)
	panelGroup.Get("/events/create", eventHandler.ShowCreateEvent)
	panelGroup.Post("/events/create", eventHandler.CreateEvent)
	panelGroup.Get("/events/update/:key", eventHandler.ShowUpdateEvent)
	panelGroup.Post("/events/update/:key", eventHandler.UpdateEvent)
	panelGroup.Post("/events/delete/:key", eventHandler.DeleteEvent)
	panelGroup.Delete("/events/delete/:key", eventHandler.DeleteEvent)

	// --- Yoklama ve LCV ---
	panelGroup.Get("/events/checkin/:key", checkinHandler.ShowCheckin)
	panelGroup.Post("/events/checkin/:key", checkinHandler.Checkin)
	panelGroup.Post("/events/rsvp/:key", checkinHandler.SubmitRSVP)

	// --- Üyeler ---
	panelGroup.Get("/members", memberHandler.ListMembers)
	panelGroup.Get("/members/create", memberHandler.ShowCreateMember)
	panelGroup.Post("/members/create", memberHandler.CreateMember)
	panelGroup.Get("/members/update/:id", memberHandler.ShowUpdateMember)
	panelGroup.Post("/members/update/:id", memberHandler.UpdateMember)
	panelGroup.Post("/members/delete/:id", memberHandler.DeleteMember)
	panelGroup.Delete("/members/delete/:id", memberHandler.DeleteMember)

	// --- Bağışlar ---
	panelGroup.Get("/donations", donationHandler.ListDonations)
	panelGroup.Get("/donations/create", donationHandler.ShowCreateDonation)
	panelGroup.Post("/donations/create", donationHandler.CreateDonation)
	panelGroup.Post("/donations/delete/:id", donationHandler.DeleteDonation)
	panelGroup.Delete("/donations/delete/:id", donationHandler.DeleteDonation)
}
