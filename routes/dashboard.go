package routes

import (
	dashboard_handlers "cemaat.app/handlers/dashboard"
	"cemaat.app/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /dashboard altındaki rotaları tanımlar.
// Sadece sistem yöneticilerinin (IsSystem == true) erişimine izin verilir.
func registerDashboardRoutes(app *fiber.App) {
	homeHandler := dashboard_handlers.NewDashboardHomeHandler()
	orgHandler := dashboard_handlers.NewDashboardOrganizationHandler()

	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Use(
		middlewares.AuthMiddleware,
		middlewares.StatusMiddleware,
		middlewares.RequireSystem(),
	)

	dashboardGroup.Get("/home", homeHandler.DashboardHome)

	dashboardGroup.Get("/organizations", orgHandler.ListOrganizations)
	dashboardGroup.Get("/organizations/create", orgHandler.ShowCreateOrganization)
	dashboardGroup.Post("/organizations/create", orgHandler.CreateOrganization)
	dashboardGroup.Get("/organizations/update/:id", orgHandler.ShowUpdateOrganization)
	dashboardGroup.Post("/organizations/update/:id", orgHandler.UpdateOrganization)
}
