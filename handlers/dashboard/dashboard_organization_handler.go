package handlers // handlers/dashboard paketi

import (
	"cemaat.app/configs/configslog"
	"cemaat.app/models"
	"cemaat.app/pkg/flashmessages"
	"cemaat.app/pkg/renderer"
	"cemaat.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardOrganizationHandler organizasyon yönetimi için handler (sistem).
type DashboardOrganizationHandler struct {
	service services.IOrganizationService
}

// NewDashboardOrganizationHandler yeni bir örnek oluşturur.
func NewDashboardOrganizationHandler() *DashboardOrganizationHandler {
	return &DashboardOrganizationHandler{service: services.NewOrganizationService()}
}

func parseOrganizationForm(c *fiber.Ctx) models.Organization {
	return models.Organization{
		Name:     c.FormValue("name"),
		City:     c.FormValue("city"),
		Address:  c.FormValue("address"),
		Phone:    c.FormValue("phone"),
		Email:    c.FormValue("email"),
		IsActive: c.FormValue("is_active", "on") == "on",
	}
}

// ListOrganizations tüm organizasyonları listeler.
func (h *DashboardOrganizationHandler) ListOrganizations(c *fiber.Ctx) error {
	orgs, err := h.service.GetAllOrganizations(c.UserContext())

	renderData := fiber.Map{
		"Title":         "Organizasyonlar",
		"Organizations": orgs,
	}
	flash, _ := flashmessages.GetFlashMessages(c)
	renderer.SetFlashMessages(renderData, flash)

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Organizasyonlar listelenirken bir hata oluştu."
		configslog.Log.Error("Dashboard - ListOrganizations Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/organizations/list", "layouts/dashboard_layout", renderData)
}

// ShowCreateOrganization yeni organizasyon formunu gösterir.
func (h *DashboardOrganizationHandler) ShowCreateOrganization(c *fiber.Ctx) error {
	flash, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{"Title": "Yeni Organizasyon"}
	renderer.SetFlashMessages(renderData, flash)
	return renderer.Render(c, "dashboard/organizations/create", "layouts/dashboard_layout", renderData)
}

// CreateOrganization yeni organizasyon oluşturur.
func (h *DashboardOrganizationHandler) CreateOrganization(c *fiber.Ctx) error {
	actorID, _ := c.Locals("userID").(uint)

	org := parseOrganizationForm(c)
	if _, err := h.service.CreateOrganization(c.UserContext(), actorID, org); err != nil {
		configslog.Log.Error("Dashboard - CreateOrganization Error", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Oluşturma hatası: "+err.Error())
		return c.Redirect("/dashboard/organizations/create", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Organizasyon oluşturuldu.")
	return c.Redirect("/dashboard/organizations", fiber.StatusFound)
}

// ShowUpdateOrganization düzenleme formunu gösterir.
func (h *DashboardOrganizationHandler) ShowUpdateOrganization(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/organizations")
	}

	org, err := h.service.GetOrganizationByID(c.UserContext(), uint(id))
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Organizasyon bulunamadı.")
		return c.Redirect("/dashboard/organizations")
	}

	flash, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":        "Organizasyonu Düzenle",
		"Organization": org,
	}
	renderer.SetFlashMessages(renderData, flash)
	return renderer.Render(c, "dashboard/organizations/update", "layouts/dashboard_layout", renderData)
}

// UpdateOrganization organizasyon bilgilerini günceller.
func (h *DashboardOrganizationHandler) UpdateOrganization(c *fiber.Ctx) error {
	actorID, _ := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/organizations")
	}
	redirectPath := c.Path()

	changes := parseOrganizationForm(c)
	if err := h.service.UpdateOrganization(c.UserContext(), actorID, uint(id), changes); err != nil {
		configslog.Log.Error("Dashboard - UpdateOrganization Error", zap.Int("id", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Güncelleme hatası: "+err.Error())
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Organizasyon güncellendi.")
	return c.Redirect(redirectPath, fiber.StatusFound)
}
