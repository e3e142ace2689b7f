package handlers // handlers/panel paketi

import (
	"net/http"
	"strconv"
	"time"

	"cemaat.app/configs/configslog"
	"cemaat.app/models"
	"cemaat.app/pkg/flashmessages"
	"cemaat.app/pkg/queryparams"
	"cemaat.app/pkg/renderer"
	"cemaat.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelDonationHandler organizasyonun bağış kayıtları için handler.
type PanelDonationHandler struct {
	service services.IDonationService
}

// NewPanelDonationHandler yeni bir PanelDonationHandler örneği oluşturur.
func NewPanelDonationHandler() *PanelDonationHandler {
	return &PanelDonationHandler{service: services.NewDonationService()}
}

func parseDonationForm(c *fiber.Ctx) models.Donation {
	amount, _ := strconv.ParseFloat(c.FormValue("amount"), 64)
	donation := models.Donation{
		Amount:   amount,
		Currency: c.FormValue("currency", "TRY"),
		Fund:     c.FormValue("fund"),
		Notes:    c.FormValue("notes"),
	}
	if v := c.FormValue("member_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil && id > 0 {
			mid := uint(id)
			donation.MemberID = &mid
		}
	}
	if v := c.FormValue("donated_at"); v != "" {
		if t, err := time.ParseInLocation(formDateLayout, v, time.UTC); err == nil {
			donation.DonatedAt = t
		}
	} else {
		donation.DonatedAt = time.Now().UTC()
	}
	return donation
}

// ListDonations organizasyonun bağışlarını sayfalı listeler.
func (h *PanelDonationHandler) ListDonations(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("donated_at")
	}
	params.Validate()

	paginatedResult, err := h.service.GetDonationsPaginated(c.UserContext(), orgID, params)

	renderData := fiber.Map{
		"Title":  "Bağışlar",
		"Result": paginatedResult,
		"Params": params,
		"Funds":  []string{models.DonationFundGeneral, models.DonationFundBuilding, models.DonationFundCharity, models.DonationFundMissions},
	}
	flash, _ := flashmessages.GetFlashMessages(c)
	renderer.SetFlashMessages(renderData, flash)

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Bağışlar listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Donation{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Panel - ListDonations Error", zap.Uint("userID", userID), zap.Error(err))
	}
	return renderer.Render(c, "panel/donations/list", "layouts/panel_layout", renderData, http.StatusOK)
}

// ShowCreateDonation yeni bağış formunu gösterir.
func (h *PanelDonationHandler) ShowCreateDonation(c *fiber.Ctx) error {
	flash, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title": "Yeni Bağış Kaydı",
		"Funds": []string{models.DonationFundGeneral, models.DonationFundBuilding, models.DonationFundCharity, models.DonationFundMissions},
	}
	renderer.SetFlashMessages(renderData, flash)
	return renderer.Render(c, "panel/donations/create", "layouts/panel_layout", renderData)
}

// CreateDonation yeni bağış kaydı oluşturur.
func (h *PanelDonationHandler) CreateDonation(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	donation := parseDonationForm(c)
	if _, err := h.service.CreateDonation(c.UserContext(), orgID, userID, donation); err != nil {
		configslog.Log.Error("Panel - CreateDonation Error", zap.Uint("userID", userID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Oluşturma hatası: "+err.Error())
		return c.Redirect("/panel/donations/create", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Bağış başarıyla kaydedildi.")
	return c.Redirect("/panel/donations", fiber.StatusFound)
}

// DeleteDonation bağış kaydını siler.
func (h *PanelDonationHandler) DeleteDonation(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/donations")
	}

	if err := h.service.DeleteDonation(c.UserContext(), orgID, userID, uint(id)); err != nil {
		if err != services.ErrDonationNotFound {
			configslog.Log.Error("Panel - DeleteDonation Error", zap.Int("id", id), zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Silme hatası: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Bağış kaydı silindi.")
	}
	return c.Redirect("/panel/donations", fiber.StatusSeeOther)
}
