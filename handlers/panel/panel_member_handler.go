package handlers // handlers/panel paketi

import (
	"net/http"
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

const formDateLayout = "2006-01-02"

// PanelMemberHandler organizasyonun üye kayıtları için handler.
type PanelMemberHandler struct {
	service services.IMemberService
}

// NewPanelMemberHandler yeni bir PanelMemberHandler örneği oluşturur.
func NewPanelMemberHandler() *PanelMemberHandler {
	return &PanelMemberHandler{service: services.NewMemberService()}
}

func parseMemberForm(c *fiber.Ctx) models.Member {
	member := models.Member{
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		Email:     c.FormValue("email"),
		Phone:     c.FormValue("phone"),
		Address:   c.FormValue("address"),
		Notes:     c.FormValue("notes"),
		IsActive:  c.FormValue("is_active", "on") == "on",
	}
	if v := c.FormValue("birth_date"); v != "" {
		if t, err := time.ParseInLocation(formDateLayout, v, time.UTC); err == nil {
			member.BirthDate = &t
		}
	}
	if v := c.FormValue("joined_at"); v != "" {
		if t, err := time.ParseInLocation(formDateLayout, v, time.UTC); err == nil {
			member.JoinedAt = &t
		}
	}
	return member
}

// ListMembers organizasyonun üyelerini sayfalı listeler.
func (h *PanelMemberHandler) ListMembers(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("last_name")
	}
	params.Validate()

	paginatedResult, err := h.service.GetMembersPaginated(c.UserContext(), orgID, params)

	renderData := fiber.Map{
		"Title":  "Üyeler",
		"Result": paginatedResult,
		"Params": params,
	}
	flash, _ := flashmessages.GetFlashMessages(c)
	renderer.SetFlashMessages(renderData, flash)

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Üyeler listelenirken bir hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Member{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Panel - ListMembers Error", zap.Uint("userID", userID), zap.Error(err))
	}
	return renderer.Render(c, "panel/members/list", "layouts/panel_layout", renderData, http.StatusOK)
}

// ShowCreateMember yeni üye formunu gösterir.
func (h *PanelMemberHandler) ShowCreateMember(c *fiber.Ctx) error {
	flash, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{"Title": "Yeni Üye Ekle"}
	renderer.SetFlashMessages(renderData, flash)
	return renderer.Render(c, "panel/members/create", "layouts/panel_layout", renderData)
}

// CreateMember yeni üye kaydı oluşturur.
func (h *PanelMemberHandler) CreateMember(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	member := parseMemberForm(c)
	if _, err := h.service.CreateMember(c.UserContext(), orgID, userID, member); err != nil {
		configslog.Log.Error("Panel - CreateMember Error", zap.Uint("userID", userID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Oluşturma hatası: "+err.Error())
		return c.Redirect("/panel/members/create", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Üye başarıyla eklendi.")
	return c.Redirect("/panel/members", fiber.StatusFound)
}

// ShowUpdateMember üye düzenleme formunu gösterir.
func (h *PanelMemberHandler) ShowUpdateMember(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/members")
	}

	member, err := h.service.GetMemberByID(c.UserContext(), orgID, uint(id))
	if err != nil {
		if err != services.ErrMemberNotFound {
			configslog.Log.Error("Panel - ShowUpdateMember Error", zap.Int("id", id), zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Üye bulunamadı.")
		return c.Redirect("/panel/members")
	}

	flash, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title":  "Üyeyi Düzenle",
		"Member": member,
	}
	renderer.SetFlashMessages(renderData, flash)
	return renderer.Render(c, "panel/members/update", "layouts/panel_layout", renderData)
}

// UpdateMember üye bilgilerini günceller.
func (h *PanelMemberHandler) UpdateMember(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/members")
	}
	redirectPathOnError := c.Path()

	changes := parseMemberForm(c)
	if err := h.service.UpdateMember(c.UserContext(), orgID, userID, uint(id), changes); err != nil {
		if err == services.ErrMemberNotFound {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Üye bulunamadı.")
			return c.Redirect("/panel/members")
		}
		configslog.Log.Error("Panel - UpdateMember Error", zap.Int("id", id), zap.Uint("userID", userID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Güncelleme hatası: "+err.Error())
		return c.Redirect(redirectPathOnError, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Üye başarıyla güncellendi.")
	return c.Redirect(redirectPathOnError, fiber.StatusFound)
}

// DeleteMember üyeyi siler.
func (h *PanelMemberHandler) DeleteMember(c *fiber.Ctx) error {
	orgID, userID, ok := sessionScope(c)
	if !ok {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/members")
	}

	if err := h.service.DeleteMember(c.UserContext(), orgID, userID, uint(id)); err != nil {
		if err != services.ErrMemberNotFound {
			configslog.Log.Error("Panel - DeleteMember Error", zap.Int("id", id), zap.Uint("userID", userID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Silme hatası: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Üye başarıyla silindi.")
	}
	return c.Redirect("/panel/members", fiber.StatusSeeOther)
}
