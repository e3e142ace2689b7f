package handlers // handlers/auth paketi

import (
	"cemaat.app/configs/configslog"
	"cemaat.app/pkg/flashmessages"
	"cemaat.app/pkg/renderer"
	"cemaat.app/services"
	"cemaat.app/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler giriş/çıkış ve profil işlemleri için handler.
type AuthHandler struct {
	service     services.IAuthService
	userService services.IUserService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		service:     services.NewAuthService(),
		userService: services.NewUserService(),
	}
}

// ShowLogin giriş formunu gösterir.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	flash, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{"Title": "Giriş Yap"}
	renderer.SetFlashMessages(renderData, flash)
	return renderer.Render(c, "auth/login", "layouts/auth_layout", renderData)
}

// Login kullanıcıyı doğrular ve oturum açar. Başarılı girişte sistem
// kullanıcıları dashboard'a, organizasyon kullanıcıları panele yönlendirilir.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.service.Login(c.UserContext(), email, password)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Error("Login: oturum açılamadı", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Oturum açılamadı, tekrar deneyin.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	if err := sess.Regenerate(); err != nil {
		configslog.Log.Error("Login: oturum yenilenemedi", zap.Error(err))
	}
	sess.Set("user_id", user.ID)
	sess.Set("user_name", user.Name)
	sess.Set("is_system", user.IsSystem)
	if user.OrganizationID != nil {
		sess.Set("organization_id", *user.OrganizationID)
	}
	if err := sess.Save(); err != nil {
		configslog.Log.Error("Login: oturum kaydedilemedi", zap.Error(err))
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	if user.IsSystem {
		return c.Redirect("/dashboard/home", fiber.StatusFound)
	}
	return c.Redirect("/panel/home", fiber.StatusFound)
}

// Logout oturumu sonlandırır.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, err := utils.SessionStart(c); err == nil {
		if err := sess.Destroy(); err != nil {
			configslog.Log.Error("Logout: oturum kapatılamadı", zap.Error(err))
		}
	}
	return c.Redirect("/auth/login", fiber.StatusFound)
}

// Profile kullanıcının profil sayfasını gösterir.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	user, err := h.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Profil bilgileri alınamadı.")
		return c.Redirect("/auth/login")
	}

	flash, _ := flashmessages.GetFlashMessages(c)
	renderData := fiber.Map{
		"Title": "Profilim",
		"User":  user,
	}
	renderer.SetFlashMessages(renderData, flash)
	layout := "layouts/panel_layout"
	if user.IsSystem {
		layout = "layouts/dashboard_layout"
	}
	return renderer.Render(c, "auth/profile", layout, renderData)
}

// UpdatePassword mevcut şifreyi doğrulayıp yenisiyle değiştirir.
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	current := c.FormValue("current_password")
	newPassword := c.FormValue("new_password")
	confirm := c.FormValue("confirm_password")

	if newPassword != confirm {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yeni şifreler eşleşmiyor.")
		return c.Redirect("/auth/profile", fiber.StatusSeeOther)
	}

	if err := h.service.ChangePassword(c.UserContext(), userID, current, newPassword); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/auth/profile", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Şifreniz güncellendi.")
	return c.Redirect("/auth/profile", fiber.StatusFound)
}
