package middlewares

import (
	"cemaat.app/pkg/flashmessages"
	"cemaat.app/services"
	"cemaat.app/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware oturumdan kullanıcıyı çözer ve Locals'a yazar.
// Oturum yoksa login sayfasına yönlendirir.
func AuthMiddleware(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return c.Redirect("/auth/login")
	}
	userID, err := utils.GetUserIDFromSession(sess)
	if err != nil {
		return c.Redirect("/auth/login")
	}
	isSystem, _ := utils.GetIsSystemFromSession(sess)

	c.Locals("userID", userID)
	c.Locals("isSystem", isSystem)
	c.Locals("organizationID", utils.GetOrganizationIDFromSession(sess))
	return c.Next()
}

// StatusMiddleware hesabın hala aktif olduğunu doğrular. Pasifleştirilmiş bir
// kullanıcının açık oturumu bir sonraki istekte düşürülür.
func StatusMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	userService := services.NewUserService()
	user, err := userService.GetUserByID(c.UserContext(), userID)
	if err != nil || !user.IsActive {
		if sess, serr := utils.SessionStart(c); serr == nil {
			_ = sess.Destroy()
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Hesabınız pasif durumda.")
		return c.Redirect("/auth/login")
	}
	return c.Next()
}

// RequireUser sadece organizasyon kullanıcılarına izin verir.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isSystem, ok := c.Locals("isSystem").(bool); ok && isSystem {
			return c.Redirect("/dashboard/home")
		}
		return c.Next()
	}
}

// RequireSystem sadece sistem yöneticilerine izin verir.
func RequireSystem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isSystem, ok := c.Locals("isSystem").(bool); !ok || !isSystem {
			return c.Redirect("/panel/home")
		}
		return c.Next()
	}
}
