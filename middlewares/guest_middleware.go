package middlewares

import (
	"cemaat.app/utils"

	"github.com/gofiber/fiber/v2"
)

// GuestMiddleware giriş yapmış kullanıcıyı misafir sayfalarından uzak tutar.
func GuestMiddleware(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return c.Next()
	}
	if _, err := utils.GetUserIDFromSession(sess); err != nil {
		return c.Next()
	}
	if isSystem, _ := utils.GetIsSystemFromSession(sess); isSystem {
		return c.Redirect("/dashboard/home", fiber.StatusFound)
	}
	return c.Redirect("/panel/home", fiber.StatusFound)
}
