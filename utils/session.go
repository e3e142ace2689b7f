package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

var (
	ErrSessionStoreMissing = errors.New("oturum deposu bulunamadı")
	ErrUserIDMissing       = errors.New("oturumda kullanıcı ID yok")
)

// SessionStart Locals'a konulmuş store üzerinden oturumu açar.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, ErrSessionStoreMissing
	}
	return store.Get(c)
}

// GetUserIDFromSession giriş yapmış kullanıcının ID'sini döndürür.
func GetUserIDFromSession(sess *session.Session) (uint, error) {
	if id, ok := sess.Get("user_id").(uint); ok && id != 0 {
		return id, nil
	}
	return 0, ErrUserIDMissing
}

// GetIsSystemFromSession kullanıcının sistem yöneticisi olup olmadığını döndürür.
func GetIsSystemFromSession(sess *session.Session) (bool, error) {
	if v, ok := sess.Get("is_system").(bool); ok {
		return v, nil
	}
	return false, ErrUserIDMissing
}

// GetOrganizationIDFromSession kullanıcının organizasyon kapsamını döndürür.
// Sistem kullanıcılarında 0 olabilir.
func GetOrganizationIDFromSession(sess *session.Session) uint {
	if v, ok := sess.Get("organization_id").(uint); ok {
		return v
	}
	return 0
}
