package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/commonshub/commonshub/internal/auth"
	"github.com/commonshub/commonshub/internal/web/handler/login"
	"github.com/commonshub/commonshub/internal/web/session"
)

// Middleware is a Fiber middleware that resolves the session cookie and
// puts the signed-in user into locals. Anonymous requests pass through:
// public group pages are reachable signed out, and route guards decide
// what else needs a session. Signed-in users are redirected away from
// the login page.
func Middleware(c *fiber.Ctx) error {
	originalURL := strings.ToLower(c.OriginalURL())
	if strings.HasPrefix(originalURL, "/static") {
		return c.Next()
	}

	sessionID := c.Cookies("session")
	if sessionID == "" {
		return c.Next()
	}

	sessData := new(session.Data)
	if err := sessData.Read(sessionID); err != nil {
		// expired or unknown session, continue anonymously
		return c.Next()
	}

	if sessData.User.ID > 0 {
		c.Locals(auth.CurrentUserKey, sessData.User)

		if IsLoginPage(c) {
			return c.Redirect("/dashboard")
		}
	}

	return c.Next()
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	originalURL := strings.ToLower(c.OriginalURL())
	return strings.HasPrefix(originalURL, login.Path)
}
