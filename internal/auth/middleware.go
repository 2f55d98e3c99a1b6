package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/commonshub/commonshub/internal/access"
	"github.com/commonshub/commonshub/internal/db/models"
)

const loginPath = "/login"

// CurrentUserKey is the fiber locals key holding the signed-in user.
// The session middleware sets it; handlers and guards read it.
const CurrentUserKey = "CurrentUser"

// ViewerFrom builds the viewer identity of the request. Requests
// without a valid session are anonymous viewers, not errors: public
// group pages are reachable signed out.
func ViewerFrom(c *fiber.Ctx) access.Viewer {
	user, ok := c.Locals(CurrentUserKey).(models.User)
	if !ok || user.ID == 0 {
		return access.Anonymous()
	}

	return access.SignedIn(user.ID, user.Verified)
}

// CurrentUser returns the signed-in user of the request, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(CurrentUserKey).(models.User)
	if !ok || user.ID == 0 {
		return nil
	}

	return &user
}

// RequireSignIn redirects signed-out requests to the login page.
func RequireSignIn(c *fiber.Ctx) error {
	if CurrentUser(c) == nil {
		return c.Redirect(loginPath)
	}

	return c.Next()
}

// RequireVerified rejects requests from accounts that have not
// confirmed their email address. Content creation routes sit behind
// this guard.
func RequireVerified(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return c.Redirect(loginPath)
	}

	if !user.Verified {
		log.Warn().Uint64("user_id", user.ID).Str("path", c.Path()).
			Msg("unverified account blocked from content creation")

		return c.Status(fiber.StatusForbidden).
			SendString("Forbidden: please confirm your email address first")
	}

	return c.Next()
}
