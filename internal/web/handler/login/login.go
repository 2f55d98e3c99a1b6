package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/commonshub/commonshub/internal/auth"
	"github.com/commonshub/commonshub/internal/config"
	"github.com/commonshub/commonshub/internal/web/handler"
	"github.com/commonshub/commonshub/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = "/login"

	// TemplateName is the name of the login template.
	TemplateName = "login"
)

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	db    *gorm.DB
	local *auth.LocalProvider
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app or db is nil")
	}

	s.db = db
	s.cfg = cfg
	s.local = auth.NewLocalProvider(db)

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.Get)
		router.Post(handler.RootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.Render(TemplateName, fiber.Map{
		"Title": s.cfg.Title,
	})
}

type credentials struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	in := new(credentials)

	if err := c.BodyParser(in); err != nil {
		return c.Status(fiber.StatusBadRequest).Render(TemplateName, fiber.Map{
			"Title": s.cfg.Title,
			"error": ErrInvalidFormData.Error(),
		})
	}

	user, err := s.local.Authenticate(in.Username, in.Password)
	if err != nil {
		// one message for every authentication failure, the reason is
		// not leaked to the client
		log.Info().Str("username", in.Username).Err(err).Msg("login rejected")

		return c.Status(fiber.StatusUnauthorized).Render(TemplateName, fiber.Map{
			"Title": s.cfg.Title,
			"error": ErrInvalidCredentials.Error(),
		})
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return c.Status(fiber.StatusInternalServerError).Render(TemplateName, fiber.Map{
			"Title": s.cfg.Title,
			"error": ErrInternalServerError.Error(),
		})
	}

	userSession := &session.Data{
		User: *user,
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return c.Status(fiber.StatusInternalServerError).Render(TemplateName, fiber.Map{
			"Title": s.cfg.Title,
			"error": ErrInternalServerError.Error(),
		})
	}

	// set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     "session",
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax", // TODO: make this configurable
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	return c.Redirect("/dashboard")
}
