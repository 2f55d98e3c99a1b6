// Package group provides the HTTP handlers for the group pages: the
// show page with its visibility-gated summary, the create and edit
// forms, and the delete confirmation.
package group

import (
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/commonshub/commonshub/internal/auth"
	"github.com/commonshub/commonshub/internal/config"
	"github.com/commonshub/commonshub/internal/cover"
	"github.com/commonshub/commonshub/internal/db/models"
	"github.com/commonshub/commonshub/internal/geocode"
	groupsvc "github.com/commonshub/commonshub/internal/group"
	"github.com/commonshub/commonshub/internal/web/handler"
	"github.com/commonshub/commonshub/internal/web/navigation"
)

const (
	// Path is the base path of the group pages.
	Path = handler.RootPath + "groups"

	// TemplateShow is the group show page template.
	TemplateShow = "group/show"

	// TemplateForm is the create/edit form template.
	TemplateForm = "group/form"

	// TemplateDelete is the delete confirmation template.
	TemplateDelete = "group/delete"

	paramID = "id"

	// flash params appended to the show redirect after a save
	flashGeocoded      = "geocoded"
	flashGeocodeFailed = "geocode_failed"
)

// Service is the group handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	db     *gorm.DB
	groups *groupsvc.Service
	covers *cover.Storage
}

// Handler is the group handler.
var Handler = Service{}

// Init initializes the group handler and registers its routes. The show
// page and the cover images are open to anonymous visitors; creation
// needs a verified account, edit and delete a group admin.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, groups *groupsvc.Service, covers *cover.Storage) {
	if app == nil || cfg == nil || db == nil || groups == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.groups = groups
	s.covers = covers

	app.Route(Path, func(router fiber.Router) {
		router.Get("/new", auth.RequireVerified, s.New)
		router.Post(handler.RootPath, auth.RequireVerified, s.Create)
		router.Get("/:id", s.Show)
		router.Get("/:id/cover", s.Cover)
		router.Get("/:id/thumbnail", s.Thumbnail)
		router.Get("/:id/edit", auth.RequireSignIn, s.Edit)
		router.Post("/:id", auth.RequireSignIn, s.Update)
		router.Get("/:id/delete", auth.RequireSignIn, s.ConfirmDelete)
		router.Post("/:id/delete", auth.RequireSignIn, s.Destroy)
	})
}

// form is the submitted group form.
type form struct {
	Name      string `form:"name"`
	Body      string `form:"body"`
	GroupType string `form:"group_type"`
	IsPublic  bool   `form:"is_public"`
	Address   string `form:"address"`
	Tags      string `form:"tags"`
}

// input converts the form into a lifecycle input. The tag field is a
// comma separated list and always replaces the stored set wholesale.
func (f *form) input(c *fiber.Ctx) groupsvc.Input {
	in := groupsvc.Input{
		Name:      strings.TrimSpace(f.Name),
		Body:      strings.TrimSpace(f.Body),
		GroupType: f.GroupType,
		IsPublic:  f.IsPublic,
		Address:   strings.TrimSpace(f.Address),
		Tags:      splitTags(f.Tags),
	}

	if file, err := c.FormFile("cover"); err == nil && file != nil {
		if raw, err := readUpload(file); err != nil {
			log.Warn().Err(err).Str("filename", file.Filename).Msg("failed to read cover upload")
		} else {
			in.Cover = raw
		}
	}

	return in
}

// readUpload pulls the raw bytes of the uploaded file out of the
// multipart form.
func readUpload(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open upload")
	}
	defer src.Close()

	return io.ReadAll(src)
}

// Show renders the group page. What the summary contains follows the
// viewer: members see everything, outsiders only what the group makes
// public, anonymous visitors never see the activity log.
func (s *Service) Show(c *fiber.Ctx) error {
	g, err := s.load(c)
	if err != nil {
		return s.notFound(c, err)
	}

	viewer := auth.ViewerFrom(c)
	page := s.groups.Show(c.Context(), viewer, g)

	nav := navigation.NewContext(g.Name, "groups", "show").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Groups", Path, false).
		AddBreadcrumb(g.Name, "", true)

	return c.Render(TemplateShow, fiber.Map{
		"Navigation":  nav,
		"Group":       g,
		"Page":        page,
		"HasCover":    s.covers != nil && s.covers.HasCover(g.ID),
		"IsAdmin":     isGroupAdmin(c, g),
		"Flash":       c.Query("flash", ""),
		"CurrentUser": auth.CurrentUser(c),
	}, handler.BaseLayout)
}

// New renders the empty creation form.
func (s *Service) New(c *fiber.Ctx) error {
	nav := navigation.NewContext("New Group", "groups", "new").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Groups", Path, false).
		AddBreadcrumb("New", "", true)

	return c.Render(TemplateForm, fiber.Map{
		"Navigation":  nav,
		"Group":       &models.Group{},
		"GroupTypes":  models.GroupTypes,
		"Action":      Path,
		"CurrentUser": auth.CurrentUser(c),
	}, handler.BaseLayout)
}

// Create handles the creation form submission.
func (s *Service) Create(c *fiber.Ctx) error {
	f := new(form)
	if err := c.BodyParser(f); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}

	viewer := auth.ViewerFrom(c)

	saved, err := s.groups.Create(c.Context(), viewer, f.input(c))
	if err != nil {
		return s.saveError(c, err, &models.Group{}, Path)
	}

	return c.Redirect(showPath(saved.Group.ID) + flashQuery(saved))
}

// Edit renders the edit form, group admins only.
func (s *Service) Edit(c *fiber.Ctx) error {
	g, err := s.load(c)
	if err != nil {
		return s.notFound(c, err)
	}

	if !isGroupAdmin(c, g) {
		return c.Status(fiber.StatusForbidden).SendString("Forbidden")
	}

	nav := navigation.NewContext("Edit "+g.Name, "groups", "edit").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Groups", Path, false).
		AddBreadcrumb(g.Name, showPath(g.ID), false).
		AddBreadcrumb("Edit", "", true)

	return c.Render(TemplateForm, fiber.Map{
		"Navigation":  nav,
		"Group":       g,
		"GroupTypes":  models.GroupTypes,
		"Action":      showPath(g.ID),
		"CurrentUser": auth.CurrentUser(c),
	}, handler.BaseLayout)
}

// Update handles the edit form submission, group admins only.
func (s *Service) Update(c *fiber.Ctx) error {
	g, err := s.load(c)
	if err != nil {
		return s.notFound(c, err)
	}

	if !isGroupAdmin(c, g) {
		return c.Status(fiber.StatusForbidden).SendString("Forbidden")
	}

	f := new(form)
	if err := c.BodyParser(f); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}

	viewer := auth.ViewerFrom(c)

	saved, err := s.groups.Update(c.Context(), viewer, g, f.input(c))
	if err != nil {
		return s.saveError(c, err, g, showPath(g.ID))
	}

	return c.Redirect(showPath(saved.Group.ID) + flashQuery(saved))
}

// ConfirmDelete renders the delete confirmation page.
func (s *Service) ConfirmDelete(c *fiber.Ctx) error {
	g, err := s.load(c)
	if err != nil {
		return s.notFound(c, err)
	}

	if !isGroupAdmin(c, g) {
		return c.Status(fiber.StatusForbidden).SendString("Forbidden")
	}

	nav := navigation.NewContext("Delete "+g.Name, "groups", "delete").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Groups", Path, false).
		AddBreadcrumb(g.Name, showPath(g.ID), false).
		AddBreadcrumb("Delete", "", true)

	return c.Render(TemplateDelete, fiber.Map{
		"Navigation":  nav,
		"Group":       g,
		"CurrentUser": auth.CurrentUser(c),
	}, handler.BaseLayout)
}

// Destroy soft-deletes the group.
func (s *Service) Destroy(c *fiber.Ctx) error {
	g, err := s.load(c)
	if err != nil {
		return s.notFound(c, err)
	}

	viewer := auth.ViewerFrom(c)

	if err := s.groups.Delete(c.Context(), viewer, g); err != nil {
		if errors.Is(err, groupsvc.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).SendString("Forbidden")
		}

		log.Error().Err(err).Uint("group_id", g.ID).Msg("failed to delete group")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to delete group")
	}

	return c.Redirect("/dashboard")
}

// Cover serves the group's cover derivative.
func (s *Service) Cover(c *fiber.Ctx) error {
	return s.serveImage(c, s.covers.CoverPath)
}

// Thumbnail serves the group's thumbnail derivative.
func (s *Service) Thumbnail(c *fiber.Ctx) error {
	return s.serveImage(c, s.covers.ThumbnailPath)
}

func (s *Service) serveImage(c *fiber.Ctx, pathFor func(uint) string) error {
	g, err := s.load(c)
	if err != nil {
		return s.notFound(c, err)
	}

	if !s.covers.HasCover(g.ID) {
		return c.SendStatus(fiber.StatusNotFound)
	}

	return c.SendFile(pathFor(g.ID))
}

// load resolves the :id parameter into a group with its associations.
func (s *Service) load(c *fiber.Ctx) (*models.Group, error) {
	id, err := c.ParamsInt(paramID)
	if err != nil || id < 1 {
		return nil, groupsvc.ErrNotFound
	}

	return s.groups.Get(c.Context(), uint(id))
}

func (s *Service) notFound(c *fiber.Ctx, err error) error {
	if errors.Is(err, groupsvc.ErrNotFound) {
		return c.SendStatus(fiber.StatusNotFound)
	}

	log.Error().Err(err).Msg("failed to load group")

	return c.Status(fiber.StatusInternalServerError).SendString("Failed to load group")
}

// saveError renders a failed create/update: validation errors re-render
// the form with the field messages, everything else is a hard failure.
func (s *Service) saveError(c *fiber.Ctx, err error, g *models.Group, action string) error {
	var fields groupsvc.ValidationError
	if errors.As(err, &fields) {
		return c.Status(fiber.StatusBadRequest).Render(TemplateForm, fiber.Map{
			"Group":       g,
			"GroupTypes":  models.GroupTypes,
			"Action":      action,
			"Errors":      fields,
			"CurrentUser": auth.CurrentUser(c),
		}, handler.BaseLayout)
	}

	if errors.Is(err, groupsvc.ErrForbidden) {
		return c.Status(fiber.StatusForbidden).SendString("Forbidden")
	}

	log.Error().Err(err).Msg("failed to save group")

	return c.Status(fiber.StatusInternalServerError).SendString("Failed to save group")
}

// isGroupAdmin reports whether the signed-in viewer administers the
// group. Memberships are preloaded by load.
func isGroupAdmin(c *fiber.Ctx, g *models.Group) bool {
	user := auth.CurrentUser(c)
	if user == nil {
		return false
	}

	m := g.MembershipFor(user.ID)

	return m != nil && m.IsAdmin()
}

func showPath(id uint) string {
	return Path + "/" + itoa(id)
}

// flashQuery maps the save's geocode signal to the flash parameter of
// the show redirect.
func flashQuery(saved *groupsvc.Saved) string {
	switch saved.Signal {
	case geocode.SignalGeocoded:
		return "?flash=" + flashGeocoded
	case geocode.SignalFailed:
		return "?flash=" + flashGeocodeFailed
	default:
		return ""
	}
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))

	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	return tags
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
