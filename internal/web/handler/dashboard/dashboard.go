// Package dashboard provides the dashboard handler listing groups.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/commonshub/commonshub/internal/auth"
	"github.com/commonshub/commonshub/internal/config"
	"github.com/commonshub/commonshub/internal/db/models"
	"github.com/commonshub/commonshub/internal/web/handler"
	"github.com/commonshub/commonshub/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.RootPath + "dashboard"

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"

	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 25

	// TabMine represents the tab with the viewer's own groups.
	TabMine = "mine"

	// TabAll represents the public group directory tab.
	TabAll = "all"

	desc = "desc"
)

// QueryParams holds the query and pagination parameters.
type QueryParams struct {
	Page        int
	PageSize    int
	SearchQuery string
	FilterType  string
	SortField   string
	SortOrder   string
}

// TabData represents pagination data for a single tab.
type TabData struct {
	Groups      []models.Group
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int
	HasPrevPage bool
	HasNextPage bool
	PrevPage    int
	NextPage    int
	SearchQuery string
	FilterType  string
	SortField   string
	SortOrder   string
}

// Data represents the complete dashboard data.
type Data struct {
	ActiveTab string
	MineTab   TabData
	AllTab    TabData
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler. The dashboard itself is open:
// anonymous visitors see the public directory, the "mine" tab only
// fills for signed-in viewers.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path, s.Get)
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Dashboard", "dashboard", "dashboard").
		AddBreadcrumb("Home", Path, false).
		AddBreadcrumb("Dashboard", Path, true)

	viewer := auth.ViewerFrom(c)

	// Get active tab (default: mine for signed-in viewers, all otherwise)
	defaultTab := TabAll
	if viewer.Authenticated {
		defaultTab = TabMine
	}

	activeTab := c.Query("tab", defaultTab)
	if activeTab != TabMine && activeTab != TabAll {
		activeTab = defaultTab
	}

	if activeTab == TabMine && !viewer.Authenticated {
		activeTab = TabAll
	}

	// Parse query parameters
	params := QueryParams{
		Page:        c.QueryInt("page", 1),
		PageSize:    c.QueryInt("pageSize", DefaultPageSize),
		SearchQuery: c.Query("search", ""),
		FilterType:  c.Query("type", ""),
		SortField:   c.Query("sort", "name"),
		SortOrder:   c.Query("order", "asc"),
	}

	// Validate pagination parameters
	if params.Page < 1 {
		params.Page = 1
	}

	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = DefaultPageSize
	}

	var (
		query      *gorm.DB
		mineCount  int64
		totalCount int64
	)

	if viewer.Authenticated {
		if err := s.memberGroupsQuery(viewer.ID).Count(&mineCount).Error; err != nil {
			log.Error().Err(err).Msg("failed to count member groups")
		}
	}

	if err := s.publicGroupsQuery().Count(&totalCount).Error; err != nil {
		log.Error().Err(err).Msg("failed to count public groups")
	}

	if activeTab == TabMine {
		query = s.memberGroupsQuery(viewer.ID)
	} else {
		query = s.publicGroupsQuery()
	}

	query = applyFilters(query, &params)

	var itemCount int64
	if err := query.Count(&itemCount).Error; err != nil {
		log.Error().Err(err).Msg("failed to count groups")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load groups")
	}

	totalPages := int(itemCount+int64(params.PageSize)-1) / params.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if params.Page > totalPages {
		params.Page = totalPages
	}

	var groups []models.Group

	err := applySort(query, &params).
		Preload("Tags").
		Preload("Memberships").
		Limit(params.PageSize).
		Offset((params.Page - 1) * params.PageSize).
		Find(&groups).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to load groups")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load groups")
	}

	tabData := buildTabData(groups, totalPages, &params)
	tabData.TotalItems = int(itemCount)

	data := Data{ActiveTab: activeTab}

	switch activeTab {
	case TabMine:
		data.MineTab = tabData
		data.AllTab.TotalItems = int(totalCount)
	default:
		data.AllTab = tabData
		data.MineTab.TotalItems = int(mineCount)
	}

	log.Debug().
		Str("active_tab", activeTab).
		Int64("items", itemCount).
		Int("page", params.Page).
		Int("page_size", params.PageSize).
		Str("search", params.SearchQuery).
		Str("filter_type", params.FilterType).
		Msg("dashboard groups retrieved")

	return c.Render(TemplateName, fiber.Map{
		"Navigation":  nav,
		"Data":        data,
		"CurrentUser": auth.CurrentUser(c),
	}, handler.BaseLayout)
}

// memberGroupsQuery selects the groups the user is a member of.
func (s *Service) memberGroupsQuery(userID uint64) *gorm.DB {
	return s.db.Model(&models.Group{}).
		Joins("JOIN memberships ON memberships.group_id = groups.id").
		Where("memberships.user_id = ?", userID)
}

// publicGroupsQuery selects the public group directory.
func (s *Service) publicGroupsQuery() *gorm.DB {
	return s.db.Model(&models.Group{}).Where("is_public = ?", true)
}

// applyFilters narrows the query by search text and group type.
func applyFilters(query *gorm.DB, params *QueryParams) *gorm.DB {
	if params.SearchQuery != "" {
		query = query.Where("groups.name LIKE ?", "%"+params.SearchQuery+"%")
	}

	if params.FilterType != "" && models.ValidGroupType(models.GroupType(params.FilterType)) {
		query = query.Where("groups.group_type = ?", params.FilterType)
	}

	return query
}

// applySort orders the query by the requested field.
func applySort(query *gorm.DB, params *QueryParams) *gorm.DB {
	field := "groups.name"

	switch params.SortField {
	case "updated":
		field = "groups.updated_at"
	case "created":
		field = "groups.created_at"
	}

	if params.SortOrder == desc {
		return query.Order(field + " DESC")
	}

	return query.Order(field)
}

// buildTabData creates TabData with pagination information.
func buildTabData(groups []models.Group, totalPages int, params *QueryParams) TabData {
	return TabData{
		Groups:      groups,
		CurrentPage: params.Page,
		PageSize:    params.PageSize,
		TotalItems:  len(groups),
		TotalPages:  totalPages,
		HasPrevPage: params.Page > 1,
		HasNextPage: params.Page < totalPages,
		PrevPage:    params.Page - 1,
		NextPage:    params.Page + 1,
		SearchQuery: params.SearchQuery,
		FilterType:  params.FilterType,
		SortField:   params.SortField,
		SortOrder:   params.SortOrder,
	}
}
