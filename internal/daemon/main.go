package daemon

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/storage"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionsqlite "github.com/gofiber/storage/sqlite3/v2"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/commonshub/commonshub/internal/config"
	"github.com/commonshub/commonshub/internal/cover"
	"github.com/commonshub/commonshub/internal/db/dsn"
	"github.com/commonshub/commonshub/internal/db/models"
	"github.com/commonshub/commonshub/internal/geocode"
	"github.com/commonshub/commonshub/internal/group"
	"github.com/commonshub/commonshub/internal/notify"
	"github.com/commonshub/commonshub/internal/web"
	"github.com/commonshub/commonshub/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db := openDatabase(cfg)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Membership{},
		&models.Tag{},
		&models.Discussion{},
		&models.Document{},
		&models.Action{},
		&models.Activity{},
		&models.Setting{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	seed(cfg, db)

	session.Init(sessionStorage(cfg))

	covers := cover.NewStorage(cfg.Uploads.Path)
	groups := group.NewService(db, geocoder(cfg), covers, notify.LogNotifier{})

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db, groups, covers),
	}
}

// openDatabase opens the configured engine: embedded SQLite for small
// deployments, MySQL otherwise.
func openDatabase(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector

	if cfg.DB.GormEngine == config.EngineSQLite {
		dialector = sqlite.Open(dsn.Create(cfg))
	} else {
		dialector = gormmysql.Open(dsn.Create(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	return db
}

// sessionStorage picks the fiber session backend matching the database
// engine, so sessions live next to the application data.
func sessionStorage(cfg *config.Config) storage.Storage {
	if cfg.DB.GormEngine == config.EngineSQLite {
		return sessionsqlite.New(sessionsqlite.Config{
			Database: cfg.DB.Name + "-sessions",
			Table:    "sessions",
		})
	}

	return sessionmysql.New(sessionmysql.Config{
		ConnectionURI: dsn.Create(cfg),
		Table:         "sessions",
	})
}

// geocoder builds the configured address lookup provider, nil when the
// feature is off. A nil geocoder stores addresses without coordinates.
func geocoder(cfg *config.Config) geocode.Geocoder {
	if !cfg.Geocoder.Enabled {
		return nil
	}

	return geocode.NewNominatim(
		cfg.Geocoder.BaseURL,
		cfg.Geocoder.UserAgent,
		time.Duration(cfg.Geocoder.Timeout)*time.Second,
	)
}
