package config

import (
	"time"

	"github.com/commonshub/commonshub/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Geocoder  Geocoder
	Uploads   Uploads
}

// Webserver implement webserver settings.
type Webserver struct {
	CacheEnabled        bool    // true = enable cache, false = disable cache
	CleanPath           bool    // use clean path middleware to allow multi slash requests
	DisableRecover      bool    // disable recover middleware
	Domain              string  // domain name for the webserver
	Port                int     // listening port for the webserver
	ShutDownTime        int     // wait time for shutdown
	URL                 string  // base url for the webserver
	CookieEncryptionKey string  // encryption key for cookies
	Session             Session // session settings
}

// Geocoder holds the address lookup provider settings.
// When disabled, group addresses are stored without coordinates.
type Geocoder struct {
	Enabled   bool   `toml:"enabled"`
	BaseURL   string `toml:"baseurl"`   // Nominatim-compatible endpoint
	UserAgent string `toml:"useragent"` // identifies this deployment to the provider
	Timeout   int    `toml:"timeout"`   // per-lookup timeout in seconds
}

// Uploads holds the on-disk storage settings for user provided files,
// currently the group cover derivatives.
type Uploads struct {
	Path string `toml:"path"`
}
