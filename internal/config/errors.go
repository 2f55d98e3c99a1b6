package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrEmptyUploadsPath error if config uploads.path is empty.
	ErrEmptyUploadsPath = errors.New("toml config uploads.path can not be empty")

	// ErrEmptyGeocoderURL error if the geocoder is enabled without a base url.
	ErrEmptyGeocoderURL = errors.New("toml config geocoder.baseurl can not be empty when geocoder is enabled")
)
