// Package geocode turns free-text postal addresses into coordinates
// through an external provider. The provider is reached through the
// narrow Geocoder interface; the retry/fallback policy belongs to the
// caller, not to this package. A failed lookup is advisory and must
// never block a save.
package geocode

import "context"

// Point is a geographic coordinate pair.
type Point struct {
	Lat float64
	Lon float64
}

// Geocoder resolves an address to a coordinate pair. The second return
// value is false when the provider found no match; an error covers
// provider or transport failures. Implementations honor ctx deadlines.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Point, bool, error)
}

// Signal is the advisory outcome of a geocode attempt, surfaced to the
// user as a flash message after a save.
type Signal string

const (
	// SignalNone means no geocode was attempted (empty or unchanged address).
	SignalNone Signal = ""
	// SignalGeocoded means the address resolved and coordinates were set.
	SignalGeocoded Signal = "geocoded"
	// SignalFailed means the lookup failed or found no match; the save
	// proceeded with cleared coordinates.
	SignalFailed Signal = "geocode_failed"
)

// Disabled is a Geocoder that never resolves anything, used when the
// deployment has no provider configured.
type Disabled struct{}

// Geocode implements Geocoder.
func (Disabled) Geocode(_ context.Context, _ string) (Point, bool, error) {
	return Point{}, false, nil
}
