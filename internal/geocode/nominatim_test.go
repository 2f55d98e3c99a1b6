package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatim_Geocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "commonshub-test", r.Header.Get("User-Agent"))

		switch r.URL.Query().Get("q") {
		case "Rue de la Loi 16, Brussels":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"lat":"50.8467","lon":"4.3517"}]`))
		case "nowhere at all":
			_, _ = w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := NewNominatim(server.URL, "commonshub-test", time.Second)

	t.Run("match", func(t *testing.T) {
		point, ok, err := client.Geocode(context.Background(), "Rue de la Loi 16, Brussels")
		require.NoError(t, err)
		require.True(t, ok)
		assert.InDelta(t, 50.8467, point.Lat, 0.0001)
		assert.InDelta(t, 4.3517, point.Lon, 0.0001)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok, err := client.Geocode(context.Background(), "nowhere at all")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("provider error", func(t *testing.T) {
		_, ok, err := client.Geocode(context.Background(), "boom")
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestNominatim_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewNominatim(server.URL, "commonshub-test", time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, ok, err := client.Geocode(ctx, "anywhere")
	assert.Error(t, err)
	assert.False(t, ok)
}
