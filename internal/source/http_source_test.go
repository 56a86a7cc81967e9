package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/incident-heatmap-go/internal/models"
)

var testBounds = models.BoundingBox{West: -76, South: 40, East: -72, North: 41.3}

func TestHTTPSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "-76", r.URL.Query().Get("west"))
		assert.Equal(t, "40", r.URL.Query().Get("south"))
		assert.Equal(t, "-72", r.URL.Query().Get("east"))
		assert.Equal(t, "41.3", r.URL.Query().Get("north"))
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":40.5,"lng":-75,"weight":3},{"lat":41,"lng":-73},{"lat":40.6,"lng":-74,"weight":null}]`))
	}))
	defer srv.Close()

	src := NewHTTPSource(HTTPConfig{BaseURL: srv.URL + "/points", Token: "s3cret"})
	points, err := src.Fetch(context.Background(), testBounds)
	require.NoError(t, err)
	require.Equal(t, []models.IncidentPoint{
		{Lat: 40.5, Lng: -75, Weight: 3},
		{Lat: 41, Lng: -73, Weight: 1},
		{Lat: 40.6, Lng: -74, Weight: 1},
	}, points)
	require.Equal(t, "http", src.Name())
}

func TestHTTPSourceErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream down", http.StatusServiceUnavailable)
		}},
		{"malformed", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"an array"}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewHTTPSource(HTTPConfig{BaseURL: srv.URL}).Fetch(context.Background(), testBounds)
			require.ErrorIs(t, err, ErrDataFetch)
		})
	}
}

func TestHTTPSourceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSource(HTTPConfig{BaseURL: url, Timeout: time.Second}).Fetch(context.Background(), testBounds)
	require.ErrorIs(t, err, ErrDataFetch)
}

func TestHTTPSourceCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	hits := prometheus.NewCounter(prometheus.CounterOpts{Name: "hits"})
	src := NewHTTPSource(HTTPConfig{BaseURL: srv.URL, CacheTTL: time.Minute, CacheHits: hits})

	for i := 0; i < 3; i++ {
		points, err := src.Fetch(context.Background(), testBounds)
		require.NoError(t, err)
		require.NotNil(t, points)
		require.Empty(t, points)
	}
	require.EqualValues(t, 1, calls.Load())
	require.Equal(t, 2.0, testutil.ToFloat64(hits))

	_, err := src.Fetch(context.Background(), models.BoundingBox{West: -75, South: 40, East: -72, North: 41.3})
	require.NoError(t, err)
	require.EqualValues(t, 2, calls.Load())
}
