package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jengzang/incident-heatmap-go/internal/models"
)

const maxResponseBytes = 64 << 20

// HTTPConfig configures an HTTPSource
type HTTPConfig struct {
	BaseURL   string
	Token     string // Optional bearer credential
	Timeout   time.Duration
	CacheTTL  time.Duration      // 0 disables caching
	CacheHits prometheus.Counter // Optional
}

// HTTPSource fetches incidents from an external endpoint that accepts
// west/south/east/north query parameters and returns a JSON array of
// {lat, lng, weight?}.
type HTTPSource struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cache      *cache.Cache
	cacheHits  prometheus.Counter
}

// NewHTTPSource builds an HTTP incident source
func NewHTTPSource(cfg HTTPConfig) *HTTPSource {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	s := &HTTPSource{
		baseURL: strings.TrimSpace(cfg.BaseURL),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cacheHits: cfg.CacheHits,
	}
	if cfg.CacheTTL > 0 {
		s.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return s
}

// Name implements IncidentSource
func (s *HTTPSource) Name() string {
	return "http"
}

// Fetch implements IncidentSource
func (s *HTTPSource) Fetch(ctx context.Context, b models.BoundingBox) ([]models.IncidentPoint, error) {
	key := cacheKey(b)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			if s.cacheHits != nil {
				s.cacheHits.Inc()
			}
			return cached.([]models.IncidentPoint), nil
		}
	}

	endpoint, err := s.endpoint(b)
	if err != nil {
		return nil, fmt.Errorf("%w: build request url: %w", ErrDataFetch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrDataFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", ErrDataFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%w: status=%d body=%s", ErrDataFetch, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var points []models.IncidentPoint
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&points); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrDataFetch, err)
	}
	if points == nil {
		points = []models.IncidentPoint{}
	}

	if s.cache != nil {
		s.cache.SetDefault(key, points)
	}
	return points, nil
}

func (s *HTTPSource) endpoint(b models.BoundingBox) (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("west", formatCoord(b.West))
	q.Set("south", formatCoord(b.South))
	q.Set("east", formatCoord(b.East))
	q.Set("north", formatCoord(b.North))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cacheKey(b models.BoundingBox) string {
	return fmt.Sprintf("%s,%s,%s,%s", formatCoord(b.West), formatCoord(b.South), formatCoord(b.East), formatCoord(b.North))
}
