package routing

import (
	"context"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultORSBaseURL = "https://api.openrouteservice.org"

// ORSRouteProvider implements RouteProvider using OpenRouteService directions.
//
// It coordinates:
//   - An optional route cache keyed by profile and rounded endpoints
//   - External API calls with retry/backoff
//   - Strict payload validation (no geometry means failure)
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	maxAttempts int
	cache       ports.RouteCache
	logger      *zap.Logger
}

type Option func(*ORSRouteProvider)

func WithBaseURL(baseURL string) Option {
	return func(o *ORSRouteProvider) {
		if baseURL != "" {
			o.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *ORSRouteProvider) { o.session = c }
}

// WithMaxAttempts sets the total number of attempts per call, retries included.
func WithMaxAttempts(n int) Option {
	return func(o *ORSRouteProvider) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

func WithCache(c ports.RouteCache) Option {
	return func(o *ORSRouteProvider) { o.cache = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *ORSRouteProvider) {
		if l != nil {
			o.logger = l
		}
	}
}

func NewORSRouteProvider(apiKey string, opts ...Option) (*ORSRouteProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSRouteProvider{
		session:     &http.Client{Timeout: 30 * time.Second},
		apiKey:      apiKey,
		baseURL:     defaultORSBaseURL,
		maxAttempts: 2,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(provider)
	}

	return provider, nil
}

// Route returns the path between two coordinates for the given profile.
func (o *ORSRouteProvider) Route(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
	profile string,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, o.logger, "ors.Route")(&err)

	if strings.TrimSpace(profile) == "" {
		return ports.RouteResult{}, errors.New("get ORS route: profile must be non-empty")
	}
	if !from.Valid() || !to.Valid() {
		return ports.RouteResult{}, fmt.Errorf("get ORS route: invalid coordinates %v -> %v", from, to)
	}

	key := CacheKey(profile, from, to)

	// Check the route cache before issuing external API calls.
	if o.cache != nil {
		cached, ok, err := o.cache.Get(ctx, key)
		if err != nil {
			o.logger.Warn("route cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok && len(cached.Geometry) > 0 {
			return cached, nil
		}
	}

	fetched, err := o.fetchDirections(ctx, from, to, profile)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("get ORS route %s: %w", profile, err)
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, key, fetched); err != nil {
			o.logger.Warn("route cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return fetched, nil
}

// CacheKey identifies a route by profile and endpoints rounded to ~0.1 m.
func CacheKey(profile string, from, to domain.Coordinates) string {
	return fmt.Sprintf("%s|%.6f,%.6f|%.6f,%.6f", profile, from.Lat, from.Lon, to.Lat, to.Lon)
}
