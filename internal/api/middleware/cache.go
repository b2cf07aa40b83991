package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"

	"github.com/carecompass/backend/internal/domain/providers"
	"github.com/carecompass/backend/internal/infrastructure/observability"
)

// CacheConfig holds cache configuration for one route
type CacheConfig struct {
	TTLSeconds int
	Enabled    bool
}

// DefaultCacheRoutes are the catalog-backed GET endpoints whose responses
// depend only on the query string and the catalog version.
var DefaultCacheRoutes = map[string]CacheConfig{
	"/api/doctors":             {TTLSeconds: 300, Enabled: true},
	"/api/doctors/specialties": {TTLSeconds: 1800, Enabled: true},
	"/api/symptoms":            {TTLSeconds: 1800, Enabled: true},
}

// CacheMiddleware caches successful JSON responses of selected routes
type CacheMiddleware struct {
	cache          providers.CacheProvider
	routeConfigs   map[string]CacheConfig
	catalogVersion string
	metrics        *observability.Metrics
}

// NewCacheMiddleware creates a cache middleware. Keys include catalogVersion
// so a catalog reload never serves stale rosters.
func NewCacheMiddleware(cache providers.CacheProvider, catalogVersion string, metrics *observability.Metrics, routes map[string]CacheConfig) *CacheMiddleware {
	if routes == nil {
		routes = DefaultCacheRoutes
	}
	return &CacheMiddleware{
		cache:          cache,
		routeConfigs:   routes,
		catalogVersion: catalogVersion,
		metrics:        metrics,
	}
}

// Middleware returns the cache middleware handler
func (m *CacheMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || m.cache == nil {
			next.ServeHTTP(w, r)
			return
		}

		config, ok := m.routeConfigs[r.URL.Path]
		if !ok || !config.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		logger := observability.LoggerFromContext(ctx)
		cacheKey := m.generateCacheKey(r)

		if cached, err := m.cache.Get(ctx, cacheKey); err == nil {
			// The mux never runs on a HIT; cached routes are exact GET patterns.
			r.Pattern = http.MethodGet + " " + r.URL.Path
			observability.RecordCacheHit(ctx, m.metrics, r.URL.Path)
			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}

		observability.RecordCacheMiss(ctx, m.metrics, r.URL.Path)
		w.Header().Set("X-Cache", "MISS")

		recorder := &responseRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			body:           &bytes.Buffer{},
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode != http.StatusOK || recorder.body.Len() == 0 {
			return
		}
		if err := m.cache.Set(ctx, cacheKey, recorder.body.Bytes(), config.TTLSeconds); err != nil {
			logger.Warn().Err(err).Str("route", r.URL.Path).Msg("failed to cache response")
		}
	})
}

// generateCacheKey hashes version, path and the canonical query string.
func (m *CacheMiddleware) generateCacheKey(r *http.Request) string {
	// url.Values.Encode sorts by key.
	query := url.Values(r.URL.Query()).Encode()
	hash := sha256.Sum256([]byte(m.catalogVersion + "|" + r.URL.Path + "?" + query))
	return "http:cache:" + hex.EncodeToString(hash[:])
}

// responseRecorder tees the response body so it can be cached
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
	written    bool
}

// WriteHeader captures the status code
func (r *responseRecorder) WriteHeader(statusCode int) {
	if !r.written {
		r.statusCode = statusCode
		r.ResponseWriter.WriteHeader(statusCode)
		r.written = true
	}
}

// Write captures the response body and writes to the client
func (r *responseRecorder) Write(data []byte) (int, error) {
	if !r.written {
		r.WriteHeader(http.StatusOK)
	}
	r.body.Write(data)
	return r.ResponseWriter.Write(data)
}
