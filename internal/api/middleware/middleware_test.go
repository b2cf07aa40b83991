package middleware

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecompass/backend/internal/adapters/cache"
	"github.com/carecompass/backend/internal/domain/providers"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}

func TestSession(t *testing.T) {
	var seen string
	h := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionID(r.Context())
	}))

	t.Run("keeps a valid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(SessionHeader, "abc_DEF-1234")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, "abc_DEF-1234", seen)
		assert.Equal(t, "abc_DEF-1234", w.Header().Get(SessionHeader))
	})

	t.Run("issues an id when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, seen, 36)
		assert.Equal(t, seen, w.Header().Get(SessionHeader))
	})

	t.Run("replaces a malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(SessionHeader, "short")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.NotEqual(t, "short", seen)
		assert.Equal(t, seen, w.Header().Get(SessionHeader))
	})
}

func TestSessionID_Empty(t *testing.T) {
	assert.Empty(t, SessionID(context.Background()))
	assert.Equal(t, "x", SessionID(WithSessionID(context.Background(), "x")))
}

func TestCORS_Wildcard(t *testing.T) {
	h := CORS([]string{"*"})(okHandler(`{}`))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://anything.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Cache")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCacheMiddleware(t *testing.T) {
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("fail") != "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad"}`))
			return
		}
		_, _ = w.Write([]byte(`{"doctors":[]}`))
	})

	store := cache.NewMemoryAdapter()
	h := NewCacheMiddleware(store, "v1", nil, nil).Middleware(next)

	get := func(target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		return w
	}

	first := get("/api/doctors?q=a&specialty=Neurology")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := get("/api/doctors?specialty=Neurology&q=a")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, `{"doctors":[]}`, second.Body.String())
	assert.Equal(t, 1, calls)

	// errors are never cached
	get("/api/doctors?fail=1")
	w := get("/api/doctors?fail=1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 3, calls)

	// uncached routes pass straight through
	w = get("/api/concerns/recent")
	assert.Empty(t, w.Header().Get("X-Cache"))
	assert.Equal(t, 4, calls)
}

func TestCacheMiddleware_HitCarriesRoutePattern(t *testing.T) {
	cm := NewCacheMiddleware(cache.NewMemoryAdapter(), "v1", nil, nil)
	inner := cm.Middleware(okHandler(`{"doctors":[]}`))

	var pattern string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner.ServeHTTP(w, r)
		pattern = r.Pattern
	})

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/doctors?q=a", nil))
	assert.Empty(t, pattern, "no mux ran on the MISS")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/doctors?q=a", nil))
	require.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, "GET /api/doctors", pattern)
}

func TestCacheMiddleware_VersionChangesKey(t *testing.T) {
	store := cache.NewMemoryAdapter()
	req := httptest.NewRequest(http.MethodGet, "/api/symptoms", nil)

	a := NewCacheMiddleware(store, "v1", nil, nil).generateCacheKey(req)
	b := NewCacheMiddleware(store, "v2", nil, nil).generateCacheKey(req)
	assert.NotEqual(t, a, b)
}

func TestCacheMiddleware_NilCache(t *testing.T) {
	var store providers.CacheProvider
	h := NewCacheMiddleware(store, "v1", nil, nil).Middleware(okHandler(`{}`))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/doctors", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Cache"))
}

func TestCompression(t *testing.T) {
	h := Compression(okHandler(`{"hello":"world"}`))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, `{"hello":"world"}`, string(body))

	plain := httptest.NewRecorder()
	h.ServeHTTP(plain, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, plain.Header().Get("Content-Encoding"))
	assert.Equal(t, `{"hello":"world"}`, plain.Body.String())
}

func TestCacheControl(t *testing.T) {
	h := CacheControl(okHandler(`{}`))

	tests := map[string]string{
		"/api/symptoms":            "public, max-age=300, must-revalidate",
		"/api/doctors/specialties": "public, max-age=300, must-revalidate",
		"/api/concerns/recent":     "private, no-store",
		"/api/doctors":             "private, no-store",
	}
	for path, want := range tests {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Header().Get("Cache-Control"), path)
	}
}

func TestObservabilityAndLogging_SeeMatchedPattern(t *testing.T) {
	var pattern string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/doctors/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	inner := LoggingMiddleware(mux)
	h := ObservabilityMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner.ServeHTTP(w, r)
		pattern = r.Pattern
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/doctors/d1", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "GET /api/doctors/{id}", pattern)
}
