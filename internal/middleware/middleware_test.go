package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

var discard = slog.New(slog.DiscardHandler)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func do(e *echo.Echo, method, target string, hdr ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenBucketBlocksAfterCapacity(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled: true, Capacity: 2, RefillTokens: 1,
		RefillInterval: time.Hour, TTL: time.Hour, KeyStrategy: "ip_route", Prefix: "test:rl",
	}
	e := echo.New()
	e.Use(NewTokenBucket(cfg, rdb, discard))
	e.GET("/v1/rooms", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	for i := 0; i < 2; i++ {
		rec := do(e, http.MethodGet, "/v1/rooms")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := do(e, http.MethodGet, "/v1/rooms")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestTokenBucketFailsOpen(t *testing.T) {
	mr, rdb := newRedis(t)
	mr.Close()
	e := echo.New()
	e.Use(NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Second, TTL: time.Minute}, rdb, discard))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, do(e, http.MethodGet, "/").Code)
}

func TestRedisCacheHitAndInvalidation(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.CacheConfig{
		Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute,
		KeyStrategy: "route_query", Prefix: "test:cache", MaxBodyBytes: 1 << 20,
	}
	calls := 0
	e := echo.New()
	e.Use(NewRedisCache(cfg, rdb, discard))
	e.GET("/v1/rooms/available", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"calls": calls})
	})
	e.POST("/v1/reservations", func(c echo.Context) error { return c.NoContent(http.StatusCreated) })
	e.POST("/v1/reservations/fail", func(c echo.Context) error { return c.NoContent(http.StatusConflict) })

	first := do(e, http.MethodGet, "/v1/rooms/available")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	second := do(e, http.MethodGet, "/v1/rooms/available")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	// A failed write keeps the cache.
	do(e, http.MethodPost, "/v1/reservations/fail")
	assert.Equal(t, "HIT", do(e, http.MethodGet, "/v1/rooms/available").Header().Get("X-Cache"))

	do(e, http.MethodPost, "/v1/reservations")
	third := do(e, http.MethodGet, "/v1/rooms/available")
	assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)
}

func TestRedisCacheSkipsErrors(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute, Prefix: "test:cache"}
	e := echo.New()
	e.Use(NewRedisCache(cfg, rdb, discard))
	e.GET("/v1/reservations/:id", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	})

	do(e, http.MethodGet, "/v1/reservations/9")
	assert.Equal(t, "MISS", do(e, http.MethodGet, "/v1/reservations/9").Header().Get("X-Cache"))
}

func TestJWTAuthAndRequireRole(t *testing.T) {
	e := echo.New()
	e.POST("/v1/rooms", func(c echo.Context) error {
		return c.String(http.StatusCreated, c.Get(CtxStaff).(string))
	}, JWTAuth("secret"), RequireRole(utils.RoleStaff))

	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodPost, "/v1/rooms").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodPost, "/v1/rooms", "Authorization", "Bearer nope").Code)

	guest, err := utils.NewAccessToken("secret", "bob", "guest", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, do(e, http.MethodPost, "/v1/rooms", "Authorization", "Bearer "+guest.Token).Code)

	staff, err := utils.NewAccessToken("secret", "admin", utils.RoleStaff, time.Hour)
	require.NoError(t, err)
	rec := do(e, http.MethodPost, "/v1/rooms", "Authorization", "Bearer "+staff.Token)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "admin", strings.TrimSpace(rec.Body.String()))
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/rooms")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}
	assert.Equal(t, "rl:ip:10.0.0.1", buildRateKey(cfg, c))
	cfg.KeyStrategy = "ip_route"
	assert.Equal(t, "rl:ip:10.0.0.1:route:GET /v1/rooms", buildRateKey(cfg, c))
	cfg.KeyStrategy = "ip_user_route"
	c.Set(CtxStaff, "admin")
	assert.Equal(t, "rl:ip:10.0.0.1:user:admin:route:GET /v1/rooms", buildRateKey(cfg, c))
}
