// Package router builds the echo instance and registers every route.
package router

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

// Deps carries what New needs.  Redis may be nil, which disables rate
// limiting and caching.  Metrics and Logger may be nil.
type Deps struct {
	Auth         *handler.AuthHandler
	Rooms        *handler.RoomHandler
	Customers    *handler.CustomerHandler
	Reservations *handler.ReservationHandler
	Metrics      http.Handler
	JWTSecret    string
	RateLimit    config.RateLimitConfig
	Cache        config.CacheConfig
	Redis        *redis.Client
	Logger       *slog.Logger
}

// New returns a configured echo instance.  Health and metrics sit
// outside the rate limiter and cache.
func New(d Deps) *echo.Echo {
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(requestLogger(d.Logger))

	RegisterRoutes(e, d.Metrics)

	api := e.Group("/v1",
		middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Logger),
		middleware.NewRedisCache(d.Cache, d.Redis, d.Logger),
	)
	RegisterAuth(api, d.Auth)
	RegisterRooms(api, d.Rooms, d.JWTSecret)
	RegisterCustomers(api, d.Customers)
	RegisterReservations(api, d.Reservations)
	return e
}

// RegisterRoutes registers routes that sit outside /v1.
func RegisterRoutes(e *echo.Echo, metrics http.Handler) {
	e.GET("/healthz", handler.Health)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}
}

// RegisterAuth registers the staff login.
func RegisterAuth(g *echo.Group, a *handler.AuthHandler) {
	g.POST("/auth/login", a.Login)
}

// RegisterRooms registers the inventory.  Creating rooms needs a staff
// token; reads are public.
func RegisterRooms(g *echo.Group, h *handler.RoomHandler, jwtSecret string) {
	g.GET("/rooms", h.List)
	g.GET("/rooms/available", h.ListAvailable)
	g.POST("/rooms", h.Create, middleware.JWTAuth(jwtSecret), middleware.RequireRole(utils.RoleStaff))
}

// RegisterCustomers registers the customer directory.
func RegisterCustomers(g *echo.Group, h *handler.CustomerHandler) {
	g.POST("/customers", h.Register)
	g.GET("/customers", h.List)
	g.GET("/customers/:id", h.Get)
	g.PUT("/customers/:id", h.Update)
	g.GET("/customers/:id/reservations", h.Reservations)
}

// RegisterReservations registers the booking workflow.  The quote route
// is static, so it wins over /reservations/:id.
func RegisterReservations(g *echo.Group, h *handler.ReservationHandler) {
	g.POST("/reservations/quote", h.Quote)
	g.POST("/reservations", h.Create)
	g.GET("/reservations", h.List)
	g.GET("/reservations/:id", h.Get)
	g.DELETE("/reservations/:id", h.Cancel)
}

func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method, "uri", v.URI, "status", v.Status,
				"latency", v.Latency, "request_id", v.RequestID,
			}
			lvl := slog.LevelInfo
			if v.Error != nil {
				lvl = slog.LevelError
				attrs = append(attrs, "err", v.Error)
			}
			log.Log(c.Request().Context(), lvl, "http", attrs...)
			return nil
		},
	})
}
