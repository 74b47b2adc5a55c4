package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/utils"
)

// Context keys set by JWTAuth.
const (
	CtxStaff = "staff"
	CtxRole  = "role"
)

// JWTAuth validates a Bearer access token and stores the staff username
// and role in the echo context under CtxStaff and CtxRole.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(CtxStaff, claims.Subject)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}

// staffID returns the authenticated staff username or "anon".
func staffID(c echo.Context) string {
	if s, ok := c.Get(CtxStaff).(string); ok && s != "" {
		return s
	}
	return "anon"
}
