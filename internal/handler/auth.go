package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/utils"
)

// AuthHandler issues staff access tokens.  The staff password is held
// only as a bcrypt hash.
type AuthHandler struct {
	User      string
	Password  utils.StaffPassword
	JWTSecret string
	TTL       time.Duration
}

// NewAuthHandler hashes the configured staff password with the given
// bcrypt cost.
func NewAuthHandler(user, password, secret string, ttl time.Duration, cost int) (*AuthHandler, error) {
	pw, err := utils.HashStaffPassword(password, cost)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{User: user, Password: pw, JWTSecret: secret, TTL: ttl}, nil
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResp struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        string    `json:"role"`
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.User)) == 1
	if !h.Password.Matches(req.Password) || !userOK {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAccessToken(h.JWTSecret, h.User, utils.RoleStaff, h.TTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, tokenResp{AccessToken: tok.Token, ExpiresAt: tok.Exp, Role: utils.RoleStaff})
}
