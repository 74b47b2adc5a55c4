package router

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/obs"
	"github.com/iliyamo/hotel-reservation/internal/repository/memory"
)

const secret = "test-secret"

type api struct {
	t *testing.T
	e *echo.Echo
}

func newAPI(t *testing.T) *api {
	t.Helper()
	store := memory.NewStore()
	metrics := obs.NewMetrics()
	svc := booking.NewService(booking.Deps{
		Rooms:        store.Rooms(),
		Reservations: store.Reservations(),
		Customers:    store.Customers(),
		Clock:        booking.FixedClock(time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)),
		Metrics:      metrics,
	})
	auth, err := handler.NewAuthHandler("admin", "s3cret", secret, time.Hour, bcrypt.MinCost)
	require.NoError(t, err)
	e := New(Deps{
		Auth:         auth,
		Rooms:        handler.NewRoomHandler(svc, nil),
		Customers:    handler.NewCustomerHandler(svc, nil),
		Reservations: handler.NewReservationHandler(svc, nil),
		Metrics:      metrics.Handler(),
		JWTSecret:    secret,
		Logger:       slog.New(slog.DiscardHandler),
	})
	return &api{t: t, e: e}
}

func (a *api) call(method, path string, body any, token string) (int, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	out := map[string]any{}
	if rec.Body.Len() > 0 && rec.Header().Get(echo.HeaderContentType) != echo.MIMETextPlainCharsetUTF8 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func (a *api) login() string {
	a.t.Helper()
	code, body := a.call(http.MethodPost, "/v1/auth/login", echo.Map{"username": "admin", "password": "s3cret"}, "")
	require.Equal(a.t, http.StatusOK, code, body)
	return body["access_token"].(string)
}

func item(body map[string]any) map[string]any { return body["item"].(map[string]any) }

func TestHealthAndMetrics(t *testing.T) {
	a := newAPI(t)
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	a.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hotel_reservations_created_total")
}

func TestLogin(t *testing.T) {
	a := newAPI(t)
	code, _ := a.call(http.MethodPost, "/v1/auth/login", echo.Map{"username": "admin", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = a.call(http.MethodPost, "/v1/auth/login", echo.Map{"username": "admin"}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, a.login())
}

func TestRoomCreationRequiresStaff(t *testing.T) {
	a := newAPI(t)
	code, _ := a.call(http.MethodPost, "/v1/rooms", echo.Map{"type": "Doble", "rate": "70"}, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	token := a.login()
	code, body := a.call(http.MethodPost, "/v1/rooms", echo.Map{"type": "Doble", "rate": "70.5"}, token)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "70.50", item(body)["rate"])
	assert.Equal(t, true, item(body)["available"])

	code, _ = a.call(http.MethodPost, "/v1/rooms", echo.Map{"type": "Doble", "rate": "-1"}, token)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = a.call(http.MethodPost, "/v1/rooms", echo.Map{"rate": "10"}, token)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCustomerEndpoints(t *testing.T) {
	a := newAPI(t)
	code, _ := a.call(http.MethodPost, "/v1/customers", echo.Map{"name": ""}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = a.call(http.MethodPost, "/v1/customers", echo.Map{"name": "Ana", "email": "not-an-email"}, "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := a.call(http.MethodPost, "/v1/customers", echo.Map{"name": "Ana", "phone": "600", "email": "ana@example.com"}, "")
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Ana", item(body)["description"].(map[string]any)["title"])

	code, body = a.call(http.MethodPut, "/v1/customers/1", echo.Map{"name": "Ana María", "phone": "611"}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "611", item(body)["phone"])

	code, body = a.call(http.MethodGet, "/v1/customers/1", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ana María", item(body)["name"])

	code, body = a.call(http.MethodGet, "/v1/customers/2", nil, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "customer not found", body["error"])
	code, _ = a.call(http.MethodGet, "/v1/customers/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = a.call(http.MethodGet, "/v1/customers", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["items"], 1)
}

func TestReservationFlow(t *testing.T) {
	a := newAPI(t)
	token := a.login()
	code, _ := a.call(http.MethodPost, "/v1/rooms", echo.Map{"type": "Doble", "rate": "70.00"}, token)
	require.Equal(t, http.StatusCreated, code)
	code, _ = a.call(http.MethodPost, "/v1/customers", echo.Map{"name": "Ana"}, "")
	require.Equal(t, http.StatusCreated, code)
	code, _ = a.call(http.MethodPost, "/v1/customers", echo.Map{"name": "Luis"}, "")
	require.Equal(t, http.StatusCreated, code)

	req := echo.Map{"customer_id": 1, "room_id": 1, "check_in": "01/06/2024", "check_out": "2024-06-04"}

	code, body := a.call(http.MethodPost, "/v1/reservations/quote", req, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "210.00", item(body)["total"])
	assert.EqualValues(t, 3, item(body)["nights"])

	code, body = a.call(http.MethodPost, "/v1/reservations", req, "")
	require.Equal(t, http.StatusCreated, code)
	res := item(body)
	assert.Equal(t, "210.00", res["total"])
	assert.Equal(t, "2024-06-01", res["check_in"])
	assert.Equal(t, false, res["room"].(map[string]any)["available"])

	_, body = a.call(http.MethodGet, "/v1/rooms/available", nil, "")
	assert.Empty(t, body["items"])

	second := echo.Map{"customer_id": 2, "room_id": 1, "check_in": "2024-07-01", "check_out": "2024-07-02"}
	code, body = a.call(http.MethodPost, "/v1/reservations", second, "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "room is not available", body["error"])

	code, body = a.call(http.MethodGet, "/v1/reservations", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["items"], 1)

	code, body = a.call(http.MethodGet, "/v1/customers/1/reservations", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["items"], 1)
	code, body = a.call(http.MethodGet, "/v1/customers/2/reservations", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["items"])
	code, _ = a.call(http.MethodGet, "/v1/customers/9/reservations", nil, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = a.call(http.MethodGet, "/v1/reservations/1", nil, "")
	assert.Equal(t, http.StatusOK, code)

	code, body = a.call(http.MethodDelete, "/v1/reservations/1", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, item(body)["room"].(map[string]any)["available"])

	code, _ = a.call(http.MethodDelete, "/v1/reservations/1", nil, "")
	assert.Equal(t, http.StatusNotFound, code)

	_, body = a.call(http.MethodGet, "/v1/rooms/available", nil, "")
	assert.Len(t, body["items"], 1)
}

func TestReservationErrors(t *testing.T) {
	a := newAPI(t)
	token := a.login()
	a.call(http.MethodPost, "/v1/rooms", echo.Map{"type": "Simple", "rate": "50"}, token)
	a.call(http.MethodPost, "/v1/customers", echo.Map{"name": "Ana"}, "")

	tests := []struct {
		name string
		body echo.Map
		code int
	}{
		{"bad date", echo.Map{"customer_id": 1, "room_id": 1, "check_in": "31/02/2024", "check_out": "2024-06-04"}, http.StatusBadRequest},
		{"missing room", echo.Map{"customer_id": 1, "check_in": "2024-06-01", "check_out": "2024-06-04"}, http.StatusBadRequest},
		{"unknown customer", echo.Map{"customer_id": 9, "room_id": 1, "check_in": "2024-06-01", "check_out": "2024-06-04"}, http.StatusNotFound},
		{"unknown room", echo.Map{"customer_id": 1, "room_id": 9, "check_in": "2024-06-01", "check_out": "2024-06-04"}, http.StatusNotFound},
		{"inverted", echo.Map{"customer_id": 1, "room_id": 1, "check_in": "2024-06-04", "check_out": "2024-06-01"}, http.StatusUnprocessableEntity},
		{"past", echo.Map{"customer_id": 1, "room_id": 1, "check_in": "2024-05-19", "check_out": "2024-06-01"}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := a.call(http.MethodPost, "/v1/reservations", tt.body, "")
			assert.Equal(t, tt.code, code)
		})
	}

	_, body := a.call(http.MethodGet, "/v1/rooms/available", nil, "")
	assert.Len(t, body["items"], 1)
}

func TestReservationTotalTooLarge(t *testing.T) {
	a := newAPI(t)
	token := a.login()
	code, _ := a.call(http.MethodPost, "/v1/rooms", echo.Map{"type": "Palace", "rate": "92233720368547757"}, token)
	require.Equal(t, http.StatusCreated, code)
	code, _ = a.call(http.MethodPost, "/v1/rooms", echo.Map{"type": "Palace", "rate": "184467440737095517"}, token)
	assert.Equal(t, http.StatusBadRequest, code)
	a.call(http.MethodPost, "/v1/customers", echo.Map{"name": "Ana"}, "")

	body := echo.Map{"customer_id": 1, "room_id": 1, "check_in": "2024-06-01", "check_out": "2024-06-04"}
	code, resp := a.call(http.MethodPost, "/v1/reservations", body, "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "stay total is too large", resp["error"])

	_, resp = a.call(http.MethodGet, "/v1/rooms/available", nil, "")
	assert.Len(t, resp["items"], 1)
}

func TestNewWithoutLogger(t *testing.T) {
	svc := booking.NewService(booking.Deps{
		Rooms:        memory.NewStore().Rooms(),
		Reservations: memory.NewStore().Reservations(),
		Customers:    memory.NewStore().Customers(),
	})
	e := New(Deps{
		Rooms:        handler.NewRoomHandler(svc, nil),
		Customers:    handler.NewCustomerHandler(svc, nil),
		Reservations: handler.NewReservationHandler(svc, nil),
		JWTSecret:    secret,
	})

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}
