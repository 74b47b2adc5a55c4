package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// CustomerHandler serves the customer directory.
type CustomerHandler struct {
	errorWriter
	Svc *booking.Service
}

func NewCustomerHandler(svc *booking.Service, log *slog.Logger) *CustomerHandler {
	if svc == nil {
		panic("nil service passed to NewCustomerHandler")
	}
	return &CustomerHandler{errorWriter: newErrorWriter(log), Svc: svc}
}

type customerReq struct {
	Name  string `json:"name" validate:"required,max=128"`
	Phone string `json:"phone" validate:"max=32"`
	Email string `json:"email" validate:"omitempty,email,max=255"`
}

func (r customerReq) model() model.Customer {
	return model.Customer{Name: r.Name, Phone: r.Phone, Email: r.Email}
}

// bindCustomer decodes and validates the body.  A non-empty message
// means the request is invalid.
func bindCustomer(c echo.Context) (customerReq, string) {
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return req, "invalid body"
	}
	if err := c.Validate(&req); err != nil {
		return req, err.Error()
	}
	return req, ""
}

// Register handles POST /v1/customers.
func (h *CustomerHandler) Register(c echo.Context) error {
	req, msg := bindCustomer(c)
	if msg != "" {
		return badRequest(c, msg)
	}
	cu, err := h.Svc.RegisterCustomer(c.Request().Context(), req.model())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toCustomer(*cu)})
}

// Update handles PUT /v1/customers/:id.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	req, msg := bindCustomer(c)
	if msg != "" {
		return badRequest(c, msg)
	}
	cu, err := h.Svc.UpdateCustomer(c.Request().Context(), id, req.model())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toCustomer(*cu)})
}

// Get handles GET /v1/customers/:id.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	cu, err := h.Svc.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toCustomer(*cu)})
}

// List handles GET /v1/customers.
func (h *CustomerHandler) List(c echo.Context) error {
	list, err := h.Svc.ListCustomers(c.Request().Context())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": mapSlice(list, toCustomer)})
}

// Reservations handles GET /v1/customers/:id/reservations, latest
// check-in first.
func (h *CustomerHandler) Reservations(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	list, err := h.Svc.ListCustomerReservations(c.Request().Context(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": mapSlice(list, toReservation)})
}
