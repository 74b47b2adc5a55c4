package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/stay"
)

// ReservationHandler exposes the booking workflow.
type ReservationHandler struct {
	errorWriter
	Svc *booking.Service
}

func NewReservationHandler(svc *booking.Service, log *slog.Logger) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{errorWriter: newErrorWriter(log), Svc: svc}
}

// reservationReq carries dates as dd/mm/yyyy or yyyy-mm-dd.
type reservationReq struct {
	CustomerID uint64 `json:"customer_id" validate:"required,gt=0"`
	RoomID     uint64 `json:"room_id" validate:"required,gt=0"`
	CheckIn    string `json:"check_in" validate:"required"`
	CheckOut   string `json:"check_out" validate:"required"`
}

func bindReservation(c echo.Context) (booking.Request, string) {
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return booking.Request{}, "invalid body"
	}
	if err := c.Validate(&req); err != nil {
		return booking.Request{}, err.Error()
	}
	in, err := stay.ParseDate(req.CheckIn)
	if err != nil {
		return booking.Request{}, "check_in must be dd/mm/yyyy or yyyy-mm-dd"
	}
	out, err := stay.ParseDate(req.CheckOut)
	if err != nil {
		return booking.Request{}, "check_out must be dd/mm/yyyy or yyyy-mm-dd"
	}
	return booking.Request{CustomerID: req.CustomerID, RoomID: req.RoomID, CheckIn: in, CheckOut: out}, ""
}

type quoteResp struct {
	Customer customerResp `json:"customer"`
	Room     roomResp     `json:"room"`
	CheckIn  string       `json:"check_in"`
	CheckOut string       `json:"check_out"`
	Nights   int64        `json:"nights"`
	Total    string       `json:"total"`
}

// Quote handles POST /v1/reservations/quote.  It validates and prices
// the request without booking, the confirmation step before Create.
func (h *ReservationHandler) Quote(c echo.Context) error {
	req, msg := bindReservation(c)
	if msg != "" {
		return badRequest(c, msg)
	}
	q, err := h.Svc.Quote(c.Request().Context(), req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": quoteResp{
		Customer: toCustomer(q.Customer),
		Room:     toRoom(q.Room),
		CheckIn:  q.CheckIn.Format(time.DateOnly),
		CheckOut: q.CheckOut.Format(time.DateOnly),
		Nights:   q.Nights,
		Total:    q.Total.String(),
	}})
}

// Create handles POST /v1/reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
	req, msg := bindReservation(c)
	if msg != "" {
		return badRequest(c, msg)
	}
	d, err := h.Svc.CreateReservation(c.Request().Context(), req)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toReservation(*d)})
}

// List handles GET /v1/reservations, latest check-in first.
func (h *ReservationHandler) List(c echo.Context) error {
	list, err := h.Svc.ListReservations(c.Request().Context())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": mapSlice(list, toReservation)})
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	d, err := h.Svc.GetReservation(c.Request().Context(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toReservation(*d)})
}

// Cancel handles DELETE /v1/reservations/:id and returns the cancelled
// reservation with its room released.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid reservation id")
	}
	d, err := h.Svc.CancelReservation(c.Request().Context(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toReservation(*d)})
}
