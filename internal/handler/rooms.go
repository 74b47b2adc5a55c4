package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RoomHandler serves the room inventory.
type RoomHandler struct {
	errorWriter
	Svc *booking.Service
}

func NewRoomHandler(svc *booking.Service, log *slog.Logger) *RoomHandler {
	if svc == nil {
		panic("nil service passed to NewRoomHandler")
	}
	return &RoomHandler{errorWriter: newErrorWriter(log), Svc: svc}
}

type createRoomReq struct {
	Type string `json:"type" validate:"required,max=64"`
	Rate string `json:"rate" validate:"required"`
}

// Create handles POST /v1/rooms (staff only).  Rate is a decimal string
// such as "70.00".
func (h *RoomHandler) Create(c echo.Context) error {
	var req createRoomReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}
	rate, err := model.ParseMoney(req.Rate)
	if err != nil {
		return h.writeError(c, err)
	}
	room, err := h.Svc.CreateRoom(c.Request().Context(), req.Type, rate)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toRoom(*room)})
}

// List handles GET /v1/rooms.
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.Svc.ListRooms(c.Request().Context())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": mapSlice(rooms, toRoom)})
}

// ListAvailable handles GET /v1/rooms/available.
func (h *RoomHandler) ListAvailable(c echo.Context) error {
	rooms, err := h.Svc.ListAvailableRooms(c.Request().Context())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": mapSlice(rooms, toRoom)})
}
