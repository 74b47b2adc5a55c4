package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// errorResponse maps a workflow error to its status and message.  Each
// kind has exactly one rendering.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, booking.ErrCustomerNotFound):
		return http.StatusNotFound, "customer not found"
	case errors.Is(err, booking.ErrRoomNotFound):
		return http.StatusNotFound, "room not found"
	case errors.Is(err, booking.ErrReservationNotFound):
		return http.StatusNotFound, "reservation not found"
	case errors.Is(err, booking.ErrRoomUnavailable):
		return http.StatusConflict, "room is not available"
	case errors.Is(err, booking.ErrInvertedRange):
		return http.StatusUnprocessableEntity, "check-in must not be after check-out"
	case errors.Is(err, booking.ErrPastCheckIn):
		return http.StatusUnprocessableEntity, "check-in must not be in the past"
	case errors.Is(err, booking.ErrTotalTooLarge):
		return http.StatusUnprocessableEntity, "stay total is too large"
	case errors.Is(err, booking.ErrInvalidCustomer):
		return http.StatusBadRequest, "customer name is required"
	case errors.Is(err, booking.ErrInvalidRoom):
		return http.StatusBadRequest, "room type is required and rate must not be negative"
	case errors.Is(err, model.ErrInvalidMoney):
		return http.StatusBadRequest, "rate must be a non-negative amount with at most two decimals"
	case errors.Is(err, booking.ErrPersistenceFailed):
		return http.StatusInternalServerError, "storage failure"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// errorWriter renders workflow errors and logs server-side failures.
type errorWriter struct {
	log *slog.Logger
}

func newErrorWriter(log *slog.Logger) errorWriter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return errorWriter{log: log}
}

func (w errorWriter) writeError(c echo.Context, err error) error {
	status, msg := errorResponse(err)
	if status >= http.StatusInternalServerError {
		w.log.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "status", status, "err", err)
	}
	return c.JSON(status, echo.Map{"error": msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
