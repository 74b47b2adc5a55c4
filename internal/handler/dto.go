package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/pricing"
)

type roomResp struct {
	ID        uint64 `json:"id"`
	Type      string `json:"type"`
	Rate      string `json:"rate"`
	Available bool   `json:"available"`
}

func toRoom(r model.Room) roomResp {
	return roomResp{ID: r.ID, Type: r.Type, Rate: r.Rate.String(), Available: r.Available}
}

type customerResp struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Phone       string            `json:"phone"`
	Email       string            `json:"email"`
	Description model.Description `json:"description"`
}

func toCustomer(c model.Customer) customerResp {
	return customerResp{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email, Description: c.Describe()}
}

type reservationResp struct {
	ID       uint64       `json:"id"`
	Customer customerResp `json:"customer"`
	Room     roomResp     `json:"room"`
	CheckIn  string       `json:"check_in"`
	CheckOut string       `json:"check_out"`
	Nights   int64        `json:"nights"`
	Total    string       `json:"total"`
}

func toReservation(d model.ReservationDetail) reservationResp {
	return reservationResp{
		ID:       d.ID,
		Customer: toCustomer(d.Customer),
		Room:     toRoom(d.Room),
		CheckIn:  d.CheckIn.Format(time.DateOnly),
		CheckOut: d.CheckOut.Format(time.DateOnly),
		Nights:   pricing.Nights(d.CheckIn, d.CheckOut),
		Total:    d.Total.String(),
	}
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

// pathID parses a positive :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}
