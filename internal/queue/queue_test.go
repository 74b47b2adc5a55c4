package queue

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

func sampleEvent() booking.Event {
	in := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return booking.Event{
		Type: booking.EventReservationCreated,
		Reservation: model.ReservationDetail{
			Reservation: model.Reservation{ID: 7, CustomerID: 1, RoomID: 2, CheckIn: in, CheckOut: in.AddDate(0, 0, 3), Total: model.Cents(21000)},
			Customer:    model.Customer{ID: 1, Name: "Ana", Phone: "600", Email: "ana@example.com"},
			Room:        model.Room{ID: 2, Type: "Doble", Rate: model.Cents(7000)},
		},
		OccurredAt: time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewReservationEvent(t *testing.T) {
	ev := NewReservationEvent(sampleEvent())

	_, err := uuid.Parse(ev.EventID)
	require.NoError(t, err)
	assert.Equal(t, "reservation.created", ev.Type)
	assert.Equal(t, "2024-06-01", ev.CheckIn)
	assert.Equal(t, "2024-06-04", ev.CheckOut)
	assert.Equal(t, "210.00", ev.Total)
	assert.Equal(t, "Ana", ev.Customer.Title)
	assert.Equal(t, "2024-05-20T10:00:00Z", ev.OccurredAt)
	assert.NotEqual(t, ev.EventID, NewReservationEvent(sampleEvent()).EventID)
}

func TestConsumerHandleAppendsLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	c := &Consumer{LogDir: dir, Log: slog.New(slog.DiscardHandler)}

	body, err := json.Marshal(NewReservationEvent(sampleEvent()))
	require.NoError(t, err)
	require.NoError(t, c.Handle(body))

	cancelled := sampleEvent()
	cancelled.Type = booking.EventReservationCancelled
	body, err = json.Marshal(NewReservationEvent(cancelled))
	require.NoError(t, err)
	require.NoError(t, c.Handle(body))

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "reservation.created | reservation_id=7")
	assert.Contains(t, lines[0], `customer="Ana"`)
	assert.Contains(t, lines[0], "total=210.00")
	assert.Contains(t, lines[1], "reservation.cancelled")
}

func TestConsumerHandleRejectsBadPayloads(t *testing.T) {
	c := &Consumer{LogDir: t.TempDir(), Log: slog.New(slog.DiscardHandler)}

	assert.Error(t, c.Handle([]byte("{not json")))
	assert.Error(t, c.Handle([]byte(`{"type":""}`)))

	_, err := os.Stat(filepath.Join(c.LogDir, LogFile))
	assert.True(t, os.IsNotExist(err))
}
