// Package obs holds the logging and metrics setup shared by the server
// and the workflow.
package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records reservation workflow outcomes on a private registry.
// It satisfies booking.Metrics.
type Metrics struct {
	reg         *prometheus.Registry
	created     prometheus.Counter
	cancelled   prometheus.Counter
	aborted     *prometheus.CounterVec
	compensated prometheus.Counter
}

// NewMetrics registers the workflow counters plus the Go and process
// collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		created: f.NewCounter(prometheus.CounterOpts{
			Name: "hotel_reservations_created_total",
			Help: "Reservations persisted.",
		}),
		cancelled: f.NewCounter(prometheus.CounterOpts{
			Name: "hotel_reservations_cancelled_total",
			Help: "Reservations cancelled and rooms released.",
		}),
		aborted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_reservations_aborted_total",
			Help: "Booking attempts aborted, by reason.",
		}, []string{"reason"}),
		compensated: f.NewCounter(prometheus.CounterOpts{
			Name: "hotel_reservation_compensations_total",
			Help: "Room claims undone after a failed write.",
		}),
	}
}

func (m *Metrics) ReservationCreated()              { m.created.Inc() }
func (m *Metrics) ReservationCancelled()            { m.cancelled.Inc() }
func (m *Metrics) ReservationAborted(reason string) { m.aborted.WithLabelValues(reason).Inc() }
func (m *Metrics) Compensated()                     { m.compensated.Inc() }

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
