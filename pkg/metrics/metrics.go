package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Slot engine metrics
	SlotComputations    *prometheus.CounterVec
	SlotComputationTime prometheus.Histogram
	SlotsReturned       prometheus.Histogram
	SlotCacheHits       prometheus.Counter
	SlotCacheMisses     prometheus.Counter

	// Booking metrics
	AppointmentsBooked    prometheus.Counter
	AppointmentsCancelled prometheus.Counter
	BookingConflicts      prometheus.Counter
}

// NewMetrics creates and registers all application metrics against the
// given registerer (pass prometheus.DefaultRegisterer in production, a
// fresh registry in tests).
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SlotComputations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_computations_total",
			Help:      "Availability computations by outcome",
		}, []string{"outcome"}),
		SlotComputationTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "slot_computation_duration_seconds",
			Help:      "Time spent computing available slots",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		SlotsReturned: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "slots_returned",
			Help:      "Number of free slots returned per computation",
			Buckets:   []float64{1, 4, 8, 16, 32, 64},
		}),
		SlotCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_cache_hits_total",
			Help:      "Availability requests served from the slot cache",
		}),
		SlotCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_cache_misses_total",
			Help:      "Availability requests that had to be computed",
		}),
		AppointmentsBooked: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_booked_total",
			Help:      "Successfully booked appointments",
		}),
		AppointmentsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_cancelled_total",
			Help:      "Cancelled appointments",
		}),
		BookingConflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Bookings rejected because the slot was taken",
		}),
	}
}
