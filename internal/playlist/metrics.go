package playlist

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"go-spotify/internal/models"
)

// Metrics is an Observer that exports playlist activity to Prometheus.
type Metrics struct {
	appends  prometheus.Counter
	removals prometheus.Counter
	grows    prometheus.Counter
	errors   *prometheus.CounterVec
	songs    prometheus.Gauge
	capacity prometheus.Gauge
}

// NewMetrics registers the playlist collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		appends: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playlist_appends_total",
			Help: "Total number of songs appended",
		}),
		removals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playlist_removals_total",
			Help: "Total number of songs removed",
		}),
		grows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playlist_grow_total",
			Help: "Number of times the slot storage doubled",
		}),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playlist_errors_total",
				Help: "Failed playlist operations by kind",
			},
			[]string{"kind"},
		),
		songs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "playlist_songs",
			Help: "Current number of songs",
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "playlist_capacity",
			Help: "Current number of allocated slots",
		}),
	}

	for _, c := range []prometheus.Collector{m.appends, m.removals, m.grows, m.errors, m.songs, m.capacity} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	m.capacity.Set(InitialCapacity)
	return m, nil
}

func (m *Metrics) Appended(count, capacity int) {
	m.appends.Inc()
	m.songs.Set(float64(count))
	m.capacity.Set(float64(capacity))
}

func (m *Metrics) Removed(count, capacity int) {
	m.removals.Inc()
	m.songs.Set(float64(count))
	m.capacity.Set(float64(capacity))
}

func (m *Metrics) Grew(_, to int) {
	m.grows.Inc()
	m.capacity.Set(float64(to))
}

func (m *Metrics) Failed(err error) {
	m.errors.WithLabelValues(errorKind(err)).Inc()
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrAllocation):
		return "allocation"
	case errors.Is(err, ErrIndexOutOfRange):
		return "index"
	case errors.Is(err, models.ErrNegativeDuration):
		return "invalid"
	default:
		return "other"
	}
}
