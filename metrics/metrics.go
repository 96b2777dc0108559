package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Catalog load results
const (
	LoadResultOK         = "ok"
	LoadResultLoadError  = "load_error"
	LoadResultDecodeErr  = "decode_error"
	LoadResultEmpty      = "empty"
	LoadResultOtherError = "error"
)

var (
	// CatalogLoads tracks catalog loads by source mode and result
	CatalogLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_catalog_loads_total",
		Help: "Total number of catalog loads",
	}, []string{"mode", "result"})

	// CatalogLoadDuration tracks how long catalog loads take
	CatalogLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "iptv_catalog_load_duration_seconds",
		Help:    "Duration of catalog loads",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})

	// CatalogChannels tracks the number of eligible channels in the current catalog
	CatalogChannels = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "iptv_catalog_channels",
		Help: "Number of eligible channels in the current catalog",
	})

	// ViewQueries tracks how many times the filtered view was computed
	ViewQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "iptv_view_queries_total",
		Help: "Total number of filtered view computations",
	})

	// PlaybackSessions tracks playback sessions started, by path taken
	PlaybackSessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_playback_sessions_total",
		Help: "Total number of playback sessions started",
	}, []string{"path"})

	// PlaybackActive is 1 while a session is loading or playing
	PlaybackActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "iptv_playback_active",
		Help: "Whether a playback session is loading or playing",
	})

	// PlaybackErrors tracks sessions that ended in the errored state
	PlaybackErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iptv_playback_errors_total",
		Help: "Total number of playback errors",
	}, []string{"reason"})

	// HealthCheckFailures tracks health check failures
	HealthCheckFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "iptv_health_check_failures_total",
		Help: "Total number of health check failures",
	})
)

// RecordCatalogLoad increments the load counter and observes its duration
func RecordCatalogLoad(mode, result string, seconds float64) {
	CatalogLoads.WithLabelValues(mode, result).Inc()
	CatalogLoadDuration.WithLabelValues(mode).Observe(seconds)
}

// SetCatalogChannels sets the number of channels in the current catalog
func SetCatalogChannels(count int) {
	CatalogChannels.Set(float64(count))
}

// RecordViewQuery increments the view query counter
func RecordViewQuery() {
	ViewQueries.Inc()
}

// RecordPlaybackSession increments the session counter for a path ("client" or "native")
func RecordPlaybackSession(path string) {
	PlaybackSessions.WithLabelValues(path).Inc()
}

// SetPlaybackActive sets the active playback gauge
func SetPlaybackActive(active bool) {
	if active {
		PlaybackActive.Set(1)
		return
	}
	PlaybackActive.Set(0)
}

// RecordPlaybackError increments the playback error counter
func RecordPlaybackError(reason string) {
	PlaybackErrors.WithLabelValues(reason).Inc()
}

// RecordHealthCheckFailure increments the health check failure counter
func RecordHealthCheckFailure() {
	HealthCheckFailures.Inc()
}
