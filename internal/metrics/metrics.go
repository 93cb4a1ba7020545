package metrics

import (
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	// Engine metrics
	TicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "countup_ticks_total",
			Help: "Total elapsed-time ticks processed while running",
		},
	)

	TickLag = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "countup_tick_lag_seconds",
			Help:    "How late a tick fired relative to its nominal period",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	ElapsedSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "countup_elapsed_seconds",
			Help: "Last elapsed-seconds value emitted for the current activity",
		},
	)

	EngineTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "countup_engine_transitions_total",
			Help: "Engine state transitions",
		},
		[]string{"transition"},
	)

	// Activity metrics
	ActivitiesFinished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "countup_activities_finished_total",
			Help: "Total activities finished and recorded in history",
		},
	)

	TrackedSeconds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "countup_tracked_seconds_total",
			Help: "Total seconds recorded across finished activities",
		},
	)
)

func init() {
	prometheus.MustRegister(
		TicksTotal,
		TickLag,
		ElapsedSeconds,
		EngineTransitions,
		ActivitiesFinished,
		TrackedSeconds,
	)
}

// Server is the metrics HTTP server
type Server struct {
	server   *http.Server
	logger   zerolog.Logger
	listener net.Listener // Optional pre-created listener (for systemd socket activation)
}

// NewServer creates a new metrics server
func NewServer(addr string, logger zerolog.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &Server{
		server: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
		logger: logger.With().Str("component", "metrics").Logger(),
	}
}

// SetListener sets a pre-created listener for systemd socket activation
func (s *Server) SetListener(ln net.Listener) {
	s.listener = ln
}

// Start starts the metrics server
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("Starting metrics server")
	go func() {
		var err error
		if s.listener != nil {
			s.logger.Debug().Msg("Using systemd socket-activated metrics listener")
			err = s.server.Serve(s.listener)
		} else {
			err = s.server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("Metrics server error")
		}
	}()
	return nil
}

// Stop stops the metrics server
func (s *Server) Stop() error {
	s.logger.Info().Msg("Stopping metrics server")
	return s.server.Close()
}
