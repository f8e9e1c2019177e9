package common

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	PageViewsTotal               *prometheus.CounterVec
	RecommendationDecisionsTotal *prometheus.CounterVec
	ManualCommandsTotal          *prometheus.CounterVec
	SimulationRunsTotal          *prometheus.CounterVec
	SimulationRunSeconds         prometheus.Histogram
	HttpRequestSeconds           *prometheus.HistogramVec
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		PageViewsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "raildss_page_views_total",
				Help: "Dashboard pages rendered",
			},
			[]string{"page"},
		),
		RecommendationDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "raildss_recommendation_decisions_total",
				Help: "Accept/reject clicks on the live recommendation",
			},
			[]string{"decision"},
		),
		ManualCommandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "raildss_manual_commands_total",
				Help: "Manual override commands acknowledged",
			},
			[]string{"action"},
		),
		SimulationRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "raildss_simulation_runs_total",
				Help: "What-if simulation runs completed",
			},
			[]string{"scenario"},
		),
		SimulationRunSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "raildss_simulation_run_seconds",
				Help:    "Wall time of a simulation run including the artificial delay",
				Buckets: []float64{0.1, 0.5, 1, 2, 3, 5, 10},
			},
		),
		HttpRequestSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "raildss_http_request_duration_seconds",
				Help:    "Dashboard HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	registry.MustRegister(
		metrics.PageViewsTotal,
		metrics.RecommendationDecisionsTotal,
		metrics.ManualCommandsTotal,
		metrics.SimulationRunsTotal,
		metrics.SimulationRunSeconds,
		metrics.HttpRequestSeconds,
	)

	return metrics
}

type TelemetryServer struct {
	addr     string
	mux      *http.ServeMux
	registry *prometheus.Registry
	logger   *slog.Logger

	server   *http.Server
	listener net.Listener
}

func NewTelemetryServer(addr string, logger *slog.Logger) *TelemetryServer {
	telemetry := &TelemetryServer{
		addr:     addr,
		registry: prometheus.NewRegistry(),
		mux:      http.NewServeMux(),
		logger:   logger,
	}

	telemetry.mux.Handle(
		"/metrics",
		promhttp.HandlerFor(telemetry.registry, promhttp.HandlerOpts{}),
	)

	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "raildss_build_info",
			Help: "Build metadata",
		},
		[]string{"version", "git_commit"},
	)

	telemetry.registry.MustRegister(
		collectors.NewGoCollector(), // Go runtime metrics
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		buildInfo,
	)

	buildInfo.WithLabelValues(Version, GitCommit).Set(1)

	telemetry.mux.HandleFunc("/debug/pprof/", pprof.Index)
	telemetry.mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	telemetry.mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	telemetry.mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	telemetry.mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return telemetry
}

func (telemetry *TelemetryServer) GetRegistry() *prometheus.Registry {
	return telemetry.registry
}

func (telemetry *TelemetryServer) Handler() http.Handler {
	return telemetry.mux
}

// Serve blocks until ctx is done, then closes the listener.
func (telemetry *TelemetryServer) Serve(ctx context.Context) error {
	telemetry.server = &http.Server{
		Addr:              telemetry.addr,
		Handler:           telemetry.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	listener, err := net.Listen("tcp", telemetry.addr)
	if err != nil {
		return err
	}
	telemetry.listener = listener

	errs := make(chan error, 1)
	go func() {
		errs <- telemetry.server.Serve(telemetry.listener)
	}()

	telemetry.logger.Info("telemetry server started", "addr", listener.Addr().String())

	select {
	case err := <-errs:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		return telemetry.Stop()
	}
}

func (telemetry *TelemetryServer) Stop() error {
	if telemetry.server == nil {
		return nil
	}

	return telemetry.server.Close()
}
