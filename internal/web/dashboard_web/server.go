package dashboard_web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"tarediiran-industries.com/rail-dss/internal/audittrail"
	"tarediiran-industries.com/rail-dss/internal/common"
	"tarediiran-industries.com/rail-dss/internal/session"
)

// Options are the config values the handlers read per request.
type Options struct {
	PollSeconds      int
	SimulationDelay  time.Duration
	SessionTTL       time.Duration
	LiveMapURL       string
	SimulationMapURL string
	StaticDir        string
	AllowedOrigins   []string
}

func OptionsFromConfig(cfg Config) Options {
	return Options{
		PollSeconds:      cfg.PollSeconds,
		SimulationDelay:  cfg.SimulationDelay,
		SessionTTL:       cfg.SessionTTL,
		LiveMapURL:       cfg.LiveMapURL,
		SimulationMapURL: cfg.SimulationMapURL,
		StaticDir:        cfg.StaticDir,
		AllowedOrigins:   cfg.AllowedOrigins,
	}
}

type Dependencies struct {
	Logger     *slog.Logger
	Metrics    *common.Metrics
	AuditTrail audittrail.Repository
	Sessions   session.Store
	Options    Options
	Now        func() time.Time
}

type DashboardServer struct {
	logger     *slog.Logger
	metrics    *common.Metrics
	auditTrail audittrail.Repository
	sessions   session.Store
	options    Options
	now        func() time.Time

	router   chi.Router
	server   *http.Server
	renderer *Renderer
}

func NewDashboardServer(listenAddr string, deps Dependencies) (*DashboardServer, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(deps.Logger, deps.Metrics))
	router.Use(middleware.Recoverer)

	server := &DashboardServer{
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		auditTrail: deps.AuditTrail,
		sessions:   deps.Sessions,
		options:    deps.Options,
		now:        deps.Now,
		router:     router,
		renderer:   renderer,
		server: &http.Server{
			Addr:              listenAddr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	router.Get("/", func(writer http.ResponseWriter, request *http.Request) {
		http.Redirect(writer, request, "/live", http.StatusFound)
	})
	router.Get("/health", server.handleHealth)
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticFiles())))
	if deps.Options.StaticDir != "" {
		router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(deps.Options.StaticDir))))
	}

	router.Group(func(pages chi.Router) {
		pages.Use(session.Middleware(deps.Options.SessionTTL))

		pages.Get("/live", server.handleLivePage)
		pages.Get("/live/trains/partial", server.handleTrainsPartial)
		pages.Post("/live/recommendation/{decision}", server.handleRecommendationDecision)
		pages.Post("/live/override", server.handleManualOverride)

		pages.Get("/simulation", server.handleSimulationPage)
		pages.Post("/simulation/run", server.handleSimulationRun)

		pages.Get("/performance", server.handlePerformancePage)
	})

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: deps.Options.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})

	router.Route("/api", func(api chi.Router) {
		api.Use(corsHandler)
		api.Get("/trains", server.handleAPITrains)
		api.Get("/recommendation", server.handleAPIRecommendation)
		api.Post("/recommendation/{decision}", server.handleAPIRecommendationDecision)
		api.Get("/audit", server.handleAPIAudit)
		api.Get("/history", server.handleAPIHistory)
	})

	router.Route("/feeds", func(feeds chi.Router) {
		feeds.Use(corsHandler)
		feeds.Get("/trains.pb", server.handleTrainFeed)
	})

	return server, nil
}

func (server *DashboardServer) Handler() http.Handler {
	return server.router
}

// Serve blocks until ctx is cancelled or the listener fails, then shuts down
// with a 10 second grace period.
func (server *DashboardServer) Serve(ctx context.Context) error {
	server.logger.Info("dashboard listening", "addr", server.server.Addr)

	errs := make(chan error, 1)
	go func() {
		err := server.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err, ok := <-errs:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	server.logger.Info("shutting down dashboard")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.server.Shutdown(shutdownCtx)
}
