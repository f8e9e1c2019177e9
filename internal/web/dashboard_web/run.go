package dashboard_web

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"tarediiran-industries.com/rail-dss/internal/audittrail"
	"tarediiran-industries.com/rail-dss/internal/common"
	database "tarediiran-industries.com/rail-dss/internal/db"
	"tarediiran-industries.com/rail-dss/internal/session"
)

func Run(cfg Config, stdOut, errOut io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := common.NewLogger(stdOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(errOut, "Error:", err)
		return -1
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("dashboard stopped", "err", err)
		fmt.Fprintln(errOut, "Error:", err)
		return -1
	}
	return 0
}

func run(ctx context.Context, cfg Config, logger *slog.Logger) error {
	var registry prometheus.Registerer = prometheus.NewRegistry()
	var telemetry *common.TelemetryServer
	if cfg.TelemetryAddress != "" {
		telemetry = common.NewTelemetryServer(cfg.TelemetryAddress, logger)
		registry = telemetry.GetRegistry()
	}
	metrics := common.NewMetrics(registry)

	auditTrail, closeAudit, err := openAuditTrail(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open audit trail: %w", err)
	}
	defer closeAudit()

	sessions, closeSessions, err := openSessions(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer closeSessions()

	server, err := NewDashboardServer(cfg.ListenAddress, Dependencies{
		Logger:     logger,
		Metrics:    metrics,
		AuditTrail: auditTrail,
		Sessions:   sessions,
		Options:    OptionsFromConfig(cfg),
	})
	if err != nil {
		return err
	}

	logger.Info("starting dashboard",
		"version", common.Version,
		"audit_backend", cfg.AuditBackend,
		"session_backend", cfg.SessionBackend,
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.Serve(groupCtx)
	})
	if telemetry != nil {
		group.Go(func() error {
			return telemetry.Serve(groupCtx)
		})
	}
	return group.Wait()
}

func openAuditTrail(ctx context.Context, cfg Config) (audittrail.Repository, func(), error) {
	switch cfg.AuditBackend {
	case audittrail.BackendSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo, err := audittrail.NewSQLiteRepository(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, func() { db.Close() }, nil

	case audittrail.BackendPostgres:
		db, err := database.NewDatabaseConnection(ctx, cfg.DatabaseConnection)
		if err != nil {
			return nil, nil, err
		}
		repo, err := audittrail.NewPostgresRepository(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, func() { db.Close() }, nil
	}

	return audittrail.NewStatic(), func() {}, nil
}

func openSessions(ctx context.Context, cfg Config) (session.Store, func(), error) {
	if cfg.SessionBackend == session.BackendRedis {
		client, err := session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(client, cfg.SessionTTL), func() { client.Close() }, nil
	}

	return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
}
