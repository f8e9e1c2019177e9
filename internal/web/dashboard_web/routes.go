package dashboard_web

import (
	"bytes"
	"context"
	"math/rand/v2"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tarediiran-industries.com/rail-dss/internal/audittrail"
	"tarediiran-industries.com/rail-dss/internal/common"
	"tarediiran-industries.com/rail-dss/internal/dashboard"
	"tarediiran-industries.com/rail-dss/internal/session"
)

var tracer = otel.Tracer("tarediiran-industries.com/rail-dss/internal/web/dashboard_web")

// newRand seeds from the runtime source, so every render gets fresh history.
func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (server *DashboardServer) renderPage(writer http.ResponseWriter, page string, data any) {
	var buf bytes.Buffer
	if err := server.renderer.Render(&buf, page, data); err != nil {
		server.logger.Error("render page", "page", page, "err", err)
		http.Error(writer, "failed to render page", http.StatusInternalServerError)
		return
	}

	if server.metrics != nil {
		server.metrics.PageViewsTotal.WithLabelValues(page).Inc()
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(writer)
}

func (server *DashboardServer) handleLivePage(writer http.ResponseWriter, request *http.Request) {
	notice := ParseNotice(request.URL.Query())
	viewmodel := BuildLivePageVM(server.options, notice, server.now())
	server.renderPage(writer, pageLive, viewmodel)
}

func (server *DashboardServer) handleTrainsPartial(writer http.ResponseWriter, request *http.Request) {
	viewmodel := BuildTrainsTableVM(dashboard.TrainsInSection(), server.now())

	var buf bytes.Buffer
	if err := server.renderer.RenderPartial(&buf, "trains_table", viewmodel); err != nil {
		server.logger.Error("render partial", "partial", "trains_table", "err", err)
		http.Error(writer, "failed to render partial", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(writer)
}

func (server *DashboardServer) handleRecommendationDecision(writer http.ResponseWriter, request *http.Request) {
	decision, err := dashboard.ParseDecision(chi.URLParam(request, "decision"))
	if err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	server.recordDecision(request.Context(), decision)
	http.Redirect(writer, request, "/live?notice="+noticeKeyFor(decision), http.StatusSeeOther)
}

// recordDecision only counts and logs: a decision never changes state.
func (server *DashboardServer) recordDecision(ctx context.Context, decision dashboard.Decision) {
	if server.metrics != nil {
		server.metrics.RecommendationDecisionsTotal.WithLabelValues(string(decision)).Inc()
	}
	server.logger.Info("recommendation decision",
		"decision", decision,
		"train_id", dashboard.LiveRecommendation().TrainID,
		"session", session.IDFromContext(ctx),
	)
}

func (server *DashboardServer) handleManualOverride(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		http.Error(writer, "invalid form", http.StatusBadRequest)
		return
	}

	command := ParseOverrideForm(request.PostForm)

	// The action label is bounded so free-form input can't grow the metric.
	action := command.Action
	if !slices.Contains(dashboard.ManualActions(), action) {
		action = "other"
	}
	if server.metrics != nil {
		server.metrics.ManualCommandsTotal.WithLabelValues(action).Inc()
	}
	server.logger.Info("manual command", "train_id", command.TrainID, "action", command.Action)

	http.Redirect(writer, request, "/live?notice="+noticeCommandSent, http.StatusSeeOther)
}

func (server *DashboardServer) loadSession(ctx context.Context) (session.State, error) {
	id := session.IDFromContext(ctx)
	if id == "" {
		return session.State{}, nil
	}
	return server.sessions.Load(ctx, id)
}

func (server *DashboardServer) handleSimulationPage(writer http.ResponseWriter, request *http.Request) {
	scenario := ParseScenarioForm(request.URL.Query(), server.now())

	state, err := server.loadSession(request.Context())
	if err != nil {
		server.logger.Error("load session", "err", err)
		http.Error(writer, "session store unavailable", http.StatusInternalServerError)
		return
	}

	viewmodel := BuildSimulationPageVM(server.options, scenario, state.SimulationRun)
	server.renderPage(writer, pageSimulation, viewmodel)
}

// waitFor sleeps for delay unless ctx ends first.
func waitFor(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (server *DashboardServer) handleSimulationRun(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		http.Error(writer, "invalid form", http.StatusBadRequest)
		return
	}
	scenario := ParseScenarioForm(request.PostForm, server.now())

	ctx, span := tracer.Start(request.Context(), "simulation.run", trace.WithAttributes(
		attribute.String("scenario.type", string(scenario.Type)),
		attribute.String("scenario.description", scenario.Describe()),
	))
	defer span.End()

	benchmark := common.NewBenchmarker(server.logger, "simulation run")
	if err := waitFor(ctx, server.options.SimulationDelay); err != nil {
		span.RecordError(err)
		server.logger.Warn("simulation run abandoned", "scenario", scenario.Describe(), "err", err)
		return
	}

	id := session.IDFromContext(ctx)
	if err := server.sessions.Save(ctx, id, session.State{SimulationRun: true}); err != nil {
		span.RecordError(err)
		server.logger.Error("save session", "err", err)
		http.Error(writer, "session store unavailable", http.StatusInternalServerError)
		return
	}

	elapsed := benchmark.Close()
	if server.metrics != nil {
		server.metrics.SimulationRunsTotal.WithLabelValues(string(scenario.Type)).Inc()
		server.metrics.SimulationRunSeconds.Observe(elapsed.Seconds())
	}
	server.logger.Info("simulation run", "scenario", scenario.Describe(), "session", id, "elapsed", elapsed)

	http.Redirect(writer, request, "/simulation?"+ScenarioValues(scenario).Encode(), http.StatusSeeOther)
}

func (server *DashboardServer) handlePerformancePage(writer http.ResponseWriter, request *http.Request) {
	query := ParsePerformanceQuery(request.URL.Query())

	entries, all, err := audittrail.Filtered(request.Context(), server.auditTrail, query.Filter)
	if err != nil {
		server.logger.Error("audit trail", "err", err)
		http.Error(writer, "audit trail unavailable", http.StatusInternalServerError)
		return
	}

	history := dashboard.GenerateHistory(query.Period, server.now(), newRand())
	viewmodel, err := BuildPerformancePageVM(query, history, entries, all)
	if err != nil {
		server.logger.Error("render charts", "period", query.Period, "err", err)
		http.Error(writer, "failed to render charts", http.StatusInternalServerError)
		return
	}
	server.renderPage(writer, pagePerformance, viewmodel)
}
