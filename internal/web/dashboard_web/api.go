package dashboard_web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tarediiran-industries.com/rail-dss/internal/audittrail"
	"tarediiran-industries.com/rail-dss/internal/dashboard"
	"tarediiran-industries.com/rail-dss/internal/feed"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type TrainsResponse struct {
	Trains      []dashboard.Train `json:"trains"`
	Count       int               `json:"count"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

type RecommendationResponse struct {
	dashboard.Recommendation
	Summary string `json:"summary"`
}

type DecisionResponse struct {
	Decision dashboard.Decision `json:"decision"`
	Notice   string             `json:"notice"`
}

type AuditResponse struct {
	Entries    []dashboard.AuditEntry `json:"entries"`
	Count      int                    `json:"count"`
	Users      []string               `json:"users"`
	EventTypes []string               `json:"eventTypes"`
	Filter     dashboard.AuditFilter  `json:"filter"`
}

type HistoryResponse struct {
	Period string                   `json:"period"`
	Key    string                   `json:"key"`
	Count  int                      `json:"count"`
	Points []dashboard.HistoryPoint `json:"points"`
}

type HealthResponse struct {
	Status     string    `json:"status"`
	AuditTrail string    `json:"auditTrail"`
	Sessions   string    `json:"sessions"`
	Timestamp  time.Time `json:"timestamp"`
}

func writeJSON(writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(body)
}

func writeError(writer http.ResponseWriter, status int, message string, err error) {
	response := ErrorResponse{Error: message}
	if err != nil {
		response.Details = err.Error()
	}
	writeJSON(writer, status, response)
}

func (server *DashboardServer) handleAPITrains(writer http.ResponseWriter, request *http.Request) {
	trains := dashboard.TrainsInSection()

	writer.Header().Set("Cache-Control", "public, max-age=5")
	writeJSON(writer, http.StatusOK, TrainsResponse{
		Trains:      trains,
		Count:       len(trains),
		GeneratedAt: server.now().UTC(),
	})
}

func (server *DashboardServer) handleAPIRecommendation(writer http.ResponseWriter, request *http.Request) {
	rec := dashboard.LiveRecommendation()
	writeJSON(writer, http.StatusOK, RecommendationResponse{Recommendation: rec, Summary: rec.Summary()})
}

func (server *DashboardServer) handleAPIRecommendationDecision(writer http.ResponseWriter, request *http.Request) {
	decision, err := dashboard.ParseDecision(chi.URLParam(request, "decision"))
	if err != nil {
		writeError(writer, http.StatusBadRequest, "Invalid decision", err)
		return
	}

	server.recordDecision(request.Context(), decision)
	writeJSON(writer, http.StatusOK, DecisionResponse{Decision: decision, Notice: decision.Notice()})
}

func (server *DashboardServer) handleAPIAudit(writer http.ResponseWriter, request *http.Request) {
	filter := ParseAuditFilter(request.URL.Query())

	entries, all, err := audittrail.Filtered(request.Context(), server.auditTrail, filter)
	if err != nil {
		server.logger.Error("audit trail", "err", err)
		writeError(writer, http.StatusInternalServerError, "Failed to load audit trail", err)
		return
	}

	users, eventTypes := dashboard.AuditFilterOptions(all)
	writeJSON(writer, http.StatusOK, AuditResponse{
		Entries:    entries,
		Count:      len(entries),
		Users:      users,
		EventTypes: eventTypes,
		Filter:     filter,
	})
}

func (server *DashboardServer) handleAPIHistory(writer http.ResponseWriter, request *http.Request) {
	period := dashboard.ParsePeriod(request.URL.Query().Get("period"))
	points := dashboard.GenerateHistory(period, server.now(), newRand())

	writer.Header().Set("Cache-Control", "no-store")
	writeJSON(writer, http.StatusOK, HistoryResponse{
		Period: string(period),
		Key:    period.Key(),
		Count:  len(points),
		Points: points,
	})
}

func (server *DashboardServer) handleTrainFeed(writer http.ResponseWriter, request *http.Request) {
	message := feed.BuildTrainFeed(dashboard.TrainsInSection(), server.now())

	raw, contentType, err := feed.Marshal(message, request.URL.Query().Get("format"))
	if err != nil {
		writeError(writer, http.StatusBadRequest, "Unsupported feed format", err)
		return
	}

	writer.Header().Set("Content-Type", contentType)
	writer.Header().Set("Cache-Control", "public, max-age=5")
	_, _ = writer.Write(raw)
}

func (server *DashboardServer) handleHealth(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:     "ok",
		AuditTrail: "ok",
		Sessions:   "ok",
		Timestamp:  server.now().UTC(),
	}
	status := http.StatusOK

	if err := server.auditTrail.Health(ctx); err != nil {
		server.logger.Warn("audit trail unhealthy", "err", err)
		response.AuditTrail = err.Error()
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	if err := server.sessions.Health(ctx); err != nil {
		server.logger.Warn("session store unhealthy", "err", err)
		response.Sessions = err.Error()
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	writeJSON(writer, status, response)
}
