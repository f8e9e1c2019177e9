package dashboard_web

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tarediiran-industries.com/rail-dss/internal/common"
)

// requestLogger replaces chi's middleware.Logger with slog output and feeds
// the request-duration histogram. metrics may be nil.
func requestLogger(logger *slog.Logger, metrics *common.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			start := time.Now()
			wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)

			next.ServeHTTP(wrapped, request)

			status := wrapped.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)

			route := request.URL.Path
			if routeCtx := chi.RouteContext(request.Context()); routeCtx != nil {
				if pattern := routeCtx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			if metrics != nil {
				metrics.HttpRequestSeconds.
					WithLabelValues(request.Method, route, strconv.Itoa(status)).
					Observe(elapsed.Seconds())
			}

			logger.Info("request",
				"method", request.Method,
				"path", request.URL.Path,
				"route", route,
				"status", status,
				"bytes", wrapped.BytesWritten(),
				"elapsed", elapsed,
				"request_id", middleware.GetReqID(request.Context()),
			)
		})
	}
}
