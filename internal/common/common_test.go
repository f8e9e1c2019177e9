package common

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn", "json")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "train", "12301")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"train":"12301"`)

	_, err = NewLogger(&buf, "loud", "text")
	assert.Error(t, err)
	_, err = NewLogger(&buf, "info", "xml")
	assert.Error(t, err)
}

func TestValidateLogFormat(t *testing.T) {
	for _, format := range []string{"", "text", "JSON", " json "} {
		assert.NoError(t, ValidateLogFormat(format), format)
	}
	assert.ErrorContains(t, ValidateLogFormat("xml"), `unknown log format "xml"`)
}

func TestMetricsRegisterOnce(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	metrics.PageViewsTotal.WithLabelValues("live").Inc()
	metrics.PageViewsTotal.WithLabelValues("live").Inc()
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.PageViewsTotal.WithLabelValues("live")))

	assert.Panics(t, func() { NewMetrics(registry) })
}

func TestTelemetryHandlerExposesBuildInfo(t *testing.T) {
	telemetry := NewTelemetryServer("127.0.0.1:0", slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	telemetry.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "raildss_build_info")
}

func TestRuntimeBenchmarkPassesThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	got, err := RuntimeBenchmark(logger, "answer", func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	assert.GreaterOrEqual(t, int64(NewBenchmarker(logger, "noop").Close()), int64(0))
}
