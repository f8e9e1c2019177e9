package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarediiran-industries.com/rail-dss/internal/audittrail"
	"tarediiran-industries.com/rail-dss/internal/common"
	"tarediiran-industries.com/rail-dss/internal/session"
	"tarediiran-industries.com/rail-dss/internal/web/dashboard_web"
)

type downStore struct{}

func (downStore) Load(context.Context, string) (session.State, error) {
	return session.State{}, errors.New("redis down")
}

func (downStore) Save(context.Context, string, session.State) error {
	return errors.New("redis down")
}

func (downStore) Health(context.Context) error {
	return errors.New("redis down")
}

func startDashboard(t *testing.T, sessions session.Store) *httptest.Server {
	t.Helper()

	server, err := dashboard_web.NewDashboardServer(":0", dashboard_web.Dependencies{
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:    common.NewMetrics(prometheus.NewRegistry()),
		AuditTrail: audittrail.NewStatic(),
		Sessions:   sessions,
		Options: dashboard_web.Options{
			PollSeconds: 5,
			SessionTTL:  time.Hour,
		},
	})
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func runCtl(t *testing.T, server string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := NewRootCmd(&DssCtlApp{})
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--server", server}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestTrainsCommand(t *testing.T) {
	ts := startDashboard(t, session.NewMemoryStore(time.Hour))

	out, err := runCtl(t, ts.URL, "trains")
	require.NoError(t, err)
	assert.Contains(t, out, "NEXT STOP")
	assert.Contains(t, out, "Delayed 12m")
	assert.Contains(t, out, "5 trains as of")
}

func TestRecommendationCommand(t *testing.T) {
	ts := startDashboard(t, session.NewMemoryStore(time.Hour))

	out, err := runCtl(t, ts.URL, "recommendation")
	require.NoError(t, err)
	assert.Contains(t, out, "Hold Train 45678 (Freight) at Siding SL-02 for 6 minutes.")
	assert.Contains(t, out, "REASON: To allow high-priority Train 12301")

	out, err = runCtl(t, ts.URL, "recommendation", "accept")
	require.NoError(t, err)
	assert.Contains(t, out, "Recommendation Accepted! Executing action.")

	_, err = runCtl(t, ts.URL, "recommendation", "maybe")
	assert.Error(t, err)
}

func TestAuditCommandFilters(t *testing.T) {
	ts := startDashboard(t, session.NewMemoryStore(time.Hour))

	out, err := runCtl(t, ts.URL, "audit", "--user", "Controller_A")
	require.NoError(t, err)
	assert.Contains(t, out, "Rejected AI Recommendation for Train 45678.")
	assert.NotContains(t, out, "Hold Train 45678 for 6 mins.")
	assert.Contains(t, out, "2 entries (user=Controller_A, event=All)")
}

func TestHistoryCommand(t *testing.T) {
	ts := startDashboard(t, session.NewMemoryStore(time.Hour))

	out, err := runCtl(t, ts.URL, "history", "--period", "7d")
	require.NoError(t, err)
	assert.Contains(t, out, "Last 7 Days (7 points)")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// title, blank line, column header, then one row per point
	assert.Len(t, lines, 3+7)
}

func TestFeedCommand(t *testing.T) {
	ts := startDashboard(t, session.NewMemoryStore(time.Hour))

	out, err := runCtl(t, ts.URL, "feed")
	require.NoError(t, err)
	assert.Contains(t, out, "GTFS-RT 2.0, 5 entities")
	assert.Contains(t, out, "12m0s")
	assert.Contains(t, out, "-3m0s")

	out, err = runCtl(t, ts.URL, "feed", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, "tripUpdate")
	assert.Contains(t, out, "45678")
}

func TestHealthCommand(t *testing.T) {
	healthy := startDashboard(t, session.NewMemoryStore(time.Hour))
	out, err := runCtl(t, healthy.URL, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "Status:      ok")

	degraded := startDashboard(t, downStore{})
	out, err = runCtl(t, degraded.URL, "health")
	assert.ErrorContains(t, err, "dashboard is degraded")
	assert.Contains(t, out, "Sessions:    redis down")
}

func TestServerFromToml(t *testing.T) {
	ts := startDashboard(t, session.NewMemoryStore(time.Hour))

	path := filepath.Join(t.TempDir(), "dss-ctl.toml")
	require.NoError(t, os.WriteFile(path, []byte("server = \""+ts.URL+"/\"\ntimeout = \"2s\"\n"), 0o600))

	var out bytes.Buffer
	app := &DssCtlApp{}
	root := NewRootCmd(app)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--toml", path, "trains"})

	require.NoError(t, root.Execute())
	assert.Equal(t, ts.URL, app.Server)
	assert.Equal(t, 2*time.Second, app.Timeout)
	assert.Contains(t, out.String(), "12301")
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	ts := startDashboard(t, session.NewMemoryStore(time.Hour))
	app := &DssCtlApp{Server: ts.URL}
	app.Client = ts.Client()

	_, err := app.do(context.Background(), "POST", "/api/recommendation/maybe", nil)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 400, statusErr.StatusCode)
	assert.Contains(t, statusErr.Message, "Invalid decision")
}

func TestTableKeepsLongCellsOnOneLine(t *testing.T) {
	var out bytes.Buffer
	details := "AI automatically rerouted Train 54321 to avoid conflict."

	table := newTable(&out, "USER", "DETAILS")
	table.Append([]string{"SYSTEM", details})
	table.Render()

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "USER"))
	assert.Contains(t, lines[1], details)
	assert.NotContains(t, out.String(), "+-")
	assert.NotContains(t, out.String(), "|")
}
