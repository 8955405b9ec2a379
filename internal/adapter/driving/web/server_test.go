package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everydayham/youtube-monetization-dashboard-go/internal/shared/types"
)

type testConsole struct{}

func (testConsole) Print(a ...interface{})                          {}
func (testConsole) Printf(format string, a ...interface{})          {}
func (testConsole) Println(a ...interface{})                        {}
func (testConsole) LogInfo(format string, a ...interface{})         {}
func (testConsole) LogWarning(format string, a ...interface{})      {}
func (testConsole) LogError(format string, a ...interface{})        {}
func (testConsole) LogSuccess(format string, a ...interface{})      {}
func (testConsole) Status(message string) types.StatusHandle        { return nopStatus{} }
func (testConsole) ProgressWithTotal(total int) types.ProgressHandle {
	return nopProgress{}
}
func (testConsole) CreateTable() types.TableInterface                  { return nil }
func (testConsole) DisplayRevenueBars(daily []types.DailyRevenuePoint) {}

type nopStatus struct{}

func (nopStatus) Update(string) {}
func (nopStatus) Stop()         {}

type nopProgress struct{}

func (nopProgress) Increment() {}
func (nopProgress) Stop()      {}

func newTestServer(t *testing.T, artifact []byte) *httptest.Server {
	t.Helper()
	dataPath := filepath.Join(t.TempDir(), "report.json")
	if artifact != nil {
		require.NoError(t, os.WriteFile(dataPath, artifact, 0644))
	}
	srv := NewServer(":0", dataPath, 30*time.Second, testConsole{})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestIndexServesDashboardPage(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(body)
	assert.Contains(t, page, "YouTube Monetization Dashboard")
	// O intervalo de poll configurado é injetado na página.
	assert.Contains(t, page, "30000")
	assert.Contains(t, page, DataRoute)
	// IDs que o poller preenche precisam existir na página.
	for _, id := range []string{"total-revenue", "rpm", "cpm", "playbacks", "views", "projected", "chart", "ad-types", "top-videos", "status"} {
		assert.Contains(t, page, `id="`+id+`"`)
	}
}

func TestIndexUnknownPathIs404(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDataRouteServesArtifact(t *testing.T) {
	artifact := []byte(`{"schema_version":1,"total_revenue":100.00,"total_views":5000}`)
	ts := newTestServer(t, artifact)

	resp, err := http.Get(ts.URL + DataRoute)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	// O navegador nunca deve cachear o artefato.
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, string(artifact), string(body))
}

func TestDataRouteBeforeFirstPublishIs404(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + DataRoute)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDataRouteRejectsNonGET(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Post(ts.URL+DataRoute, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
