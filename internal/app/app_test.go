package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amesdash/internal/config"
)

func testApplication(t *testing.T) *Application {
	t.Helper()

	paths := config.PathsFrom(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())

	app := &Application{
		Config: &config.Config{
			Server: config.ServerConfig{
				Port:            8080,
				ReadTimeout:     15 * time.Second,
				WriteTimeout:    15 * time.Second,
				IdleTimeout:     60 * time.Second,
				ShutdownTimeout: 30 * time.Second,
			},
		},
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Paths:  paths,
	}
	app.setupRouter()
	return app
}

func TestHandleHealth(t *testing.T) {
	app := testApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["metrics_built"])
}

func TestHandleHealth_ReportsMetricsBuilt(t *testing.T) {
	app := testApplication(t)
	require.NoError(t, os.WriteFile(app.Paths.MetricsJSON, []byte("{}"), 0644))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["metrics_built"])
}

func TestHandleMetrics_NotBuilt(t *testing.T) {
	app := testApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "METRICS_NOT_BUILT", body["error_code"])
}

func TestHandleMetrics_PassesFileThrough(t *testing.T) {
	app := testApplication(t)

	payload := []byte(`{"meta":{"source_notebook":"House-Price.ipynb"}}`)
	require.NoError(t, os.WriteFile(app.Paths.MetricsJSON, payload, 0644))

	req := httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload, rec.Body.Bytes())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestRouter_ServesStaticFiles(t *testing.T) {
	app := testApplication(t)
	index := filepath.Join(app.Paths.WebDir, "index.html")
	require.NoError(t, os.WriteFile(index, []byte("<html>dash</html>"), 0644))

	req := httptest.NewRequest(http.MethodGet, "/index.html", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html>dash</html>", rec.Body.String())
}
