package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutti-frutti-td/internal/app"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/metrics"
	"tutti-frutti-td/internal/utils"
)

func newTestServer(t *testing.T) (*Server, *Simulation) {
	t.Helper()
	lib, err := defs.LoadLibrary("../../assets/data")
	require.NoError(t, err)
	game, err := app.NewGame(lib, *config.DefaultSettings())
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	bot := app.NewAutoPlayer(game, utils.NewPRNGService(1), nil)
	sim := NewSimulation(game, bot, collector, 60)

	webRoot := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(webRoot, "index.html"), []byte("<html>tutti</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(webRoot, "app.js"), []byte("console.log(1)"), 0o644))

	return New(Config{WebRoot: webRoot, Registry: registry}, sim), sim
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestServer_Health(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestServer_Debug(t *testing.T) {
	s, sim := newTestServer(t)
	for i := 0; i < 30; i++ {
		sim.Step(1.0 / 60)
	}

	w := get(t, s, "/api/debug")
	require.Equal(t, http.StatusOK, w.Code)

	var snap app.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.NotEmpty(t, snap.SessionID)
	assert.Equal(t, "orchard", snap.Map)
	assert.Equal(t, 1, snap.Wave)
	assert.Equal(t, "SPAWNING", snap.Phase)
	assert.Greater(t, snap.Time, 0.0)
}

func TestServer_Metrics(t *testing.T) {
	s, sim := newTestServer(t)
	sim.Step(1.0 / 60)

	w := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "tutti_frutti_money")
	assert.Contains(t, body, "tutti_frutti_events_total")
}

func TestServer_StaticAndFallback(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name   string
		target string
		code   int
		body   string
	}{
		{"index", "/", http.StatusOK, "tutti"},
		{"asset", "/app.js", http.StatusOK, "console.log"},
		{"client route", "/play/orchard", http.StatusOK, "tutti"},
		{"unknown api", "/api/nothing", http.StatusNotFound, "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, s, tt.target)
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestSimulation_RestartsAfterGameOver(t *testing.T) {
	_, sim := newTestServer(t)
	session := sim.Snapshot().SessionID

	sim.game.LoseLives(sim.game.Lives)
	require.True(t, sim.Snapshot().GameOver)

	for i := 0; i < int(restartDelay)+1; i++ {
		sim.Step(1)
	}
	snap := sim.Snapshot()
	assert.False(t, snap.GameOver)
	assert.NotEqual(t, session, snap.SessionID)
}
