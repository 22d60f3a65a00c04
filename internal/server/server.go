// internal/server/server.go
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config содержит конфигурацию HTTP-сервера
type Config struct {
	Addr     string
	WebRoot  string // каталог статики с index.html
	Registry *prometheus.Registry
}

// Server - HTTP-поверхность демо: статика с SPA-fallback, отладочный
// JSON со снимком симуляции, метрики Prometheus.
type Server struct {
	router  *gin.Engine
	sim     *Simulation
	cfg     Config
	started time.Time
	http    *http.Server
}

// New создаёт сервер. Если cfg.Registry пуст, создаётся новый реестр.
func New(cfg Config, sim *Simulation) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(newHTTPMetrics(cfg.Registry).Handler())

	s := &Server{router: router, sim: sim, cfg: cfg, started: time.Now()}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.cfg.Registry, promhttp.HandlerOpts{})))

	api := s.router.Group("/api")
	{
		api.GET("/debug", s.handleDebug)
	}

	s.router.NoRoute(s.handleStatic)
}

// Handler отдаёт http.Handler (для тестов и встраивания).
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.started).Seconds(),
	})
}

func (s *Server) handleDebug(c *gin.Context) {
	c.JSON(http.StatusOK, s.sim.Snapshot())
}

// handleStatic отдаёт файл из WebRoot, а для неизвестных путей index.html.
func (s *Server) handleStatic(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusMethodNotAllowed)
		return
	}

	clean := path.Clean("/" + c.Request.URL.Path)
	file := filepath.Join(s.cfg.WebRoot, filepath.FromSlash(clean))
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		c.File(file)
		return
	}
	index := filepath.Join(s.cfg.WebRoot, "index.html")
	if _, err := os.Stat(index); err != nil {
		c.String(http.StatusNotFound, "index.html not found")
		return
	}
	c.File(index)
}

// Start запускает сервер и блокируется до отмены ctx.
func (s *Server) Start(ctx context.Context) error {
	s.http = &http.Server{Addr: s.cfg.Addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on %s, web root %s", s.cfg.Addr, s.cfg.WebRoot)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("[Server] Shutting down")
		return s.http.Shutdown(shutdownCtx)
	}
}
