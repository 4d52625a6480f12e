// Package server is the scorecard dashboard service: an HTTP surface
// over the reconciled monthly review data, with a rendered dashboard
// page, a JSON API and Prometheus metrics. The server owns the
// transient month cache; reconciliation itself stays in the library.
package server

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/template/html/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sbmops/scorecard"
)

//go:embed views/*.html
var viewsFS embed.FS

// Server wraps the Fiber app and configuration.
type Server struct {
	App *fiber.App
	Cfg *Config

	cache *cache
}

// New creates a new server with middleware and routes configured.
func New(cfg *Config, client scorecard.Client) *Server {
	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err) // embed layout is fixed at compile time
	}
	engine := html.NewFileSystem(http.FS(views), ".html")
	engine.Reload(cfg.IsDev())
	engine.AddFunc("fscore", func(f *float64) string {
		if f == nil {
			return ""
		}
		return fmt.Sprintf("%.2f", *f)
	})

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return jsonError(c, code, message)
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		cache: newCache(client, cfg.ScorecardsDir, cfg.CacheTTL),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.App.Get("/", s.dashboard)
	s.App.Get("/healthz", s.health)

	s.App.Get("/api/accounts", s.apiAccounts)
	s.App.Get("/api/accounts/missing", s.apiMissing)
	s.App.Get("/api/diagnostics", s.apiDiagnostics)

	registry := prometheus.NewRegistry()
	registry.MustRegister(&resultCollector{cache: s.cache})
	s.App.Get("/metrics", adaptor.HTTPHandler(
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}

// Start starts the server on the configured address.
func (s *Server) Start() error {
	return s.App.Listen(s.Cfg.ServerAddr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}
