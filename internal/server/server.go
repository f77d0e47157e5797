package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"kitchenos/internal/handlers"
	applog "kitchenos/internal/log"
	"kitchenos/internal/reports"
	"kitchenos/internal/reports/document"
	"kitchenos/internal/reports/workbook"
	"kitchenos/internal/store"
)

const (
	defaultSessionLifetime = 12 * time.Hour
	defaultSessionCookie   = "kitchenos_session"
	defaultShutdownTimeout = 5 * time.Second
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Session         SessionConfig
	Store           store.Store
	Reports         ReportsConfig
	MetricsEnabled  bool
}

// SessionConfig controls session behavior for the HTTP server.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// ReportsConfig controls generated exports.
type ReportsConfig struct {
	Location    *time.Location
	ProductName string
}

// Server wraps an http.Server and exposes helpers for bootstrapping the
// back-office service.
type Server struct {
	config     Config
	httpServer *http.Server
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("server: store is required")
	}

	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"sessionLifetime", cfg.Session.Lifetime.String(),
		"sessionCookie", cfg.Session.CookieName,
		"metrics", cfg.MetricsEnabled,
	)

	sessionManager := newSessionManager(cfg.Session)

	h := handlers.New(handlers.Options{
		Store:    cfg.Store,
		Sessions: sessionManager,
		Renderers: map[reports.Format]reports.Renderer{
			reports.PDF:  document.New(),
			reports.XLSX: workbook.New(),
		},
		Location:    cfg.Reports.Location,
		ProductName: cfg.Reports.ProductName,
	})

	handler := newRouter(h, sessionManager, cfg.MetricsEnabled)

	applog.Debug(context.Background(), "http handler chain prepared")

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

func newSessionManager(cfg SessionConfig) *scs.SessionManager {
	if cfg.Lifetime <= 0 {
		applog.Debug(context.Background(), "session lifetime not provided, using default")
		cfg.Lifetime = defaultSessionLifetime
	}
	if strings.TrimSpace(cfg.CookieName) == "" {
		applog.Debug(context.Background(), "session cookie name not provided, using default")
		cfg.CookieName = defaultSessionCookie
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Lifetime
	sessionManager.Cookie.Name = cfg.CookieName
	sessionManager.Cookie.Domain = cfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.CookieSecure

	applog.Debug(context.Background(), "session manager configured",
		"cookieName", cfg.CookieName,
		"cookieDomain", cfg.CookieDomain,
		"cookieSecure", cfg.CookieSecure,
	)
	return sessionManager
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Info(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server, waiting at most the configured
// shutdown timeout for in-flight requests.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
