package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/hatif03/researcher/internal/config"
	"github.com/hatif03/researcher/internal/logger"
)

// AuthPrefix is where the authentication router is mounted.
const AuthPrefix = "/api/auth"

var errNilAuthHandler = errors.New("auth handler is nil")

// Route is one row of the route table.
type Route struct {
	Method  string
	Pattern string
	Summary string
	Tags    []string
	// Hidden routes are served but left out of the OpenAPI document.
	Hidden  bool
	Handler http.HandlerFunc
}

// Mount delegates every method under Prefix to Handler.
type Mount struct {
	Prefix  string
	Summary string
	Tags    []string
	Handler http.Handler
}

// Option customises an App at construction time.
type Option func(*App)

// WithClock replaces time.Now as the source of response timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// App is the HTTP application shell. It is safe for concurrent use: nothing in
// it changes after New returns.
type App struct {
	cfg    *config.Config
	logger *logger.Logger
	now    func() time.Time

	cors    *cors.Cors
	routes  []Route
	mounts  []Mount
	openAPI []byte
	handler http.Handler
}

// New builds the application: cross-origin policy, route table, auth mount and
// the chi router serving them.
func New(cfg *config.Config, auth http.Handler, logger *logger.Logger, opts ...Option) (*App, error) {
	if auth == nil {
		return nil, errNilAuthHandler
	}

	a := &App{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.cors = newCORS(cfg.CORS, logger)
	a.routes = a.routeTable()
	a.mounts = []Mount{
		{
			Prefix:  AuthPrefix,
			Summary: "Authentication router",
			Tags:    []string{"auth"},
			Handler: auth,
		},
	}

	doc, err := a.buildOpenAPI()
	if err != nil {
		return nil, fmt.Errorf("error building openapi document: %w", err)
	}
	a.openAPI = doc

	a.handler = a.router()

	logger.Info().
		Int("routes", len(a.routes)).
		Int("mounts", len(a.mounts)).
		Int("cors_origins", len(cfg.CORS.AllowedOrigins)).
		Msg("application created")

	return a, nil
}

// Handler returns the composed HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Routes returns a copy of the route table.
func (a *App) Routes() []Route {
	return append([]Route(nil), a.routes...)
}

// Mounts returns a copy of the prefix-delegation table.
func (a *App) Mounts() []Mount {
	return append([]Mount(nil), a.mounts...)
}

func (a *App) router() *chi.Mux {
	router := chi.NewRouter()
	router.Use(a.withTraceID, a.withLogging, a.cors.Handler, middleware.Recoverer, middleware.GetHead)

	for _, m := range a.mounts {
		router.Mount(m.Prefix, m.Handler)
	}
	for _, route := range a.routes {
		router.Method(route.Method, route.Pattern, route.Handler)
	}

	router.NotFound(notFound)
	router.MethodNotAllowed(a.methodNotAllowed)

	return router
}
