package echoapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/catalog"
	"github.com/trezcool/masomo/core/coursework"
	"github.com/trezcool/masomo/core/school"
	"github.com/trezcool/masomo/core/user"
)

type (
	Options struct {
		Address        string
		Debug          bool
		TestMode       bool
		DisableReqLogs bool
		ReadTimeout    time.Duration
		WriteTimeout   time.Duration

		Catalog       *catalog.Catalog
		UserSvc       *user.Service
		SchoolSvc     *school.Service
		CourseworkSvc *coursework.Service
		Logger        core.Logger
		// Registry collects the API metrics and is exposed on /metrics.
		Registry *prometheus.Registry
		// Shutdown is called whenever a handler fails with a core shutdown error. Optional.
		Shutdown func()
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts    *Options
		app     *echo.Echo
		metrics *Metrics
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) (Server, error) {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	metrics, err := NewMetrics(opts.Registry)
	if err != nil {
		return nil, err
	}

	s := &server{
		opts:    opts,
		app:     echo.New(),
		metrics: metrics,
	}
	s.setup()
	return s, nil
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Server.ReadTimeout = s.opts.ReadTimeout
	s.app.Server.WriteTimeout = s.opts.WriteTimeout

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.opts.Debug || s.opts.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Shutdown)
	s.app.Debug = s.opts.Debug

	s.app.GET("/", home)
	s.app.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{})))

	api := s.app.Group("/api")
	gate := func(name string) echo.MiddlewareFunc {
		return Gate(s.opts.Catalog.MustGet(name), s.metrics)
	}

	registerUserAPI(api, gate, s.opts.UserSvc)
	registerSchoolAPI(api, gate, s.opts.SchoolSvc)
	registerCourseworkAPI(api, gate, s.opts.CourseworkSvc)
	registerSchemaAPI(api, s.opts.Catalog)
}

// Start blocks until the server fails or is stopped.
func (s *server) Start() error {
	if err := s.app.Start(s.opts.Address); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "starting server")
	}
	return nil
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Masomo API!")
}

// gateFunc returns the validation gate of the named catalog schema.
type gateFunc func(schema string) echo.MiddlewareFunc

type successResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func respond(ctx echo.Context, code int, data interface{}) error {
	return ctx.JSON(code, successResponse{Success: true, Data: data})
}
