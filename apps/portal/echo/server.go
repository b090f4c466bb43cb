package echoportal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/AhmedMostafa129/Mahd/core"
	"github.com/AhmedMostafa129/Mahd/core/auth"
	"github.com/AhmedMostafa129/Mahd/core/guard"
	"github.com/AhmedMostafa129/Mahd/core/lms"
	"github.com/AhmedMostafa129/Mahd/core/screens"
	"github.com/AhmedMostafa129/Mahd/core/session"
)

const defaultCookieName = "mahd_sid"

type Options struct {
	Address        string
	Debug          bool
	TestMode       bool
	DisableReqLogs bool

	CookieName   string
	CookieTTL    time.Duration
	SecureCookie bool

	Storage    session.Storage
	Auth       *auth.Service
	LMS        *lms.Services
	Validate   *validator.Validate
	Translator ut.Translator
	Logger     core.Logger
	Metrics    *Metrics
}

type Server struct {
	opts     *Options
	app      *echo.Echo
	errors   chan error
	shutdown chan os.Signal
}

func NewServer(opts *Options) *Server {
	if opts.CookieName == "" {
		opts.CookieName = defaultCookieName
	}
	if opts.Logger == nil {
		opts.Logger = core.NopLogger()
	}
	if opts.Storage == nil {
		opts.Storage = session.NewMemoryStorage()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}

	s := &Server{
		opts:     opts,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.opts.Debug || s.opts.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.signalShutdown)
	s.app.Debug = s.opts.Debug

	s.app.GET("/health", health)
	s.app.GET("/metrics", echo.WrapHandler(s.opts.Metrics.Handler()))

	pages := s.app.Group("", s.sessionMiddleware)

	loaders := screens.Loaders(s.opts.LMS, s.opts.Auth)
	for _, r := range guard.Routes {
		if r.IsRedirect() {
			pages.GET(r.Pattern, redirectTo(r))
			continue
		}
		pages.GET(r.Pattern, s.screen(r.Screen, loaders[r.Screen]), s.guardMiddleware(r.Guard))
	}

	s.registerAuth(pages)
	for _, a := range s.actions() {
		pages.Add(a.method, a.path, s.action(a.screen, a.do), s.guardMiddleware(a.guard))
	}
}

// Start serves until Shutdown is called. Listener errors are reported on Errors().
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.opts.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
