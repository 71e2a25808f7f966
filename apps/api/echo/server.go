package echoapi

import (
	"context"
	"net/http"
	"net/url"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/mnogodumalon/kurs96/core"
	"github.com/mnogodumalon/kurs96/core/catalog"
	"github.com/mnogodumalon/kurs96/core/dashboard"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		Conf       *core.Config
		Logger     core.Logger
		Translator ut.Translator

		CatalogSvc   *catalog.Service
		DashboardSvc *dashboard.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(requestIDMiddleware())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	registerCatalogAPI(v1, s.opts.CatalogSvc)
	registerDashboardAPI(v1, s.opts.DashboardSvc)

	if conf.LivingApps.EnableRestProxy {
		s.registerRestProxy()
	}
}

// registerRestProxy rewrites /api/rest/* to <backend>/rest/*, the same
// rewrite the SPA dev server performed, injecting the backend token when the
// caller supplies none.
func (s *server) registerRestProxy() {
	la := s.opts.Conf.LivingApps
	target, err := url.Parse(la.BaseURL)
	if err != nil {
		s.opts.Logger.Fatal("invalid LivingApps base URL", err)
		return
	}

	g := s.app.Group("/api/rest")
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if la.Token != "" && ctx.Request().Header.Get(echo.HeaderAuthorization) == "" {
				ctx.Request().Header.Set(echo.HeaderAuthorization, "Bearer "+la.Token)
			}
			return next(ctx)
		}
	})
	g.Use(middleware.ProxyWithConfig(middleware.ProxyConfig{
		Balancer: middleware.NewRoundRobinBalancer([]*middleware.ProxyTarget{{URL: target}}),
		Rewrite:  map[string]string{"/api/rest/*": "/rest/$1"},
	}))
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the KursManager API!")
}
