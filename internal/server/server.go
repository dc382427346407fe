package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/nfrund/enroll/internal/accountapi"
	"github.com/nfrund/enroll/internal/config"
	"github.com/nfrund/enroll/internal/domain"
	"github.com/nfrund/enroll/internal/events"
	"github.com/nfrund/enroll/internal/handlers"
	"github.com/nfrund/enroll/internal/middleware"
	"github.com/nfrund/enroll/internal/pubsub"
	"github.com/nfrund/enroll/internal/rendering"
	"github.com/nfrund/enroll/internal/wizard"
	"github.com/nfrund/enroll/web"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E     *echo.Echo
	Cfg   *config.Config
	API   domain.AccountAPI
	Store *wizard.Store
	Bus   *pubsub.WatermillBridge

	// stop cancels the background workers: the wizard sweeper and the audit subscriber.
	stop context.CancelFunc

	homeHandler           *handlers.HomeHandler
	registrationHandler   *handlers.RegistrationHandler
	changePasswordHandler *handlers.ChangePasswordHandler
}

// New creates a new Server instance and starts its background workers.
// The default slog logger should already be configured.
func New(cfg *config.Config) (*Server, error) {
	api, err := accountapi.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize account API: %w", err)
	}

	ctx, stop := context.WithCancel(context.Background())

	// Registration events flow over the in-memory bus to the audit log.
	bus := pubsub.NewWatermillBridge()
	if err := events.SubscribeAudit(ctx, bus, slog.Default()); err != nil {
		stop()
		return nil, fmt.Errorf("subscribe audit log: %w", err)
	}

	store := wizard.NewStore(api,
		wizard.WithTTL(cfg.WizardTTL),
		wizard.WithSweepInterval(cfg.WizardSweepInterval),
		wizard.WithEventSink(events.NewBusSink(bus)),
	)
	go store.Run(ctx)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = rendering.NewNodeRenderer()
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)

	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			middleware.FromContext(c.Request().Context()).Info("request",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	e.Use(echomw.Recover())

	// Configure and use session middleware. The cookie only outlives the wizard by the TTL.
	cookies := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.WizardTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(cookies))

	// Serve the embedded stylesheet.
	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	return &Server{
		E:                     e,
		Cfg:                   cfg,
		API:                   api,
		Store:                 store,
		Bus:                   bus,
		stop:                  stop,
		homeHandler:           handlers.NewHomeHandler(),
		registrationHandler:   handlers.NewRegistrationHandler(store),
		changePasswordHandler: handlers.NewChangePasswordHandler(api),
	}, nil
}
