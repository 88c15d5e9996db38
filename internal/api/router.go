package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/lifeline/response-dashboard/docs"
	"github.com/lifeline/response-dashboard/internal/api/handler"
	"github.com/lifeline/response-dashboard/internal/api/middleware"
	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Auth      ports.AuthService
	Requests  ports.EmergencyRequestService
	Community ports.CommunityService
	Directory ports.DirectoryService
	// Feed drives the bridged dashboard panels. Nil disables them.
	Feed ports.ChangeFeed
	// Checks are the readiness probes, keyed by dependency name.
	Checks map[string]handler.Check

	JWTSecret string
	Stream    handler.StreamOptions
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: allowOrigins(d.Stream.AllowedOrigins),
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization,
			"Idempotency-Key", handler.DevicePositionHeader,
		},
	}))
	e.Use(echoprometheus.NewMiddleware("dashboard_http"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	requestHandler := handler.NewEmergencyRequestHandler(d.Requests)
	communityHandler := handler.NewCommunityHandler(d.Community)
	directoryHandler := handler.NewDirectoryHandler(d.Directory)
	streamHandler := handler.NewStreamHandler(d.Community, d.Requests, d.Feed, d.Stream, d.Logger)
	authMiddleware := middleware.Auth(d.JWTSecret)
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleDriver, domain.RoleHospitalStaff)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Public directory ---
	e.GET("/v1/hospitals", directoryHandler.Hospitals)
	e.GET("/v1/articles", directoryHandler.Articles)
	e.GET("/v1/community/posts", communityHandler.List)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)
	v1.POST("/community/posts", communityHandler.Create)
	v1.POST("/emergency-requests", requestHandler.Create)
	v1.GET("/emergency-requests", requestHandler.List)
	v1.GET("/ambulances", directoryHandler.Ambulances, staffOnly)
	v1.GET("/dashboard/stream", streamHandler.Stream)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func allowOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// requestLogger emits one structured line per request through zerolog. Only the path is
// logged; stream URLs carry the access token in the query.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURIPath:   true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
