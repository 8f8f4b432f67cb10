package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/studiodesk/schedule-system/internal/api/handler"
	"github.com/studiodesk/schedule-system/internal/api/middleware"
	"github.com/studiodesk/schedule-system/internal/core/domain"
	"github.com/studiodesk/schedule-system/internal/core/ports"
	"github.com/studiodesk/schedule-system/internal/infrastructure/http/handlers"
)

// Dependencies are the services and probes the router wires into handlers.
type Dependencies struct {
	Auth      ports.AuthService
	Schedules ports.ScheduleService
	Admin     ports.AdminService
	Users     ports.UserRepository
	Revoker   ports.TokenRevoker
	Readiness map[string]handlers.Check
	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddleware("studio"))

	// --- Health, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authMW := middleware.Auth(deps.JWTSecret, deps.Revoker, deps.Log)
	masterOnly := []echo.MiddlewareFunc{middleware.Refresh(deps.Users), middleware.RBAC(domain.RoleMaster)}

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMW)
	e.GET("/auth/me", authHandler.Me, authMW)

	v1 := e.Group("/v1", authMW)

	// --- Schedules (any logged-in user) ---
	scheduleHandler := handler.NewScheduleHandler(deps.Schedules)
	v1.GET("/schedules", scheduleHandler.ListByDate)
	v1.GET("/schedules/search", scheduleHandler.Search)
	v1.POST("/schedules", scheduleHandler.Create)
	v1.GET("/schedules/:id", scheduleHandler.Get)
	v1.PUT("/schedules/:id", scheduleHandler.Update)
	v1.DELETE("/schedules/:id", scheduleHandler.Delete, masterOnly...)
	v1.POST("/schedules/:id/memos", scheduleHandler.AppendMemo)

	// --- Admin console (Master only) ---
	adminHandler := handler.NewAdminHandler(deps.Admin)
	admin := v1.Group("/admin", masterOnly...)
	admin.GET("/users", adminHandler.Roster)
	admin.PUT("/users", adminHandler.SaveRoster)

	return e
}

// requestLogger emits one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
