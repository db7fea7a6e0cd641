// Package server wires the development API server: echo routing, middleware,
// repositories and handlers over a sqlite database. It serves the same wire
// contract the client packages consume, which makes full round-trip testing
// possible without an external backend.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ross2p/ems-app/internal/config"
	"github.com/ross2p/ems-app/internal/database"
	"github.com/ross2p/ems-app/internal/handlers"
	"github.com/ross2p/ems-app/internal/middleware"
	"github.com/ross2p/ems-app/internal/repositories"
	"github.com/ross2p/ems-app/internal/services"
)

// Server is the assembled development API server.
type Server struct {
	echo   *echo.Echo
	config *config.Config
	db     *database.DB
	logger *slog.Logger
}

// New assembles the server: database, repositories, services, handlers and
// routes.
func New(cfg *config.Config, db *database.DB, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()

	e.Use(middleware.Trace())
	e.Use(middleware.PanicRecovery())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE, echo.OPTIONS},
	}))

	userRepo := repositories.NewUserRepository(db.DB)
	tokenRepo := repositories.NewRefreshTokenRepository(db.DB)
	eventRepo := repositories.NewEventRepository(db.DB)
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	attendanceRepo := repositories.NewAttendanceRepository(db.DB)

	tokenService := services.NewTokenService(&cfg.JWT)
	passwordService := services.NewPasswordService(cfg.Security.BCryptCost)

	authHandler := handlers.NewAuthHandler(userRepo, tokenRepo, tokenService, passwordService)
	userHandler := handlers.NewUserHandler(userRepo)
	eventHandler := handlers.NewEventHandler(eventRepo)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceRepo, eventRepo)
	healthHandler := handlers.NewHealthCheckHandler(db.DB)

	requireAuth := middleware.RequireAuth(tokenService)
	rateLimiter := middleware.NewRateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst)

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	auth := api.Group("/auth", rateLimiter.Middleware())
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout, requireAuth)

	user := api.Group("/user")
	user.GET("/me", userHandler.Me, requireAuth)
	user.GET("/:id", userHandler.Get, requireAuth)
	user.DELETE("/:id", userHandler.Delete, requireAuth)

	event := api.Group("/event")
	event.GET("", eventHandler.List)
	event.GET("/:id", eventHandler.Get)
	event.GET("/:id/similar", eventHandler.Similar)
	event.POST("", eventHandler.Create, requireAuth)
	event.PATCH("/:id", eventHandler.Update, requireAuth)
	event.DELETE("/:id", eventHandler.Delete, requireAuth)

	category := api.Group("/category")
	category.GET("", categoryHandler.List)
	category.GET("/:id", categoryHandler.Get)
	category.POST("", categoryHandler.Create, requireAuth)

	attendance := api.Group("/attendance")
	attendance.GET("", attendanceHandler.List)
	attendance.GET("/:id", attendanceHandler.Get)
	attendance.GET("/event/:id", attendanceHandler.ByEvent)
	attendance.GET("/user/:id", attendanceHandler.ByUser)
	attendance.POST("", attendanceHandler.Create, requireAuth)
	attendance.DELETE("/:id", attendanceHandler.Delete, requireAuth)

	return &Server{
		echo:   e,
		config: cfg,
		db:     db,
		logger: logger,
	}
}

// Echo exposes the underlying router, primarily for httptest servers.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start listens on the configured address until the context is cancelled or
// the listener fails.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening", "addr", s.config.Server.Addr())
		errCh <- s.echo.Start(s.config.Server.Addr())
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown()
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	}
}

// Shutdown drains in-flight requests and closes the database.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.WriteTimeout)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	return s.db.Close()
}
