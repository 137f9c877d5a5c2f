// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/maasoft/sg-gateway/internal/auth/http"
	authService "github.com/maasoft/sg-gateway/internal/auth/service"
	"github.com/maasoft/sg-gateway/internal/config"
	"github.com/maasoft/sg-gateway/internal/metrics"
	notificationHTTP "github.com/maasoft/sg-gateway/internal/notification/http"
	sgproxyHTTP "github.com/maasoft/sg-gateway/internal/sgproxy/http"
)

// readinessTimeout bounds the database ping of the readiness probe.
const readinessTimeout = 2 * time.Second

// Server represents the HTTP server
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Handlers groups the request handlers mounted by SetupRouter.
type Handlers struct {
	Session      *authHTTP.SessionHandler
	Proxy        *sgproxyHTTP.ProxyHandler
	User         *sgproxyHTTP.UserHandler
	Notification *notificationHTTP.NotificationHandler
}

// SetupRouter configures the Gin router with all routes and middleware.
// Background work started by middleware stops when ctx is done.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers Handlers,
	tokenService authService.TokenService,
	metricsProvider *metrics.Provider,
	metricsNamespace string,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)
	router.GET("/status", s.statusHandler)

	// Transaction notifications pushed by SG
	notifications := []gin.HandlerFunc{}
	if cfg.RateLimitNotificationsEnabled {
		notifications = append(notifications, authHTTP.IPRateLimitMiddleware(
			ctx,
			cfg.RateLimitNotificationsRequestsPerSec,
			cfg.RateLimitNotificationsBurst,
			s.logger,
		))
	}
	notifications = append(notifications,
		authHTTP.InboundTokenMiddleware(tokenService, cfg.InboundAuthToken, s.logger),
		handlers.Notification.ReceiveHandler,
	)
	router.POST("/transacciones", notifications...)

	sg := router.Group("/v1/sg")
	{
		auth := sg.Group("/auth")
		{
			auth.GET("/test", handlers.Session.TestLoginHandler)
			auth.GET("/ensure", handlers.Session.EnsureTokenHandler)
			auth.GET("/cache", handlers.Session.CacheStatusHandler)
		}

		sg.POST("/cvu", handlers.Proxy.CreateCVUHandler)
		sg.POST("/transferencias", handlers.Proxy.StartTransferHandler)

		users := sg.Group("/usuarios")
		{
			users.POST("", handlers.User.CreateHandler)
			users.GET("/:cuit/by-cuit", handlers.User.LookupByCUITHandler)
			users.GET("/:cuit/raw", handlers.User.LookupRawHandler)
		}
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must be called first.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured: call SetupRouter before Start")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports the process is alive.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// statusHandler is the liveness probe SG monitors.
func (s *Server) statusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readinessHandler reports whether the database answers.
func (s *Server) readinessHandler(c *gin.Context) {
	dbStatus := "ok"
	if s.db == nil {
		dbStatus = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			dbStatus = "error"
		}
	}

	status, code := "ready", http.StatusOK
	if dbStatus != "ok" {
		status, code = "not_ready", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"components": gin.H{"database": dbStatus},
	})
}
