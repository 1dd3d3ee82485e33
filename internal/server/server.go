package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apisetup "livekit-henryk/internal/api"
	"livekit-henryk/internal/apierrors"
	"livekit-henryk/internal/bootstrap"
	"livekit-henryk/internal/config"
	"livekit-henryk/internal/observability"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	deps       *bootstrap.Dependencies
	config     *config.Config
	logger     *observability.Logger
}

// New creates a new Server instance
func New(cfg *config.Config, deps *bootstrap.Dependencies, logger *observability.Logger) *Server {
	return &Server{
		config: cfg,
		deps:   deps,
		logger: logger,
	}
}

// Setup configures the HTTP router with middleware and routes
func (s *Server) Setup() error {
	if err := apierrors.RegisterValidators(binding.Validator.Engine()); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	s.router = gin.New()
	s.router.Use(gin.Recovery())

	// Configure CORS for the browser test page
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", apisetup.APIKeyHeader}
	if len(s.config.Server.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = s.config.Server.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}

	// Allow localhost in non-production
	if os.Getenv("GO_ENV") != "production" && !corsConfig.AllowAllOrigins {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, "http://localhost:3000")
	}

	// Apply middleware
	s.router.Use(cors.New(corsConfig))
	s.router.Use(observability.Middleware(s.logger))

	// Register routes
	rootRouter := s.router.Group("/")
	api := apisetup.New(
		rootRouter,
		s.deps.VoiceCallHandler,
		s.deps.WebhookHandler,
		s.deps.MetricsHandler,
		s.config.Server.OperatorAPIKey,
		s.logger,
	)
	api.RegisterRoutes()
	return nil
}

// Start begins listening for HTTP requests and starts background workers
func (s *Server) Start(ctx context.Context) error {
	// Start post-call pipeline workers
	if err := s.deps.Pipeline.Start(ctx); err != nil {
		return fmt.Errorf("failed to start post-call pipeline: %w", err)
	}

	// Start webhook retry worker for failed deliveries
	go s.deps.WebhookWorker.Start(ctx)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run the server in a goroutine so that it doesn't block
	go func() {
		s.logger.Info(ctx, fmt.Sprintf("Server starting on port %d", s.config.Server.Port))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(ctx, "server failed to start", err)
			os.Exit(1)
		}
	}()

	return nil
}

// WaitForShutdown blocks until a shutdown signal is received, then gracefully shuts down
func (s *Server) WaitForShutdown(ctx context.Context) error {
	// Set up a channel to listen for OS signals for shutdown
	quit := make(chan os.Signal, 1)
	// kill (no param) default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received
	<-quit
	s.logger.Info(ctx, "Shutting down server...")

	// Stop accepting webhooks first so nothing new reaches the pipeline
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var shutdownErr error
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		shutdownErr = fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.deps.WebhookWorker.Stop()

	// Let queued post-call jobs finish
	if err := s.deps.Pipeline.Drain(ctx); err != nil {
		s.logger.Error(ctx, "post-call pipeline did not drain cleanly", err)
	}

	// Cleanup dependencies
	s.deps.Cleanup()

	if shutdownErr != nil {
		return shutdownErr
	}
	s.logger.Info(ctx, "Server exited gracefully")
	return nil
}
