package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/concave-dev/batchd/internal/api/handlers"
	"github.com/concave-dev/batchd/internal/logging"
	"github.com/concave-dev/batchd/internal/netutil"
	"github.com/concave-dev/batchd/internal/version"
	"github.com/gin-gonic/gin"
)

// Represents the batchd API server
type Server struct {
	tasks         handlers.TaskService
	maxStatusWait time.Duration
	httpServer    *http.Server
	listener      net.Listener // Pre-bound listener, nil when Start binds itself
	bindAddr      string
	bindPort      int
	startTime     time.Time
}

// NewServer creates a new API server instance that binds on Start.
func NewServer(config *Config) *Server {
	// Set Gin to release mode for production
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		tasks:         config.Tasks,
		maxStatusWait: config.MaxStatusWait,
		bindAddr:      config.BindAddr,
		bindPort:      config.BindPort,
		startTime:     time.Now(),
	}
}

// NewServerWithListener creates a server that serves on an already bound
// listener. The daemon binds before starting the batcher so a port conflict
// fails startup before any task is accepted.
func NewServerWithListener(config *Config, listener net.Listener) (*Server, error) {
	if listener == nil {
		return nil, fmt.Errorf("listener cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid API config: %w", err)
	}

	port, err := netutil.ListenerPort(listener)
	if err != nil {
		return nil, err
	}

	s := NewServer(config)
	s.listener = listener
	s.bindPort = port
	return s, nil
}

// router builds the gin engine with middleware and routes.
func (s *Server) router() *gin.Engine {
	router := gin.New()

	// Configure Gin logging only if not already configured by CLI tools
	if !logging.IsConfiguredByCLI() {
		gin.DefaultWriter = logging.NewLevelWriter("DEBUG", "gin")
		gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")
	}

	router.Use(s.loggingMiddleware())
	router.Use(s.corsMiddleware())
	router.Use(gin.Recovery())

	s.setupRoutes(router)
	return router
}

// Start starts serving in the background.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.bindAddr, s.bindPort)
	logging.Info("Starting HTTP API server on %s", addr)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router(),
		// Write timeout must exceed the longest status long-poll
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.maxStatusWait + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener := s.listener
	if listener == nil {
		var err error
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to bind to %s: %w", addr, err)
		}
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logging.Error("HTTP server failed: %v", err)
		}
	}()

	logging.Success("HTTP API server started successfully")
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down HTTP API server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// getHandlerIndex is a root index handler factory
func (s *Server) getHandlerIndex() gin.HandlerFunc {
	return handlers.HandleIndex(version.BatchdVersion, endpointIndex)
}

// getHandlerHealth is a health endpoint handler factory
func (s *Server) getHandlerHealth() gin.HandlerFunc {
	return handlers.HandleHealth(s.tasks, version.BatchdVersion, s.startTime)
}

// getHandlerSubmitTask is a task submission handler factory
func (s *Server) getHandlerSubmitTask() gin.HandlerFunc {
	return handlers.HandleSubmitTask(s.tasks)
}

// getHandlerGetTask is a task status handler factory
func (s *Server) getHandlerGetTask() gin.HandlerFunc {
	return handlers.HandleGetTask(s.tasks, s.maxStatusWait)
}

// getHandlerFlush is a batch flush handler factory
func (s *Server) getHandlerFlush() gin.HandlerFunc {
	return handlers.HandleFlush(s.tasks)
}

// getHandlerStats is a stats endpoint handler factory
func (s *Server) getHandlerStats() gin.HandlerFunc {
	return handlers.HandleStats(s.tasks)
}
