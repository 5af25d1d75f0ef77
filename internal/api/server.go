package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/flowmock/internal/store"
)

// Version is the API version reported by the health endpoint. Overridden
// via ldflags at build time.
var Version = "1.0.0"

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// Server serves the mock API for a single instance id. The store is
// resolved through the registry, so a server bound to a fresh id starts
// with a cold store and two servers bound to the same id share one.
type Server struct {
	echo       *echo.Echo
	registry   *store.Registry
	instanceID string
	logger     *zap.Logger
	metrics    *Metrics
	config     *Config
}

// NewServer creates a mock API server bound to one instance id.
func NewServer(registry *store.Registry, instanceID string, logger *zap.Logger, cfg *Config) (*Server, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	if instanceID == "" {
		return nil, fmt.Errorf("instance id cannot be empty")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 8080,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:       e,
		registry:   registry,
		instanceID: instanceID,
		logger:     logger,
		metrics:    NewMetrics(logger),
		config:     cfg,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.metrics.Middleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("instance_id", instanceID),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s.registerRoutes()

	return s, nil
}

// store returns the instance store this server is bound to.
func (s *Server) store() *store.InstanceStore {
	return s.registry.Instance(s.instanceID)
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	v1 := s.echo.Group("/api/v1")

	v1.GET("/dags", s.listDAGs)
	v1.POST("/dags", s.createDAG)
	v1.GET("/dags/:dag_id", s.getDAG)
	v1.PATCH("/dags/:dag_id", s.updateDAG)
	v1.DELETE("/dags/:dag_id", s.deleteDAG)

	v1.GET("/dags/:dag_id/dagRuns", s.listDAGRuns)
	v1.POST("/dags/:dag_id/dagRuns", s.createDAGRun)
	v1.GET("/dags/:dag_id/dagRuns/:run_id", s.getDAGRun)
	v1.PATCH("/dags/:dag_id/dagRuns/:run_id", s.updateDAGRun)
	v1.DELETE("/dags/:dag_id/dagRuns/:run_id", s.deleteDAGRun)

	ti := v1.Group("/dags/:dag_id/dagRuns/:run_id/taskInstances")
	ti.GET("", s.listTaskInstances)
	ti.POST("", s.createTaskInstance)
	ti.GET("/:task_id", s.getTaskInstance)
	ti.POST("/:task_id/setTaskInstanceState", s.setTaskInstanceState)
	ti.POST("/:task_id/clearTaskInstance", s.clearTaskInstance)
	ti.GET("/:task_id/logs/:try_number", s.getTaskLog)
	ti.POST("/:task_id/logs/:try_number", s.createTaskLog)
	ti.GET("/:task_id/xcomEntries", s.listXComEntries)
	ti.POST("/:task_id/xcomEntries", s.createXComEntry)
	ti.GET("/:task_id/xcomEntries/:key", s.getXComEntry)
	ti.DELETE("/:task_id/xcomEntries/:key", s.deleteXComEntry)

	v1.GET("/connections", s.listConnections)
	v1.POST("/connections", s.createConnection)
	v1.GET("/connections/:conn_id", s.getConnection)
	v1.PATCH("/connections/:conn_id", s.updateConnection)
	v1.DELETE("/connections/:conn_id", s.deleteConnection)

	v1.GET("/variables", s.listVariables)
	v1.POST("/variables", s.createVariable)
	v1.GET("/variables/:key", s.getVariable)
	v1.PATCH("/variables/:key", s.updateVariable)
	v1.DELETE("/variables/:key", s.deleteVariable)

	v1.GET("/pools", s.listPools)
	v1.POST("/pools", s.createPool)
	v1.GET("/pools/:pool_name", s.getPool)
	v1.PATCH("/pools/:pool_name", s.updatePool)
	v1.DELETE("/pools/:pool_name", s.deletePool)
	v1.PATCH("/pools/:pool_name/slots", s.updatePoolSlots)

	v1.GET("/providers", s.listProviders)
	v1.POST("/providers", s.createProvider)
	v1.GET("/providers/:provider_name", s.getProvider)
	v1.PATCH("/providers/:provider_name", s.updateProvider)
	v1.DELETE("/providers/:provider_name", s.deleteProvider)
	v1.GET("/providers/:provider_name/hooks", s.getProviderHooks)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status     string `json:"status"`
	InstanceID string `json:"instance_id"`
	Timestamp  string `json:"timestamp"`
	Version    string `json:"version"`
}

// handleHealth reports instance identity and liveness.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:     "healthy",
		InstanceID: s.instanceID,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Version:    Version,
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting flowmock server",
		zap.String("addr", addr),
		zap.String("instance_id", s.instanceID))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down flowmock server", zap.String("instance_id", s.instanceID))
	return s.echo.Shutdown(ctx)
}
