package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxskaink/EventManager-sub001/internal/bootstrap"
	"github.com/maxskaink/EventManager-sub001/internal/config"
	"github.com/maxskaink/EventManager-sub001/internal/db"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/logger"
)

// Server holds the state for the HTTP server and its worker
type Server struct {
	config   *config.Config
	router   *gin.Engine
	database *db.PostgresDB
	deps     *bootstrap.Dependencies
	http     *http.Server
}

// NewServer creates and initializes a new server instance
func NewServer() (*Server, error) {
	cfg, err := bootstrap.LoadConfigAndSetupLogger(filepath.Join("configs", "config.yaml"))
	if err != nil {
		return nil, err
	}

	database, err := bootstrap.SetupDatabase(cfg)
	if err != nil {
		return nil, err
	}

	deps := bootstrap.BuildDependencies(cfg, database)
	router := bootstrap.SetupRouter(cfg, deps)

	return &Server{
		config:   cfg,
		router:   router,
		database: database,
		deps:     deps,
	}, nil
}

// Run starts the HTTP server and the queue worker, then blocks until a
// shutdown signal arrives
func (s *Server) Run() error {
	if err := s.deps.QueueServer.Start(); err != nil {
		return fmt.Errorf("failed to start queue worker: %w", err)
	}

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown")
	}

	return s.Shutdown(context.Background())
}

// Shutdown drains the HTTP server, stops the worker and closes resources
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var finalErr error
	if s.http != nil {
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			finalErr = errors.Join(finalErr, fmt.Errorf("error shutting down http server: %w", err))
		}
	}

	s.deps.QueueServer.Shutdown()
	if err := s.deps.QueueClient.Close(); err != nil {
		finalErr = errors.Join(finalErr, fmt.Errorf("error closing queue client: %w", err))
	}

	s.database.Close()
	logger.Info().Msg("Server shut down")

	return finalErr
}
