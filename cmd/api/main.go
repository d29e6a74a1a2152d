package main

import (
	"os"

	"github.com/maxskaink/EventManager-sub001/internal/pkg/logger"
	"github.com/maxskaink/EventManager-sub001/internal/server"
)

// @title EventManager API
// @version 1.0
// @description Publication access and event participation backend for a
// @description membership community

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}
}
