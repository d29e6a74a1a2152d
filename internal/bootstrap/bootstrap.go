package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxskaink/EventManager-sub001/internal/app/controllers"
	"github.com/maxskaink/EventManager-sub001/internal/app/repositories"
	"github.com/maxskaink/EventManager-sub001/internal/app/routes"
	"github.com/maxskaink/EventManager-sub001/internal/app/services"
	"github.com/maxskaink/EventManager-sub001/internal/config"
	"github.com/maxskaink/EventManager-sub001/internal/db"
	"github.com/maxskaink/EventManager-sub001/internal/middleware"
	pkgAuth "github.com/maxskaink/EventManager-sub001/internal/pkg/auth"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/helpers"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/logger"
	"github.com/maxskaink/EventManager-sub001/internal/seed"
	"github.com/maxskaink/EventManager-sub001/internal/worker"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *repositories.Repositories
	Services       *services.Services
	Controllers    *controllers.Controllers
	AuthMiddleware *middleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	QueueClient    *worker.Client
	QueueServer    *worker.Server
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("logFormat", cfg.Logging.Format).
		Msg("Logger configured")

	return cfg, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info().Msg("Database connection established")

	if err := db.RunMigrations(database.Pool); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	logger.Info().Msg("Database migrations applied")

	if err := seed.CreateDefaultData(context.Background(), database.Pool); err != nil {
		logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return database, nil
}

// BuildDependencies wires repositories, services, controllers and the
// background queue
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) *Dependencies {
	deps := &Dependencies{}

	deps.Repos = repositories.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.QueueClient = worker.NewClient(cfg)
	deps.Services = services.NewServices(deps.Repos, deps.JWTService, deps.QueueClient)
	deps.QueueServer = worker.NewServer(cfg, deps.Services.Notification)

	deps.Controllers = controllers.NewControllers(deps.Services)
	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	routes.SetupSwagger(router)
	routes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
