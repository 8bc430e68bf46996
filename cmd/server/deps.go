package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/perfboard/perfboard/internal/config"
	"github.com/perfboard/perfboard/internal/handler"
	"github.com/perfboard/perfboard/internal/pkg/database"
	mongorepo "github.com/perfboard/perfboard/internal/repository/mongo"
	pgrepo "github.com/perfboard/perfboard/internal/repository/postgres"
	"github.com/perfboard/perfboard/internal/service"
)

// summaryCacheTTL bounds how stale a cached performance summary can be.
const summaryCacheTTL = 5 * time.Minute

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	// Database connections
	Postgres *database.PostgresDB
	Mongo    *database.MongoDB
	Redis    *database.RedisDB

	// Repositories
	EmployeeRepo   *pgrepo.EmployeeRepository
	ProjectRepo    *pgrepo.ProjectRepository
	AssignmentRepo *pgrepo.AssignmentRepository
	ReviewRepo     *mongorepo.ReviewRepository

	// Services
	EmployeeService   *service.EmployeeService
	ProjectService    *service.ProjectService
	AssignmentService *service.AssignmentService
	ReviewService     *service.ReviewService
	ReportService     *service.ReportService

	// Handlers
	HealthHandler      *handler.HealthHandler
	EmployeesHandler   *handler.EmployeesHandler
	ProjectsHandler    *handler.ProjectsHandler
	AssignmentsHandler *handler.AssignmentsHandler
	ReviewsHandler     *handler.ReviewsHandler
	ReportsHandler     *handler.ReportsHandler
}

// initDependencies initializes all dependencies
func initDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	ctx := context.Background()

	// Initialize PostgreSQL using database wrapper
	pgDB, err := database.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	deps.Postgres = pgDB

	if err := pgDB.InitSchema(ctx); err != nil {
		pgDB.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	// The review store connects lazily; a Mongo outage degrades review
	// endpoints instead of preventing startup.
	deps.Mongo = database.NewMongo(cfg.Mongo)

	// Redis is optional. When disabled or unreachable the report cache
	// falls through to recomputation.
	if cfg.Redis.Enabled {
		redisDB, err := database.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("failed to initialize Redis, report caching disabled", zap.Error(err))
		} else {
			deps.Redis = redisDB
		}
	}
	cache := database.NewCache(deps.Redis, summaryCacheTTL)

	// Initialize repositories
	deps.EmployeeRepo = pgrepo.NewEmployeeRepository(pgDB)
	deps.ProjectRepo = pgrepo.NewProjectRepository(pgDB)
	deps.AssignmentRepo = pgrepo.NewAssignmentRepository(pgDB)
	deps.ReviewRepo = mongorepo.NewReviewRepository(deps.Mongo)

	// Initialize services
	deps.EmployeeService = service.NewEmployeeService(deps.EmployeeRepo)
	deps.ProjectService = service.NewProjectService(deps.ProjectRepo)
	deps.AssignmentService = service.NewAssignmentService(
		deps.AssignmentRepo,
		deps.EmployeeRepo,
		deps.ProjectRepo,
	)
	deps.ReviewService = service.NewReviewService(
		deps.ReviewRepo,
		deps.EmployeeRepo,
	)
	deps.ReportService = service.NewReportService(
		deps.EmployeeRepo,
		deps.ProjectRepo,
		deps.AssignmentRepo,
		deps.ReviewRepo,
		cache,
	)

	// Initialize handlers
	deps.HealthHandler = handler.NewHealthHandler(
		pgDB,
		deps.Mongo,
		deps.Redis,
		appVersion,
	)
	deps.EmployeesHandler = handler.NewEmployeesHandler(
		deps.EmployeeService,
		logger,
	)
	deps.ProjectsHandler = handler.NewProjectsHandler(
		deps.ProjectService,
		deps.AssignmentService,
		logger,
	)
	deps.AssignmentsHandler = handler.NewAssignmentsHandler(
		deps.AssignmentService,
		logger,
	)
	deps.ReviewsHandler = handler.NewReviewsHandler(
		deps.ReviewService,
		deps.ReportService,
		logger,
	)
	deps.ReportsHandler = handler.NewReportsHandler(
		deps.ReportService,
		logger,
	)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() {
	if d.Postgres != nil {
		d.Postgres.Close()
	}
	if d.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = d.Mongo.Close(ctx)
		cancel()
	}
	if d.Redis != nil {
		_ = d.Redis.Close()
	}
}
