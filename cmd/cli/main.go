package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/perfboard/perfboard/internal/cli"
	"github.com/perfboard/perfboard/internal/config"
	"github.com/perfboard/perfboard/internal/pkg/database"
	"github.com/perfboard/perfboard/internal/pkg/logger"
	mongorepo "github.com/perfboard/perfboard/internal/repository/mongo"
	pgrepo "github.com/perfboard/perfboard/internal/repository/postgres"
	"github.com/perfboard/perfboard/internal/service"
)

// Version is set at build time
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "perfboard",
	Short: "Perfboard - employee performance tracking console",
	Long: `Perfboard console provides an interactive text menu over the
employee, project, assignment and performance review stores.

It connects directly to PostgreSQL and MongoDB using the same
configuration as the API server (environment variables or config.yaml).`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "perfboard: %v\n", err)
		os.Exit(1)
	}
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Keep connection chatter out of the menu output
	if err := logger.Init(logger.Config{Level: "warn", Format: "console"}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	// SIGINT is a normal way to leave the console
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgDB, err := database.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pgDB.Close()

	if err := pgDB.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	mongoDB := database.NewMongo(cfg.Mongo)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = mongoDB.Close(closeCtx)
		cancel()
	}()

	employeeRepo := pgrepo.NewEmployeeRepository(pgDB)
	projectRepo := pgrepo.NewProjectRepository(pgDB)
	assignmentRepo := pgrepo.NewAssignmentRepository(pgDB)
	reviewRepo := mongorepo.NewReviewRepository(mongoDB)

	employeeService := service.NewEmployeeService(employeeRepo)
	projectService := service.NewProjectService(projectRepo)
	assignmentService := service.NewAssignmentService(assignmentRepo, employeeRepo, projectRepo)
	reviewService := service.NewReviewService(reviewRepo, employeeRepo)
	// No Redis in the console; reports compute on every call
	reportService := service.NewReportService(
		employeeRepo, projectRepo, assignmentRepo, reviewRepo, nil,
	)

	menu := cli.NewMenu(
		employeeService,
		projectService,
		assignmentService,
		reviewService,
		reportService,
		os.Stdin,
		os.Stdout,
	)

	done := make(chan error, 1)
	go func() {
		done <- menu.Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		// The menu may be blocked reading stdin; exit cleanly anyway
		fmt.Println()
		logger.Log.Debug("interrupted", zap.String("signal", "SIGINT/SIGTERM"))
		return nil
	}
}
