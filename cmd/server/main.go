package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ebulut/progress-tracker/internal/config"
	"github.com/ebulut/progress-tracker/internal/export"
	httpserver "github.com/ebulut/progress-tracker/internal/interfaces/http"
	"github.com/ebulut/progress-tracker/internal/repository"
	"github.com/ebulut/progress-tracker/internal/service"
	"github.com/ebulut/progress-tracker/pkg/database"
	"github.com/ebulut/progress-tracker/pkg/utils"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting construction progress tracker",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	projectRepo := repository.NewProjectRepository(db.DB, logger)
	workItemRepo := repository.NewWorkItemRepository(db.DB, logger)
	entryRepo := repository.NewEntryRepository(db.DB, logger)
	scheduleRepo := repository.NewScheduleRepository(db.DB, logger)

	projectService := service.NewProjectService(projectRepo, logger)
	importService := service.NewImportService(db, workItemRepo, entryRepo, scheduleRepo, logger)
	reportService := service.NewReportService(projectRepo, workItemRepo, entryRepo, scheduleRepo, logger)
	exporter := export.NewReportExporter(logger)

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxUploadBytes: int64(cfg.Upload.MaxFileSizeMB) << 20,
	}, projectService, importService, reportService, exporter, sugarLogger{logger.Sugar()})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// sugarLogger adapts zap's sugared logger to the http layer's Logger
// interface.
type sugarLogger struct {
	s *zap.SugaredLogger
}

func (l sugarLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l sugarLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}
