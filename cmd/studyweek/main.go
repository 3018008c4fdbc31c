package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/studyweek/internal/cli"
	"github.com/alexanderramin/studyweek/internal/config"
	"github.com/alexanderramin/studyweek/internal/db"
	httpapi "github.com/alexanderramin/studyweek/internal/http"
	"github.com/alexanderramin/studyweek/internal/logging"
	"github.com/alexanderramin/studyweek/internal/metrics"
	"github.com/alexanderramin/studyweek/internal/repository"
	"github.com/alexanderramin/studyweek/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// STUDYWEEK_CONFIG points at an explicit config file; otherwise the
	// default location is used when present.
	cfg, err := config.Load(os.Getenv("STUDYWEEK_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenDB(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	taskRepo := repository.NewSQLiteTaskRepo(database)
	blockRepo := repository.NewSQLiteScheduleRepo(database)
	sessionRepo := repository.NewSQLiteFocusSessionRepo(database)
	entryRepo := repository.NewSQLiteManualEntryRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	m := metrics.New(prometheus.DefaultRegisterer)
	observers := []service.UseCaseObserver{
		service.NewLogUseCaseObserver(logger),
		service.NewMetricsUseCaseObserver(m),
	}

	// Wire services
	reflectSvc, err := service.NewReflectService(blockRepo, sessionRepo, entryRepo, taskRepo,
		service.ReflectConfig{
			FetchTimeout: cfg.Reflection.FetchTimeout,
			CacheSize:    cfg.Reflection.CacheSize,
		}, logger, m, observers...)
	if err != nil {
		return fmt.Errorf("building reflect service: %w", err)
	}
	sessionSvc := service.NewSessionService(sessionRepo, entryRepo, uow, m, observers...)
	dashboardSvc := service.NewDashboardService(blockRepo, sessionRepo, entryRepo, observers...)

	app := &cli.App{
		Tasks:     service.NewTaskService(taskRepo),
		Schedule:  service.NewScheduleService(blockRepo, taskRepo),
		Sessions:  sessionSvc,
		Dashboard: dashboardSvc,
		Reflect:   reflectSvc,
		UserID:    cfg.User.DefaultID,
	}

	app.Serve = func(ctx context.Context) error {
		srv, err := httpapi.NewServer(httpapi.Services{
			Reflect:   reflectSvc,
			Sessions:  sessionSvc,
			Dashboard: dashboardSvc,
		}, logger, m, prometheus.DefaultGatherer, &httpapi.Config{
			Host: cfg.Server.Host,
			Port: cfg.Server.Port,
		})
		if err != nil {
			return err
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(srv.Start)
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
