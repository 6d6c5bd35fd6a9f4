package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/tasker-app/tasker/internal/cli"
	"github.com/tasker-app/tasker/internal/config"
	"github.com/tasker-app/tasker/internal/db"
	"github.com/tasker-app/tasker/internal/logging"
	"github.com/tasker-app/tasker/internal/repository"
	"github.com/tasker-app/tasker/internal/service"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath, err := cli.ConfigPathFromArgs(os.Args[1:])
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Open database
	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	userRepo := repository.NewSQLiteUserRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Observability
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsObserver, err := service.NewMetricsUseCaseObserver(registry)
	if err != nil {
		return fmt.Errorf("registering use case metrics: %w", err)
	}
	observer := service.NewMultiUseCaseObserver(
		service.NewLogUseCaseObserver(logger),
		metricsObserver,
	)

	// Wire services
	opts := []service.Option{service.WithLocation(loc), service.WithObserver(observer)}
	app := &cli.App{
		Sessions: service.NewSessionService(userRepo, sessionRepo, uow, opts...),
		Users:    service.NewUserService(userRepo, uow, opts...),
		Config:   cfg,
		Logger:   logger,
		Registry: registry,
		Location: loc,
	}

	// Detect interactive terminal for forms and the watch view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	logger.Debug("tasker starting",
		zap.String("database", cfg.Database.Path),
		zap.String("timezone", loc.String()))

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
