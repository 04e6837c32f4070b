package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/horia913/daily-fitness-sub008/internal/cli"
	"github.com/horia913/daily-fitness-sub008/internal/config"
	"github.com/horia913/daily-fitness-sub008/internal/db"
	"github.com/horia913/daily-fitness-sub008/internal/repository"
	"github.com/horia913/daily-fitness-sub008/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// Open database
	database, err := db.OpenDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	subjectRepo := repository.NewSQLiteSubjectRepo(database)
	itemRepo := repository.NewSQLiteTrackedItemRepo(database)
	logRepo := repository.NewSQLiteLogRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	clock := service.SystemClock(loc)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewSlogUseCaseObserver(logger)
	}

	app := &cli.App{
		Subjects: service.NewSubjectService(subjectRepo, observer),
		Items:    service.NewTrackedItemService(subjectRepo, itemRepo, clock, observer),
		Logs:     service.NewLogService(itemRepo, logRepo, uow, observer),
		Adherence: service.NewAdherenceService(subjectRepo, itemRepo, logRepo, clock,
			service.WithWindowDays(cfg.WindowDays),
			service.WithSummaryConcurrency(cfg.SummaryConcurrency),
			service.WithObserver(observer),
		),
		Import: service.NewImportService(uow, clock, observer),

		LogStore:      logRepo,
		Clock:         clock,
		WindowDays:    cfg.WindowDays,
		ToggleTimeout: cfg.ToggleTimeout(),
		Logger:        logger,
	}

	// Detect interactive terminal for the assign form.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

func serveMetrics(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", "addr", addr, "error", err)
		}
	}()
	return srv
}
