package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/config"
	applog "github.com/DiasNurdicanov/63990-six-cities-5/internal/logger"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/repositories"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	addr := flag.String("addr", cfg.Server.Address, "HTTP network address")
	flag.Parse()

	logger, logCloser, err := applog.New(applog.Config{
		Level:         cfg.Logging.Level,
		Format:        cfg.Logging.Format,
		FluentEnabled: cfg.Fluent.Enabled,
		FluentHost:    cfg.Fluent.Host,
		FluentPort:    cfg.Fluent.Port,
		FluentTag:     cfg.Fluent.Tag,
		FluentLevel:   cfg.Fluent.Level,
	})
	if err != nil {
		slog.Error("failed to create logger", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	if err := run(cfg, *addr, logger); err != nil {
		logger.Error("server stopped", "error", err)
		logCloser.Close()
		os.Exit(1)
	}
}

func run(cfg config.Config, addr string, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialect, err := repositories.DialectFor(cfg.Database.Driver)
	if err != nil {
		return err
	}
	db, err := openDB(ctx, dialect, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("connected to database", "driver", dialect.DriverName())

	if err := repositories.EnsureSchema(ctx, db, dialect); err != nil {
		return err
	}

	deps, closers, err := openDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeAll(closers, logger)

	app, err := initializeApp(db, dialect, cfg, deps, logger)
	if err != nil {
		return err
	}
	startCommentCountReconciler(ctx, app.offerService, cfg.Reconciler.Interval, logger)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	})

	srv := &http.Server{
		Addr:         addr,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
		Handler:      addSecurityHeaders(c.Handler(app.routes())),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
