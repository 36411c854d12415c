package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/config"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/events"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/handlers"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/repositories"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/services"
	"github.com/DiasNurdicanov/63990-six-cities-5/utils"
)

type application struct {
	logger *slog.Logger
	tokens *utils.Manager

	userHandler     *handlers.UserHandler
	offerHandler    *handlers.OfferHandler
	commentHandler  *handlers.CommentHandler
	favoriteHandler *handlers.FavoriteHandler

	offerService *services.OfferService
}

// dependencies holds the optional infrastructure. A nil field disables it.
type dependencies struct {
	cache   services.OfferCache
	events  events.Publisher
	avatars services.AvatarStorage
}

func initializeApp(db *sql.DB, dialect repositories.Dialect, cfg config.Config, deps dependencies, logger *slog.Logger) (*application, error) {
	tokens, err := utils.NewManager(cfg.JWT.Secret)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	// Repositories
	userRepo := &repositories.UserRepository{DB: db, Dialect: dialect}
	offerRepo := &repositories.OfferRepository{DB: db, Dialect: dialect}
	commentRepo := &repositories.CommentRepository{DB: db, Dialect: dialect}
	favoriteRepo := &repositories.FavoriteRepository{DB: db, Dialect: dialect}

	// Services
	userService := &services.UserService{
		UserRepo:     userRepo,
		TokenManager: tokens,
		TokenTTL:     cfg.JWT.TTL,
		Avatars:      deps.avatars,
		Logger:       logger.With("component", "users"),
	}
	offerService := &services.OfferService{
		OfferRepo:    offerRepo,
		CommentRepo:  commentRepo,
		FavoriteRepo: favoriteRepo,
		Users:        userRepo,
		Cache:        deps.cache,
		Events:       deps.events,
		Logger:       logger.With("component", "offers"),
	}
	commentService := &services.CommentService{
		CommentRepo: commentRepo,
		Offers:      offerService,
		Events:      deps.events,
		Logger:      logger.With("component", "comments"),
	}
	favoriteService := &services.FavoriteService{
		FavoriteRepo: favoriteRepo,
		CommentRepo:  commentRepo,
		Offers:       offerRepo,
		Users:        userRepo,
		Events:       deps.events,
		Logger:       logger.With("component", "favorites"),
	}

	// Handlers
	return &application{
		logger:          logger,
		tokens:          tokens,
		userHandler:     &handlers.UserHandler{Service: userService, Logger: logger},
		offerHandler:    &handlers.OfferHandler{Service: offerService, Logger: logger},
		commentHandler:  &handlers.CommentHandler{Service: commentService, Offers: offerService, Logger: logger},
		favoriteHandler: &handlers.FavoriteHandler{Service: favoriteService, Logger: logger},
		offerService:    offerService,
	}, nil
}

func openDB(ctx context.Context, dialect repositories.Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxIdleConns(35)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}
