package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/cache"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/config"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/events"
	"github.com/DiasNurdicanov/63990-six-cities-5/utils"
)

// openDependencies connects the optional infrastructure enabled in cfg. The
// returned closers must be closed on shutdown.
func openDependencies(ctx context.Context, cfg config.Config, logger *slog.Logger) (dependencies, []io.Closer, error) {
	var deps dependencies
	var closers []io.Closer

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			rdb.Close()
			return deps, closers, fmt.Errorf("redis ping: %w", err)
		}
		deps.cache = cache.NewPremiumCache(rdb, cfg.Redis.TTL)
		closers = append(closers, rdb)
		logger.Info("premium offer cache enabled", "addr", cfg.Redis.Address)
	}

	if cfg.S3.Enabled {
		uploader, err := utils.NewS3Uploader(utils.S3Config{
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			Folder:    cfg.S3.Folder,
			PublicURL: cfg.S3.PublicURL,
		})
		if err != nil {
			closeAll(closers, logger)
			return deps, nil, err
		}
		deps.avatars = uploader
		logger.Info("avatar uploads enabled", "bucket", cfg.S3.Bucket)
	}

	if cfg.RabbitMQ.Enabled {
		pub, err := events.NewRabbitPublisher(events.RabbitConfig{
			URL:      cfg.RabbitMQ.URL,
			Exchange: cfg.RabbitMQ.Exchange,
		})
		if err != nil {
			closeAll(closers, logger)
			return deps, nil, err
		}
		deps.events = pub
		closers = append(closers, pub)
		logger.Info("event publishing enabled", "exchange", cfg.RabbitMQ.Exchange)
	}

	return deps, closers, nil
}

func closeAll(closers []io.Closer, logger *slog.Logger) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			logger.Warn("close dependency", "error", err)
		}
	}
}
