// Package main is the entry point for the activity-feed-service API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"activity-feed-service/internal/app/service"
	"activity-feed-service/internal/config"
	"activity-feed-service/internal/domain"
	"activity-feed-service/internal/infra/postgres"
	"activity-feed-service/internal/infra/postgres/migrations"
	"activity-feed-service/internal/infra/provider/registry"
	rediscache "activity-feed-service/internal/infra/redis"
	"activity-feed-service/internal/job"
	"activity-feed-service/internal/logger"
	"activity-feed-service/internal/transport/httpserver"
	"activity-feed-service/internal/validator"
	"activity-feed-service/pkg/locker"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting activity-feed-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	db, err := postgres.NewConnection(
		postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			Name:         cfg.Database.Name,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			MaxLifetime:  cfg.Database.MaxLifetime,
		},
		log.Logger,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = postgres.Close(db) }()

	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	repo := postgres.NewRepository(db)

	// Upstream source clients
	sources := registry.NewCandidateSources(cfg.Upstream, log.Logger)
	profileSource := registry.NewProfileSource(cfg.Upstream, log.Logger)

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	var cache domain.Cache
	if cfg.Cache.Enabled {
		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		log.Info("cache enabled",
			zap.Duration("feed_ttl", cfg.Cache.FeedTTL),
			zap.Duration("profile_ttl", cfg.Cache.ProfileTTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("cache disabled")
	}

	// Services
	feedSvc := service.NewFeedService(repo, profileSource, cache,
		service.FeedOptions{
			CandidatePoolSize: cfg.Feed.CandidatePoolSize,
			MaxItems:          cfg.Feed.MaxItems,
			CacheEnabled:      cfg.Cache.Enabled,
			FeedTTL:           cfg.Cache.FeedTTL,
			ProfileTTL:        cfg.Cache.ProfileTTL,
		},
		log.Logger,
	)
	syncSvc := service.NewSyncService(repo, sources, log.Logger)

	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	v := validator.New()

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		feedSvc,
		syncSvc,
		db,
		v,
		log.Logger,
	)

	scheduler := job.NewSyncScheduler(
		syncSvc,
		job.SyncConfig{
			Interval:  cfg.Sync.Interval,
			Timeout:   cfg.Sync.Timeout,
			OnStartup: cfg.Sync.OnStartup,
		},
		log.Logger,
		distLocker,
	)
	scheduler.Start(cfg.Sync.OnStartup)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		scheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
