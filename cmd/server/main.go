package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	config "github.com/craftyard/marketplace-backend/configs"
	"github.com/craftyard/marketplace-backend/internal/application/services"
	"github.com/craftyard/marketplace-backend/internal/core/ports"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/blobstorage"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/docstore/dynamodb"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/docstore/memory"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/health"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/httpserver"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/memcache"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/push"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/realtime"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/redis"
	"github.com/craftyard/marketplace-backend/internal/infrastructure/repositories"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting marketplace backend...")

	ctx := context.Background()

	// Initialize the document store backend
	var store ports.DocumentStore
	switch cfg.DocStore.Backend {
	case "dynamodb":
		ddb, err := dynamodb.NewStore(ctx, dynamodb.Config{
			TableName:    cfg.DocStore.TableName,
			Region:       cfg.DocStore.Region,
			Endpoint:     cfg.DocStore.Endpoint,
			PollInterval: cfg.DocStore.PollInterval,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to connect to DynamoDB:", err)
		}
		store = ddb
		logger.Info("Connected to DynamoDB successfully")
	default:
		store = memory.New()
		logger.Info("Using in-memory document store")
	}

	// Initialize the cache backend
	var cache ports.Cache
	healthCheckers := []ports.HealthChecker{health.NewDocStoreHealthChecker(store)}
	switch cfg.Cache.Backend {
	case "redis":
		redisClient, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis:", err)
		}
		defer redisClient.Close()
		cache = redis.NewCache(redisClient, cfg.Cache.KeyPrefix)
		healthCheckers = append(healthCheckers, health.NewRedisHealthChecker(redisClient))
		logger.Info("Connected to Redis successfully")
	default:
		cache = memcache.New()
		healthCheckers = append(healthCheckers, health.NewCacheHealthChecker(cache))
		logger.Info("Using in-memory cache")
	}

	registry := realtime.NewRegistry()
	defer registry.CancelAll()

	// Initialize repositories with per-entity freshness windows
	userRepo := repositories.NewUserRepository(store, cache, cfg.Cache.UserMaxAge, logger)
	postRepo := repositories.NewPostRepository(store, cache, cfg.Cache.PostMaxAge, logger)
	reelRepo := repositories.NewReelRepository(store, cache, registry, cfg.Cache.ReelMaxAge, logger)
	reviewRepo := repositories.NewReviewRepository(store, cache, cfg.Cache.ListMaxAge, logger)
	messageRepo := repositories.NewMessageRepository(store, cache, registry, cfg.Cache.ChatMaxAge, logger)
	notificationRepo := repositories.NewNotificationRepository(store, cache, cfg.Cache.ListMaxAge, logger)
	statusRepo := repositories.NewStatusRepository(store, cache, cfg.Cache.ListMaxAge, logger)
	portfolioRepo := repositories.NewPortfolioRepository(store, cache, cfg.Cache.ListMaxAge, logger)
	savedRepo := repositories.NewSavedRepository(store, cache, cfg.Cache.ListMaxAge, logger)

	pushSender := push.NewSender(&push.Config{
		Endpoint:  cfg.Push.Endpoint,
		ServerKey: cfg.Push.ServerKey,
	}, logger)

	blobs := blobstorage.NewSupabaseStorage(&blobstorage.SupabaseConfig{
		URL:        cfg.Storage.SupabaseURL,
		ServiceKey: cfg.Storage.ServiceKey,
		Bucket:     cfg.Storage.Bucket,
	}, logger)

	validate := validator.New()

	// Wire services. Notifications come first since the content services
	// fan out through them.
	notificationService := services.NewNotificationService(notificationRepo, userRepo, pushSender, logger)
	userService := services.NewUserService(userRepo, postRepo, reelRepo, reviewRepo, messageRepo, blobs, notificationService, logger)
	postService := services.NewPostService(postRepo, userRepo, validate, logger)
	reelService := services.NewReelService(reelRepo, userRepo, notificationService, validate, logger)
	reviewService := services.NewReviewService(reviewRepo, userRepo, notificationService, validate, logger)
	messageService := services.NewMessageService(messageRepo, userRepo, notificationService, validate, logger)
	statusService := services.NewStatusService(statusRepo, userRepo, validate, logger)
	portfolioService := services.NewPortfolioService(portfolioRepo, userRepo, validate, logger)
	savedService := services.NewSavedService(savedRepo, logger)

	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	deps := httpserver.ServerDeps{
		UserService:         userService,
		PostService:         postService,
		ReelService:         reelService,
		ReviewService:       reviewService,
		MessageService:      messageService,
		NotificationService: notificationService,
		StatusService:       statusService,
		PortfolioService:    portfolioService,
		SavedService:        savedService,
		HealthCheckers:      healthCheckers,
	}

	server := httpserver.NewServer(serverConfig, cfg.JWT.Secret, logger, deps)

	// Periodically purge statuses whose lifetime has elapsed
	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go func() {
		ticker := time.NewTicker(cfg.Status.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-cleanupCtx.Done():
				return
			case <-ticker.C:
				removed, err := statusService.CleanupExpiredStatuses(cleanupCtx)
				if err != nil {
					logger.WithError(err).Warn("Status cleanup failed")
					continue
				}
				if removed > 0 {
					logger.WithField("removed", removed).Info("Purged expired statuses")
				}
			}
		}
	}()

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	stopCleanup()
	messageRepo.UnsubscribeAll()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
