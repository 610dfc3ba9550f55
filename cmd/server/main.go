package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"kudoswall/internal/cache"
	"kudoswall/internal/config"
	"kudoswall/internal/logger"
	"kudoswall/internal/metrics"
	"kudoswall/internal/repository"
	"kudoswall/internal/service"
	"kudoswall/internal/storage"
	"kudoswall/internal/transport/rest"
	"kudoswall/internal/transport/ws"
)

func main() {
	if err := run(); err != nil {
		logger.GetLogger().Errorw("Server exited with error", "error", err)
		_ = logger.Close()
		os.Exit(1)
	}
	_ = logger.Close()
}

func run() error {
	log := logger.GetLogger()
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Storage
	var (
		forms     repository.FormRepo
		responses repository.ResponseRepo
		pingStore service.PingFunc
	)
	if cfg.UsesMemoryStore() {
		store := repository.NewMemoryStore()
		forms, responses = store.Forms(), store.Responses()
		log.Warn("Using in-memory store; data is lost on restart")
	} else {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return fmt.Errorf("connect to MongoDB: %w", err)
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				log.Warnw("MongoDB disconnect failed", "error", err)
			}
		}()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = mongoClient.Ping(pingCtx, nil)
		cancel()
		if err != nil {
			return fmt.Errorf("ping MongoDB: %w", err)
		}
		log.Infow("Connected to MongoDB", "database", cfg.Mongo.Database)

		db := mongoClient.Database(cfg.Mongo.Database)
		if err := repository.EnsureIndexes(ctx, db); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}
		forms, responses = repository.NewFormRepo(db), repository.NewResponseRepo(db)
		pingStore = func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		}
	}

	// Redis is optional: without it insights are not cached and public
	// endpoints are not rate limited.
	var (
		rdb          *redis.Client
		insightCache cache.InsightCache
		rateLimiter  cache.RateLimiter
	)
	if cfg.Redis.Address != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warnw("Redis unreachable; continuing, calls will fail open", "address", cfg.Redis.Address, "error", err)
		} else {
			log.Infow("Connected to Redis", "address", cfg.Redis.Address)
		}
		insightCache = cache.NewInsightCache(rdb, cfg.Insights.CacheTTL())
		rateLimiter = cache.NewRateLimiter(rdb)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	gen, err := service.NewTextGenerator(ctx, cfg.AI)
	if err != nil {
		return err
	}

	var objectStore storage.ObjectStore
	if cfg.Storage.IsEnabled() {
		s3Store, err := storage.NewS3Storage(ctx, cfg.Storage)
		if err != nil {
			return err
		}
		objectStore = s3Store
	}

	wsHub := ws.NewHub(m)
	defer wsHub.Stop()

	validate := service.NewValidator()
	authSvc := service.NewAuthService(cfg.Server.JwtSecretKey)
	formSvc := service.NewFormService(forms, validate)
	spam := service.NewSpamClassifier(gen, cfg.AI.SpamModel, m)
	notifier := service.NewEmailNotifier(cfg.Email, cfg.Server.PublicBaseURL, m)
	responseSvc := service.NewResponseService(forms, responses, spam, notifier, wsHub, validate, m)

	container := &rest.Container{
		Config:           cfg,
		AuthService:      authSvc,
		FormService:      formSvc,
		ResponseService:  responseSvc,
		AnalyticsService: service.NewAnalyticsService(forms, responses, cfg.Mongo.FetchConcurrency),
		InsightService:   service.NewInsightService(forms, responses, gen, cfg.AI.InsightsModel, insightCache, m),
		UploadService:    service.NewUploadService(objectStore, cfg.Storage.MaxUploadBytes),
		HealthService:    service.NewHealthService(pingStore, rdb),
		RateLimiter:      rateLimiter,
		WSHub:            wsHub,
		Metrics:          m,
		Gatherer:         prometheus.DefaultGatherer,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           rest.NewRouter(container),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("Server starting", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case sig := <-quit:
		log.Infow("Shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited")
	return nil
}
