package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bennblr/food-app/configs"
	"github.com/bennblr/food-app/middlewares"
	"github.com/bennblr/food-app/pkg/cache"
	"github.com/bennblr/food-app/pkg/events"
	"github.com/bennblr/food-app/routes"
	"github.com/bennblr/food-app/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		log.Fatal("load config failed: ", err)
	}

	logger, err := configs.NewLogger(cfg)
	if err != nil {
		log.Fatal("init logger failed: ", err)
	}
	defer func() { _ = logger.Sync() }()

	// DB
	db, err := configs.OpenDB(cfg)
	if err != nil {
		logger.Fatal("open database failed", zap.Error(err))
	}
	if err := configs.Migrate(db); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}
	if err := configs.SeedAdmin(db, cfg, logger); err != nil {
		logger.Fatal("seed admin failed", zap.Error(err))
	}

	// driver feed cache (optional)
	var feed cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, feed cache disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			feed = cache.NewRedisCache(client, cfg.FeedCacheTTL)
		}
		cancel()
	}

	// order events (optional)
	var pub events.Publisher = events.Nop{}
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		pub = events.NewKafkaPublisher(brokers, cfg.KafkaTopic)
		logger.Info("publishing order events", zap.Strings("brokers", brokers), zap.String("topic", cfg.KafkaTopic))
	}
	defer pub.Close()

	utils.RegisterValidators()

	// HTTP
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.Logger(logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORSOriginList()))

	routes.RegisterRoutes(r, routes.Deps{DB: db, Cfg: cfg, Log: logger, Feed: feed, Events: pub})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server running", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
}
