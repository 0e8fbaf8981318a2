package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fairway-labs/golf-agent/internal/agent"
	"github.com/fairway-labs/golf-agent/internal/api/handlers"
	"github.com/fairway-labs/golf-agent/internal/billing"
	"github.com/fairway-labs/golf-agent/internal/config"
	"github.com/fairway-labs/golf-agent/internal/golf"
	"github.com/fairway-labs/golf-agent/internal/jobs"
	"github.com/fairway-labs/golf-agent/internal/logger"
	"github.com/fairway-labs/golf-agent/internal/providers"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.Init(cfg.LogLevel, cfg.IsDevelopment())
	log.WithFields(logrus.Fields{
		"version":     version,
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("Starting golf agent")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Usage tracker is an optional collaborator; when disabled the analytics
	// entrypoints degrade to empty results.
	var tracker *billing.Tracker
	if cfg.UsageTrackingEnabled {
		var redisClient *redis.Client
		if cfg.RedisURL != "" {
			opt, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				log.Fatalf("Failed to parse Redis URL: %v", err)
			}
			redisClient = redis.NewClient(opt)
			if err := redisClient.Ping(context.Background()).Err(); err != nil {
				log.WithError(err).Warn("Redis unreachable, tracking charges in memory only")
				redisClient = nil
			} else {
				defer redisClient.Close()
			}
		}
		tracker = billing.NewTracker(redisClient, log)
	} else {
		log.Info("Usage tracking disabled")
	}

	upstream := providers.NewGolfClient(
		cfg.UpstreamBaseURL,
		cfg.UpstreamTimeout,
		cfg.CircuitBreakerThreshold,
		cfg.CircuitBreakerCooldown,
		log,
	)
	golfService := golf.NewService(upstream, log)

	app := agent.New(
		cfg.AgentName,
		"Live golf tournament data: leaderboards, scorecards, and schedules for the PGA and LPGA tours",
		version,
		cfg.AgentBaseURL,
		tracker,
		log,
	)

	entrypointHandler := handlers.NewEntrypointHandler(golfService, tracker, log)
	handlers.RegisterEntrypoints(app, entrypointHandler)

	metaHandler := handlers.NewMetaHandler(app.Descriptor(), cfg.IconPath, upstream, log)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	app.Bind(router)
	router.GET("/.well-known/agent.json", metaHandler.GetDiscovery)
	router.GET("/icon.png", metaHandler.GetIcon)
	router.GET("/health", metaHandler.GetHealth)
	router.HEAD("/health", metaHandler.GetHealth)

	revenueJob := jobs.NewRevenueSummaryJob(tracker, log)
	revenueJob.Start()
	defer revenueJob.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Golf agent started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down golf agent...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Golf agent forced to shutdown: %v", err)
	}

	log.Info("Golf agent exited")
}
