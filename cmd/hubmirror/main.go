// hubmirror serves a local, hub-API-compatible replica of the Hugging
// Face Hub catalog. It syncs model and dataset records plus the tag
// vocabularies into Postgres and answers the same REST paths as
// huggingface.co, so the hub client SDK and the hfhub CLI work against
// it unchanged via --endpoint.
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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/muellerzr/huggingface-hub/hub"
	"github.com/muellerzr/huggingface-hub/internal/config"
	"github.com/muellerzr/huggingface-hub/internal/middleware"
	"github.com/muellerzr/huggingface-hub/internal/mirror"
	"github.com/muellerzr/huggingface-hub/internal/mirror/httpapi"
	"github.com/muellerzr/huggingface-hub/internal/mirror/postgres"
	"github.com/muellerzr/huggingface-hub/internal/mirror/rediscache"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Create database pool
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("parse db config: %v", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("create db pool: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	log.Info("database connection established")

	store := postgres.NewStore(pool)
	if err := store.Init(context.Background()); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	// Redis cache (optional - based on config)
	var cache mirror.Cache
	if cfg.Redis.Enabled {
		c, err := rediscache.New(&cfg.Redis)
		if err != nil {
			log.Warnf("redis init failed (continuing uncached): %v", err)
		} else {
			cache = c
			log.Info("redis cache initialized")
		}
	} else {
		log.Info("redis cache disabled")
	}

	// Upstream hub client; token comes from the standard environment.
	upstream := hub.NewClient(
		hub.WithEndpoint(cfg.Upstream.URL),
		hub.WithHTTPClient(&http.Client{Timeout: cfg.Upstream.Timeout}),
	)

	svc := mirror.NewService(store, cache, upstream, cfg.Sync.Limit)

	// Scheduled sync (optional - based on config); manual syncs via the
	// API stay available either way.
	var scheduler *cron.Cron
	if cfg.Sync.Cron != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Sync.Cron, func() {
			state, err := svc.Sync(context.Background())
			if err != nil {
				log.WithError(err).Error("scheduled sync failed")
				return
			}
			log.WithFields(log.Fields{
				"models":   state.Models,
				"datasets": state.Datasets,
				"tags":     state.Tags,
			}).Info("scheduled sync completed")
		})
		if err != nil {
			log.Fatalf("invalid sync schedule %q: %v", cfg.Sync.Cron, err)
		}
		scheduler.Start()
		log.Infof("sync scheduled: %s", cfg.Sync.Cron)
	} else {
		log.Info("scheduled sync disabled")
	}

	h := httpapi.New(svc, cache)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api")
	h.RegisterRoutes(api)

	// Health check with DB ping
	router.GET("/healthz", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	if scheduler != nil {
		// Waits for an in-flight scheduled sync to finish.
		<-scheduler.Stop().Done()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
