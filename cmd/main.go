package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/pastaria/backend/config"
	"github.com/pastaria/backend/internal/application"
	"github.com/pastaria/backend/internal/container"
	"github.com/pastaria/backend/internal/infrastructure/mongodb"
	"github.com/pastaria/backend/internal/interface/middleware"
	"github.com/pastaria/backend/internal/router"
	"github.com/pastaria/backend/pkg/helpers"
	"github.com/pastaria/backend/pkg/response"
	"github.com/pastaria/backend/pkg/validation"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	validation.Init()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnectTimeout)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoConnectTimeout, cfg.MongoMaxPoolSize)
	if err != nil {
		logger.WithError(err).Fatal("mongodb connect failed")
	}
	db := client.Database(cfg.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logger.WithError(err).Fatal("ensure indexes failed")
	}

	container.Set(container.KeyConfig, cfg)
	container.Set(container.KeyLogger, logger)
	container.Set(container.KeyMongo, client)
	container.Set(container.KeyDatabase, db)
	container.Set(container.KeyTokens, helpers.NewTokenIssuer(cfg.JWTSecret, cfg.LoginTTL, cfg.RefreshTTL))
	container.Set(container.KeyUserLocks, application.NewKeyedMutex())

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("redis unavailable, rate limiting disabled")
	} else {
		container.Set(container.KeyRedis, rdb)
	}

	if cfg.GCSBucket != "" {
		gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("gcs unavailable, image upload disabled")
		} else {
			container.Set(container.KeyGCS, gcs)
		}
	}

	if es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass); err != nil {
		logger.WithError(err).Warn("elasticsearch unavailable, search disabled")
	} else {
		container.Set(container.KeyES, es)
	}

	if pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue); err != nil {
		logger.WithError(err).Warn("rabbitmq unavailable, mail jobs disabled")
	} else {
		container.Set(container.KeyRabbit, pub)
		defer pub.Close()
	}

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestID())
	if cfg.HTTPLogEnabled {
		engine.Use(middleware.RequestLogger(logger))
	}
	engine.Use(cors.New(corsConfig(cfg)))
	engine.GET("/healthz", func(c *gin.Context) {
		response.OKMessage(c, "ok")
	})

	router.Setup().Apply(engine)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
	_ = client.Disconnect(shutdownCtx)
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		c.AllowOrigins = origins
	} else {
		c.AllowAllOrigins = true
	}
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	c.AllowCredentials = !c.AllowAllOrigins
	return c
}
