package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	config "hava-checkout/configs"
	database "hava-checkout/internal/pkg/db"
	"hava-checkout/internal/pkg/helper"
	"hava-checkout/internal/pkg/logger"
	"hava-checkout/internal/pkg/rabbitmq"
	"hava-checkout/internal/pkg/redis"
	s3aws "hava-checkout/internal/pkg/storage/s3"
	"hava-checkout/internal/pkg/validation"
	serverApp "hava-checkout/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	logger.Setup()

	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	// Every backend is optional: the checkout flow runs on in-memory
	// sessions and link hand-off when they are missing.
	var redisClient *redis.Client
	if env.RedisEnabled {
		redisClient, err = setupRedis(ctx, env)
		if err != nil {
			logger.Warning.Println("Redis unavailable, continuing without it:", err)
		}
	}

	var rabbit *rabbitmq.ConnectionManager
	var publisher *rabbitmq.Publisher
	if env.RabbitEnabled {
		rabbit, err = setupRabbitMQ(ctx, env)
		if err != nil {
			logger.Warning.Println("RabbitMQ unavailable, continuing without it:", err)
		} else if publisher, err = rabbitmq.NewPublisher(ctx, rabbit); err != nil {
			logger.Warning.Println("RabbitMQ publisher unavailable:", err)
		}
	}

	var db *database.Database
	if env.DBEnabled {
		db, err = setupDB(env, redisClient)
		if err != nil {
			logger.Warning.Println("Database unavailable, payment methods will fail to load:", err)
		}
	}

	var s3 *s3aws.S3Client
	if env.AWSBucketName != "" {
		s3, err = setupS3(env, redisClient)
		if err != nil {
			logger.Warning.Println("S3 unavailable, QR codes will not be presigned:", err)
		}
	}

	pool, err := serverApp.NewPool(env.WorkerPoolSize)
	if err != nil {
		logger.Error.Println("Error creating worker pool", err)
		cancel()
		panic(err)
	}

	setupServer(&config.SetupServerDto{
		Rds:       redisClient,
		Env:       env,
		Ctx:       &ctx,
		Cancel:    cancel,
		Db:        db,
		Wg:        &wg,
		Rb:        rabbit,
		Publisher: publisher,
		S3:        s3,
		Pool:      pool,
	})
}

func setupRedis(ctx context.Context, env *config.Config) (*redis.Client, error) {
	return redis.Setup(ctx, &redis.Config{
		Host:     env.RedisHost,
		Username: env.RedisUser,
		Port:     env.RedisPort,
		Password: env.RedisPass,
		PoolSize: env.RedisPoolSize,
	})
}

func setupRabbitMQ(ctx context.Context, env *config.Config) (*rabbitmq.ConnectionManager, error) {
	return rabbitmq.NewConnectionManager(ctx, &rabbitmq.Config{
		Username: env.RabbitUser,
		Password: env.RabbitPass,
		Host:     env.RabbitHost,
		Port:     env.RabbitPort,
	})
}

func setupDB(env *config.Config, rds *redis.Client) (*database.Database, error) {
	return database.Setup(&database.Config{
		Host:      env.DBHost,
		Port:      env.DBPort,
		User:      env.DBUser,
		Password:  env.DBPass,
		Database:  env.DBName,
		SSLMode:   env.DBSSLMode,
		Driver:    env.DBDriver,
		Cache:     env.DBCacheSeconds > 0,
		Rds:       rds,
		CacheTime: env.DBCacheTime(),
	})
}

func setupS3(env *config.Config, rds *redis.Client) (*s3aws.S3Client, error) {
	var cache redis.IRedis
	if rds != nil {
		cache = rds
	}
	return s3aws.NewS3Client(s3aws.S3Config{
		AWSRegion:          env.AWSRegion,
		AWSAccessKeyID:     env.AWSAccessKeyID,
		AWSSecretAccessKey: env.AWSSecretKey,
		BucketName:         env.AWSBucketName,
	}, cache)
}

func setupServer(payload *config.SetupServerDto) {
	rds := payload.Rds
	env := payload.Env
	ctx := payload.Ctx
	cancel := payload.Cancel
	wg := payload.Wg
	rb := payload.Rb
	db := payload.Db
	pool := payload.Pool

	defer func() {
		if rds != nil {
			_ = rds.Close()
		}
		if payload.Publisher != nil {
			_ = payload.Publisher.Close()
		}
		if rb != nil {
			_ = rb.Close()
		}
		if db != nil {
			_ = db.Close()
		}
		cancel()
		wg.Wait()
		pool.Release()
	}()

	err := validation.Setup()
	if err != nil {
		logger.Error.Println("Failed to setup validation")
		panic(err)
	}

	loc, err := env.Location()
	if err != nil {
		panic(err)
	}

	if env.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	e := gin.Default()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", env.AppPort),
		Handler: e,
	}

	deps := serverApp.Deps{
		DB:        db,
		Rabbit:    rb,
		Publisher: payload.Publisher,
		Pool:      pool,
	}
	if rds != nil {
		deps.Redis = rds
	}
	if payload.S3 != nil {
		deps.S3 = payload.S3
	}

	origins := helper.ParseCommaSeperatedString(env.AllowOrigin)

	serverApp.Setup(e, *ctx, wg, deps, serverApp.Options{
		PageID:        env.MessengerPageID,
		Location:      loc,
		SessionTTL:    env.SessionTTL(),
		HandoffDriver: env.HandoffDriver,
		AllowOrigins:  origins,
	})

	if rb != nil {
		stop, err := serverApp.InitWorker(*ctx, rb, pool)
		if err != nil {
			logger.Error.Println("Failed to start workers:", err)
		} else {
			defer stop()
		}
	}

	go func() {
		logger.HTTP.Println("========= Server Started =========")
		logger.HTTP.Println("=========", env.AppPort, "=========")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error.Println("Server error:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	logger.HTTP.Println("========= Server Shutting Down =========")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
}
