package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-backend/api"
	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/services"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.With().Timestamp().Logger()

	c := config.New()
	if err := config.Validate(c, "DATABASE_URL", "JWT_SECRET"); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	gormLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  config.GetString(c, "DATABASE_URL", ""),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("error migrating database schema")
	}

	currentDB := database.New(db)

	responseCache := newResponseCache(c)

	uploader := newUploader(c)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, responseCache, uploader)
	if err != nil {
		log.Fatal().Err(err).Msg("error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// newResponseCache connects to Redis when REDIS_ADDR is set, otherwise a
// process-local cache is used.
func newResponseCache(c map[string]string) cache.Cache {
	addr := config.GetString(c, "REDIS_ADDR", "")
	if addr == "" {
		log.Info().Msg("REDIS_ADDR not set, using in-memory response cache")
		return cache.NewMemory()
	}

	redisCache, err := cache.NewRedis(addr,
		config.GetString(c, "REDIS_PASSWORD", ""),
		config.GetInt(c, "REDIS_DB", 0),
	)
	if err != nil {
		// The cache is fail-open; a dead Redis should not keep the site down.
		log.Warn().Err(err).Msg("redis unavailable, falling back to in-memory cache")
		return cache.NewMemory()
	}

	log.Info().Str("addr", addr).Msg("connected to redis")
	return redisCache
}

// newUploader configures presigned S3 uploads when a bucket is set. Without
// one, media upload-url requests report the feature as unavailable.
func newUploader(c map[string]string) *services.S3Uploader {
	bucket := config.GetString(c, "MEDIA_BUCKET", "")
	if bucket == "" {
		log.Info().Msg("MEDIA_BUCKET not set, media uploads disabled")
		return nil
	}

	uploader, err := services.NewS3Uploader(context.Background(), bucket, config.GetString(c, "AWS_REGION", "us-east-1"))
	if err != nil {
		log.Warn().Err(err).Msg("could not configure media uploads")
		return nil
	}
	return uploader
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
