package config

import (
	"context"
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"

	"hava-checkout/internal/common/enum"
	database "hava-checkout/internal/pkg/db"
	"hava-checkout/internal/pkg/rabbitmq"
	"hava-checkout/internal/pkg/redis"
	s3aws "hava-checkout/internal/pkg/storage/s3"

	"github.com/panjf2000/ants/v2"
)

// Config holds all application configuration loaded from environment variables
type Config struct {
	AppEnv          enum.EnvEnum           `env:"APP_ENV" envDefault:"development"`
	AppPort         int                    `env:"APP_PORT" envDefault:"8080"`
	AllowOrigin     string                 `env:"ALLOW_ORIGIN" envDefault:""`
	Timezone        string                 `env:"TIMEZONE" envDefault:"Asia/Manila"`
	MessengerPageID string                 `env:"MESSENGER_PAGE_ID" envDefault:"CafeHavaJava"`
	HandoffDriver   enum.HandoffDriverEnum `env:"HANDOFF_DRIVER" envDefault:"link"`
	SessionTTLMin   int                    `env:"SESSION_TTL_MINUTES" envDefault:"120"`
	WorkerPoolSize  int                    `env:"WORKER_POOL_SIZE" envDefault:"100"`
	RedisEnabled    bool                   `env:"REDIS_ENABLED" envDefault:"true"`
	RedisHost       string                 `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort       int                    `env:"REDIS_PORT" envDefault:"6379"`
	RedisUser       string                 `env:"REDIS_USER" envDefault:"default"`
	RedisPass       string                 `env:"REDIS_PASS" envDefault:""`
	RedisPoolSize   int                    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RabbitEnabled   bool                   `env:"RABBIT_ENABLED" envDefault:"false"`
	RabbitHost      string                 `env:"RABBIT_HOST" envDefault:"localhost"`
	RabbitPort      int                    `env:"RABBIT_PORT" envDefault:"5672"`
	RabbitUser      string                 `env:"RABBIT_USER" envDefault:"guest"`
	RabbitPass      string                 `env:"RABBIT_PASS" envDefault:"guest"`
	DBEnabled       bool                   `env:"DB_ENABLED" envDefault:"true"`
	DBDriver        database.DriverEnum    `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost          string                 `env:"DB_HOST" envDefault:"localhost"`
	DBPort          int                    `env:"DB_PORT" envDefault:"5432"`
	DBUser          string                 `env:"DB_USER" envDefault:"postgres"`
	DBPass          string                 `env:"DB_PASS" envDefault:""`
	DBName          string                 `env:"DB_NAME" envDefault:"postgres"`
	DBSSLMode       string                 `env:"DB_SSL_MODE" envDefault:"disable"`
	DBCacheSeconds  int                    `env:"DB_CACHE_SECONDS" envDefault:"60"`
	AWSAccessKeyID  string                 `env:"AWS_ACCESS_KEY_ID" envDefault:""`
	AWSSecretKey    string                 `env:"AWS_SECRET_ACCESS_KEY" envDefault:""`
	AWSRegion       string                 `env:"AWS_REGION" envDefault:"ap-southeast-1"`
	AWSBucketName   string                 `env:"AWS_BUCKET_NAME" envDefault:""`
}

// Validate checks enum-typed and range-limited values.
func (c *Config) Validate() error {
	if !c.AppEnv.IsValid() {
		return fmt.Errorf("invalid APP_ENV %q", c.AppEnv)
	}
	if !c.HandoffDriver.IsValid() {
		return fmt.Errorf("invalid HANDOFF_DRIVER %q", c.HandoffDriver)
	}
	if !c.DBDriver.IsValid() {
		return fmt.Errorf("invalid DB_DRIVER %q", c.DBDriver)
	}
	if c.SessionTTLMin <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive, got %d", c.SessionTTLMin)
	}
	if c.WorkerPoolSize <= 0 {
		return fmt.Errorf("WORKER_POOL_SIZE must be positive, got %d", c.WorkerPoolSize)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves TIMEZONE, the zone the session date is taken in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMin) * time.Minute
}

func (c *Config) DBCacheTime() time.Duration {
	return time.Duration(c.DBCacheSeconds) * time.Second
}

// SetupServerDto contains dependencies for server setup
type SetupServerDto struct {
	Ctx       *context.Context
	Cancel    context.CancelFunc
	Wg        *sync.WaitGroup
	Env       *Config
	Db        *database.Database
	Rds       *redis.Client
	Rb        *rabbitmq.ConnectionManager
	Publisher *rabbitmq.Publisher
	S3        *s3aws.S3Client
	Pool      *ants.Pool
}
