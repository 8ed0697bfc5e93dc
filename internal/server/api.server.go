package serverApp

import (
	"context"
	"net/http"
	"sync"
	"time"

	"hava-checkout/internal/common/enum"
	database "hava-checkout/internal/pkg/db"
	"hava-checkout/internal/pkg/logger"
	"hava-checkout/internal/pkg/messenger"
	"hava-checkout/internal/pkg/middleware"
	"hava-checkout/internal/pkg/rabbitmq"
	"hava-checkout/internal/pkg/redis"
	s3aws "hava-checkout/internal/pkg/storage/s3"
	"hava-checkout/internal/repository"
	paymentRepo "hava-checkout/internal/repository/payment"
	sessionRepo "hava-checkout/internal/repository/session"

	checkoutHandler "hava-checkout/internal/handler/checkout"
	checkoutService "hava-checkout/internal/service/checkout"
	paymentService "hava-checkout/internal/service/payment"

	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
)

// Deps carries the optional backends the API is wired against. Any of
// them may be nil; the server falls back to in-process alternatives.
type Deps struct {
	DB        *database.Database
	Redis     redis.IRedis
	Rabbit    *rabbitmq.ConnectionManager
	Publisher *rabbitmq.Publisher
	S3        s3aws.Is3
	Pool      *ants.Pool
}

type Options struct {
	PageID        string
	Location      *time.Location
	SessionTTL    time.Duration
	HandoffDriver enum.HandoffDriverEnum
	AllowOrigins  []string
}

// Setup initializes the HTTP server with middleware and routes
func Setup(engine *gin.Engine, ctx context.Context, wg *sync.WaitGroup, deps Deps, opts Options) {
	InitMiddleware(engine, opts.AllowOrigins)

	engine.GET("/health", func(c *gin.Context) {
		rabbitmqHealth := "unavailable"
		redisHealth := "unavailable"
		databaseHealth := "unavailable"

		if deps.DB != nil {
			databaseHealth = "unhealthy"
			if !deps.DB.IsCloseConnection() {
				databaseHealth = "healthy"
			}
		}
		if deps.Rabbit != nil {
			rabbitmqHealth = "unhealthy"
			if !deps.Rabbit.IsClosed() {
				rabbitmqHealth = "healthy"
			}
		}
		if deps.Redis != nil {
			redisHealth = "unhealthy"
			if deps.Redis.Ping() == nil {
				redisHealth = "healthy"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status": http.StatusOK,
			"service": gin.H{
				"rabbitmq": gin.H{"status": rabbitmqHealth},
				"redis":    gin.H{"status": redisHealth},
				"database": gin.H{"status": databaseHealth},
			},
		})
	})

	e := engine.Group(BasePath())
	InitRoutes(e, ctx, wg, deps, opts)
}

// BasePath returns the base API path
func BasePath() string {
	return "/api"
}

// InitMiddleware initializes global middleware
func InitMiddleware(e *gin.Engine, allowOrigins []string) {
	e.Use(middleware.CorsMiddleware(allowOrigins...))
	e.Use(middleware.RequestInit())
	e.Use(middleware.ResponseInit())
}

func InitRoutes(e *gin.RouterGroup, ctx context.Context, wg *sync.WaitGroup, deps Deps, opts Options) {
	// setup repo
	rp := repository.IRepository{
		Session: newSessionRepo(deps.Redis, opts.SessionTTL),
	}
	if deps.DB != nil {
		rp.Payment = paymentRepo.NewRepo(deps.DB)
	} else {
		logger.Warning.Println("No database configured, payment methods will be unavailable")
	}

	// === Payment methods ===
	PaymentService := paymentService.NewService(ctx, rp, deps.S3, deps.Pool)
	if rp.Payment != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-PaymentService.Refresh()
		}()
	}

	// === Checkout ===
	CheckoutService := checkoutService.NewService(ctx, rp, PaymentService, newOpener(deps.Publisher, opts.HandoffDriver), checkoutService.Config{
		PageID:   opts.PageID,
		Location: opts.Location,
	})
	CheckoutHandler := checkoutHandler.NewHandler(ctx, CheckoutService)
	CheckoutHandler.NewRoutes(e)
}

func newSessionRepo(rds redis.IRedis, ttl time.Duration) sessionRepo.IRepository {
	if rds != nil {
		logger.Info.Printf("Checkout sessions stored in Redis (ttl %s)", ttl)
		return sessionRepo.NewRepo(rds, ttl)
	}
	logger.Warning.Printf("Redis unavailable, checkout sessions kept in memory (ttl %s)", ttl)
	return sessionRepo.NewMemoryRepo(ttl)
}

func newOpener(publisher *rabbitmq.Publisher, driver enum.HandoffDriverEnum) messenger.Opener {
	if driver == enum.HANDOFF_QUEUE {
		if publisher != nil {
			return messenger.NewQueueOpener(publisher, messenger.HandoffQueue)
		}
		logger.Warning.Println("HANDOFF_DRIVER=queue but RabbitMQ is unavailable, falling back to link hand-off")
	}
	return messenger.LinkOpener{}
}
