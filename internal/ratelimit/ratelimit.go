package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lbliii/milodocs/internal/errors"
	"github.com/lbliii/milodocs/internal/logger"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const storePrefix = "milodocs_limiter"

// per client IP request limiter
type Limiter struct {
	limiter *limiter.Limiter
	redis   *redis.Client // nil for the in-memory store
}

// creates a limiter for a rate such as "30-M". an empty redisURL keeps
// counters in memory.
func New(ctx context.Context, rate, redisURL string) (*Limiter, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rate, err)
	}

	if redisURL == "" {
		logger.Info("rate limiter using memory store", "rate", rate)

		return &Limiter{limiter: limiter.New(memory.NewStore(), parsed)}, nil
	}

	client, err := connectRedis(ctx, redisURL)
	if err != nil {
		return nil, err
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: storePrefix})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to create redis store: %w", err)
	}

	logger.Info("rate limiter using redis store", "rate", rate)

	return &Limiter{limiter: limiter.New(store, parsed), redis: client}, nil
}

func connectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("connected to redis")

	return client, nil
}

// returns a gin middleware answering 429 once a client exceeds the rate
func (l *Limiter) Middleware() gin.HandlerFunc {
	return mgin.NewMiddleware(l.limiter,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			logger.Warn("rate limit reached", "ip", c.ClientIP(), "path", c.Request.URL.Path)
			errors.TooManyRequests(c, "rate limit exceeded, try again later")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			errors.InternalError(c, "rate limiter unavailable", err)
		}),
	)
}

// closes the redis connection if one is open
func (l *Limiter) Close() error {
	if l.redis == nil {
		return nil
	}

	return l.redis.Close()
}
