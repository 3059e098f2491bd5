package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"projects_backend/internal/shared/response"
)

// MsgTooManyRequests is returned with 429.
const MsgTooManyRequests = "Too many requests"

// NewIPRateLimiter returns middleware that limits requests per client IP.
// rateFormatted uses the limiter format ("10-M" = 10/min). Empty disables limiting.
// With a non-nil rdb the counters are shared through Redis; otherwise they live in memory.
func NewIPRateLimiter(rateFormatted, prefix string, rdb *redis.Client) (gin.HandlerFunc, error) {
	if rateFormatted == "" {
		return noop, nil
	}
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", rateFormatted, err)
	}

	opts := limiter.StoreOptions{Prefix: prefix}
	var store limiter.Store
	if rdb != nil {
		store, err = sredis.NewStoreWithOptions(rdb, opts)
		if err != nil {
			return nil, fmt.Errorf("create redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(opts)
	}

	return mgin.NewMiddleware(limiter.New(store, rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			slog.Warn("rate limit reached", "prefix", prefix, "remote_addr", c.ClientIP())
			c.JSON(http.StatusTooManyRequests, response.ErrorResponse{Error: MsgTooManyRequests})
		}),
		// Limiter store failures fail open.
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			slog.Error("rate limiter store failed", "prefix", prefix, "error", err)
			c.Next()
		}),
	), nil
}

func noop(c *gin.Context) {
	c.Next()
}
