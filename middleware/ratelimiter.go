package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/dvo/event-booking-backend/config"
)

// RateLimiter limits requests per client IP. The counters live in
// redis so every instance shares them; with no redis client the
// limiter falls back to an in-memory store.
func RateLimiter(cfg *config.Config, rdb *goredis.Client) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  cfg.RateLimitPerMinute,
	}

	var store limiter.Store
	if rdb != nil {
		s, err := sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{
			Prefix: "event-booking:ratelimit",
		})
		if err != nil {
			log.Printf("rate limiter: redis store unavailable, using memory store: %v", err)
			store = memory.NewStore()
		} else {
			store = s
		}
	} else {
		store = memory.NewStore()
	}

	return ginlimiter.NewMiddleware(limiter.New(store, rate))
}
