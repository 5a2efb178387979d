package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kinetix-inc/kinetix/internal/infrastructure/ratelimit"
	sharedConfig "github.com/kinetix-inc/kinetix/internal/shared/config"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
	"github.com/kinetix-inc/kinetix/internal/shared/utils"
)

// RateLimit enforces the per-IP API rate limit using the Redis sliding
// window limiter. When Redis is unavailable requests pass through, so a
// cache outage never takes the API down with it.
func RateLimit(limiter ratelimit.RateLimiter, cfg sharedConfig.RateLimitConfig, log logger.Interface) gin.HandlerFunc {
	limits := ratelimit.RateLimitConfig{
		RequestsPerMinute: cfg.RequestsPerMinute,
		RequestsPerHour:   cfg.RequestsPerHour,
		RequestsPerDay:    cfg.RequestsPerDay,
	}

	return func(c *gin.Context) {
		key := fmt.Sprintf("ip:%s", c.ClientIP())

		allowed, err := limiter.Allow(key, limits)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
