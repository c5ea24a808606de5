package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit allows one request per window per client IP for the given
// action. A nil client disables limiting; redis errors fail open so a
// cache outage never takes the form endpoints down.
func RateLimit(rdb *redis.Client, action string, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}

		key := fmt.Sprintf("rate_limit:ip:%s:%s", ip, action)
		wasSet, err := rdb.SetNX(c.Request.Context(), key, "locked", window).Result()
		if err != nil {
			log.Printf("failed to check rate limit in redis: %v", err)
			c.Next()
			return
		}

		if !wasSet {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
