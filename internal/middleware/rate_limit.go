package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"scanpay_back_end/internal/cache"
)

const (
	LookupWindow    = 1 * time.Minute
	LoginMaxPerIP   = 20
	LoginWindow     = 5 * time.Minute
	ScannerMaxPerIP = 600
)

// RateLimit allows max requests per window for the key derived from the request.
// Redis failures let the request through.
func RateLimit(rdb *redis.Client, prefix string, max int, window time.Duration, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if max <= 0 {
			c.Next()
			return
		}
		key := prefix + ":" + keyFn(c)
		count, err := cache.IncrementRateLimit(c.Request.Context(), rdb, key, window)
		if err != nil {
			log.Printf("⚠️ rate limit %s unavailable: %v", prefix, err)
			c.Next()
			return
		}

		remaining := int64(max) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", max))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if count > int64(max) {
			ttl := cache.RateLimitTTL(c.Request.Context(), rdb, key)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Please try again shortly",
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func byIP(c *gin.Context) string { return c.ClientIP() }

// LookupRateLimit limits product lookups per client IP.
func LookupRateLimit(rdb *redis.Client, perMinute int) gin.HandlerFunc {
	return RateLimit(rdb, "lookup_requests", perMinute, LookupWindow, byIP)
}

// LoginRateLimit limits demo logins per client IP.
func LoginRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return RateLimit(rdb, "login_attempts", LoginMaxPerIP, LoginWindow, byIP)
}

// ScannerRateLimit caps decode pushes per session.
func ScannerRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return RateLimit(rdb, "scanner_events", ScannerMaxPerIP, time.Minute, func(c *gin.Context) string {
		if id := c.GetString("session_id"); id != "" {
			return id
		}
		return c.ClientIP()
	})
}
