package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimiter counts requests per client IP in fixed windows. Without a
// Redis client, or when Redis fails, requests pass through.
func RateLimiter(rdb *redis.Client, prefix string, limit int64, period time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil {
			return c.Next()
		}

		key := "rate_limit:" + prefix + ":" + c.IP()
		ctx := c.UserContext()

		// INCR creates the key at 1 on first use
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("rate limit: %v", err)
			return c.Next()
		}
		if count == 1 {
			// a key left without TTL would lock the client out for good
			if err := rdb.Expire(ctx, key, period).Err(); err != nil {
				log.Printf("rate limit: expire %s: %v", key, err)
				if err := rdb.Del(ctx, key).Err(); err != nil {
					log.Printf("rate limit: del %s: %v", key, err)
				}
			}
		}

		if count > limit {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests"})
		}
		return c.Next()
	}
}
