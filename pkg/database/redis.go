package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when addr is empty or Redis does not answer;
// callers treat a nil client as "caching and rate limiting disabled".
func ConnectRedis(addr, password string, db int) *redis.Client {
	if addr == "" {
		log.Println("REDIS_ADDR not set, caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Printf("Warning: failed to connect to Redis at %s: %v. Caching disabled.", addr, err)
		client.Close()
		return nil
	}
	log.Println("Redis connected:", pong)
	return client
}
