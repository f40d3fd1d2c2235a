package config

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var (
	// RedisClient backs the per-IP rate limiter on the storefront group.
	// The catalog reads themselves never touch Redis.
	RedisClient *redis.Client

	Ctx = context.Background()
)

func ConnectRedis() {
	redisURL := getEnv("REDIS_URL", "redis://localhost:6379/0")

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("❌ Invalid REDIS_URL: %v", err)
	}
	// the limiter issues a handful of tiny commands per request; a small
	// pool is plenty
	opt.PoolSize = 10
	opt.MinIdleConns = 2

	RedisClient = redis.NewClient(opt)

	ctx, cancel := WithTimeout()
	defer cancel()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Redis ping failed: %v", err)
	}
	log.Println("✅ Redis connected (rate limiter store)")
}
