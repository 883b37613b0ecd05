package cache

import (
	"context"
	"fmt"
	"log"

	"career_advisor/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// RDB is nil when Redis is unreachable. Redis only holds regenerable
// derived data, so consumers treat a nil client as "caching disabled"
// rather than an error.
var RDB *redis.Client

func ConnectRedis() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("Could not connect to Redis, continuing without cache: %v", err)
		client.Close()
		RDB = nil
		return
	}
	RDB = client
	fmt.Println("Successfully connected to Redis!")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		fmt.Println("Redis connection closed.")
	}
}
