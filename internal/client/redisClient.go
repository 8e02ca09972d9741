package client

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedisClient builds the pub/sub client for catalog change
// notifications. An unreachable broker is not fatal: the catalog watcher
// degrades to an empty catalog.
func InitRedisClient(addr string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Println("redis unreachable, catalog updates disabled:", err)
	}

	return rdb
}
