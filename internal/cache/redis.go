package cache

import (
	"github.com/redis/go-redis/v9"
)

// NewRedis creates a Redis client, or returns nil when no address is
// configured. Callers treat a nil client as "cache disabled".
func NewRedis(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}
