package realtime

import (
	"github.com/redis/go-redis/v9"
)

// NewRedis returns nil when addr is empty; the broker then stays in-process.
func NewRedis(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
