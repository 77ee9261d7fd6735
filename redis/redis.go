package redis

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

const refreshKeyPrefix = "refresh:"

// local backs refresh tracking when no Redis is configured. Revocation then
// only holds within one process, which is fine for dev setups.
var local = struct {
	sync.Mutex
	jtis map[string]time.Time
}{jtis: make(map[string]time.Time)}

// TrackRefreshToken records an issued refresh token id so it can be revoked
// later.
func TrackRefreshToken(jti string, accountID uint, ttl time.Duration) error {
	if Client == nil {
		local.Lock()
		defer local.Unlock()
		local.jtis[jti] = time.Now().Add(ttl)
		return nil
	}
	return Client.Set(Ctx, refreshKeyPrefix+jti, accountID, ttl).Err()
}

// RefreshTokenValid reports whether a refresh token id is still accepted.
func RefreshTokenValid(jti string) bool {
	if Client == nil {
		local.Lock()
		defer local.Unlock()
		exp, ok := local.jtis[jti]
		return ok && time.Now().Before(exp)
	}
	n, err := Client.Exists(Ctx, refreshKeyPrefix+jti).Result()
	return err == nil && n > 0
}

// RevokeRefreshToken drops a refresh token id; subsequent refresh attempts
// with it fail.
func RevokeRefreshToken(jti string) error {
	if Client == nil {
		local.Lock()
		defer local.Unlock()
		delete(local.jtis, jti)
		return nil
	}
	return Client.Del(Ctx, refreshKeyPrefix+jti).Err()
}
