package cart

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Channel is the Redis pub/sub channel carrying change notices for a session's cart.
func Channel(sessionID string) string {
	return "cart:" + sessionID
}

// RedisNotifier forwards cart events to Redis so any connected observer can refresh.
type RedisNotifier struct {
	rdb *redis.Client
}

func NewRedisNotifier(rdb *redis.Client) *RedisNotifier {
	return &RedisNotifier{rdb: rdb}
}

// Attach subscribes the notifier to store and returns the unsubscribe func.
func (n *RedisNotifier) Attach(sessionID string, store *Store) func() {
	return store.Subscribe(func(ev Event) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := n.rdb.Publish(ctx, Channel(sessionID), ev.Type).Err(); err != nil {
			log.Printf("⚠️ cart publish failed for %s: %v", sessionID, err)
		}
	})
}
