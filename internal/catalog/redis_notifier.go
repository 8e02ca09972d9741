package catalog

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "table_changes:"

// RedisNotifier subscribes to table-change messages published on redis
// pub/sub, one channel per table.
type RedisNotifier struct {
	rdb *redis.Client
}

func NewRedisNotifier(rdb *redis.Client) *RedisNotifier {
	return &RedisNotifier{rdb: rdb}
}

func (n *RedisNotifier) Subscribe(ctx context.Context, table string) (<-chan struct{}, error) {
	sub := n.rdb.Subscribe(ctx, channelPrefix+table)

	// Force the SUBSCRIBE round trip so a dead broker surfaces here.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer sub.Close()
		defer close(ch)

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				// Coalesce bursts: one pending tick is enough.
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()

	return ch, nil
}
