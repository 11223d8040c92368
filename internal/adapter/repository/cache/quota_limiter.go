package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/redis/go-redis/v9"
)

// counter is the subset of redis.Cmdable the limiter needs.
type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// QuotaLimiter is a fixed-window per-user counter kept in Redis.
type QuotaLimiter struct {
	client counter
	limit  int64
	window time.Duration
	now    func() time.Time
}

var _ domain.QuotaLimiter = (*QuotaLimiter)(nil)

// NewRedisClient connects and pings.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// NewQuotaLimiter allows limit calls per user and bucket in each minute.
func NewQuotaLimiter(client counter, limit int) *QuotaLimiter {
	return &QuotaLimiter{client: client, limit: int64(limit), window: time.Minute, now: time.Now}
}

func (q *QuotaLimiter) key(userID, bucket string) string {
	slot := q.now().Unix() / int64(q.window/time.Second)
	return fmt.Sprintf("quota:%s:%s:%d", bucket, userID, slot)
}

func (q *QuotaLimiter) Allow(ctx context.Context, userID, bucket string) (bool, error) {
	if q.limit <= 0 {
		return true, nil
	}
	key := q.key(userID, bucket)
	n, err := q.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", key, err)
	}
	if n == 1 {
		if err := q.client.Expire(ctx, key, 2*q.window).Err(); err != nil {
			return false, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return n <= q.limit, nil
}
