package attempt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gatekeeper/internal/core/domain/attempt"
	c "gatekeeper/internal/core/domain/common"
	e "gatekeeper/internal/core/domain/errors"

	"github.com/go-redis/redis/v9"
)

const keyPrefix = "attempt"

// RedisRepository stores in-flight verification attempts. Redeem is backed by
// GETDEL, so concurrent callbacks for the same attempt race for a single
// winner. The ttl bounds how long an unredeemed attempt stays pending.
type RedisRepository struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedisRepository(redisClient *redis.Client, ttl time.Duration) *RedisRepository {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	return &RedisRepository{redisClient: redisClient, ttl: ttl}
}

func (r *RedisRepository) Create(ctx context.Context, a attempt.Attempt) error {
	encoded, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return r.redisClient.Set(ctx, key(a.ID), encoded, r.ttl).Err()
}

func (r *RedisRepository) Redeem(ctx context.Context, id attempt.ID) (c.Optional[attempt.Attempt], error) {
	encoded, err := r.redisClient.GetDel(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return c.Optional[attempt.Attempt]{}, nil
	}
	if err != nil {
		return c.Optional[attempt.Attempt]{}, err
	}
	var a attempt.Attempt
	if err := json.Unmarshal(encoded, &a); err != nil {
		return c.Optional[attempt.Attempt]{}, err
	}
	return c.NewOptional(a, true), nil
}

func key(id attempt.ID) string {
	return fmt.Sprintf("%s::%s", keyPrefix, id)
}
