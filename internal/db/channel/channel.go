package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gatekeeper/internal/core/domain/channel"
	c "gatekeeper/internal/core/domain/common"
	e "gatekeeper/internal/core/domain/errors"

	"github.com/go-redis/redis/v9"
)

const keyPrefix = "channel"

// RedisRepository stores channel configs as JSON values in a single key-value
// namespace. A zero ttl keeps records forever; a positive ttl re-arms on every
// overwrite.
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

func (r *RedisRepository) Set(ctx context.Context, config channel.Config) error {
	encoded, err := json.Marshal(config)
	if err != nil {
		return err
	}
	return r.redisClient.Set(ctx, key(config.Handle()), encoded, r.ttl).Err()
}

func (r *RedisRepository) Get(ctx context.Context, handle channel.Handle) (c.Optional[channel.Config], error) {
	encoded, err := r.redisClient.Get(ctx, key(handle)).Bytes()
	if errors.Is(err, redis.Nil) {
		return c.Optional[channel.Config]{}, nil
	}
	if err != nil {
		return c.Optional[channel.Config]{}, err
	}
	var config channel.Config
	if err := json.Unmarshal(encoded, &config); err != nil {
		return c.Optional[channel.Config]{}, err
	}
	return c.NewOptional(config, true), nil
}

func key(handle channel.Handle) string {
	return fmt.Sprintf("%s::%s", keyPrefix, handle)
}
