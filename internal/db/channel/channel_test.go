package channel

import (
	"context"
	"testing"
	"time"

	domain "gatekeeper/internal/core/domain/channel"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, ttl time.Duration) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	opt, err := redis.ParseURL("redis://" + s.Addr())
	require.NoError(t, err)
	return NewRedisRepository(redis.NewClient(opt), ttl), s
}

func TestGetMissingKeyReturnsAbsent(t *testing.T) {
	repository, _ := newTestRepository(t, 0)

	config, err := repository.Get(context.Background(), domain.Handle("@missing"))

	assert := require.New(t)
	assert.NoError(err)
	assert.False(config.IsPresent)
	assert.Equal(domain.Config{}, config.Value)
}

func TestSetGetRoundTrip(t *testing.T) {
	repository, _ := newTestRepository(t, 0)
	expected := domain.Config{
		Channel:    "@acme",
		Image:      "http://x/img.png",
		Name:       "Acme",
		InviteLink: "http://t.me/join/abc",
	}

	err := repository.Set(context.Background(), expected)
	require.NoError(t, err)
	stored, err := repository.Get(context.Background(), domain.Handle("@acme"))

	assert := require.New(t)
	assert.NoError(err)
	assert.True(stored.IsPresent)
	assert.Equal(expected, stored.Value)
}

func TestSetOverwritesWholeRecord(t *testing.T) {
	repository, _ := newTestRepository(t, 0)
	ctx := context.Background()

	err := repository.Set(ctx, domain.Config{
		Channel:    "@acme",
		Image:      "http://x/img.png",
		Name:       "Acme",
		InviteLink: "http://t.me/join/abc",
	})
	require.NoError(t, err)
	err = repository.Set(ctx, domain.Config{Channel: "@acme", Name: "Renamed"})
	require.NoError(t, err)

	stored, err := repository.Get(ctx, domain.Handle("@acme"))

	assert := require.New(t)
	assert.NoError(err)
	assert.Equal(domain.Config{Channel: "@acme", Name: "Renamed"}, stored.Value)
}

func TestTTLExpiresRecords(t *testing.T) {
	repository, s := newTestRepository(t, time.Hour)
	ctx := context.Background()

	err := repository.Set(ctx, domain.Config{Channel: "@acme", Name: "Acme"})
	require.NoError(t, err)

	s.FastForward(2 * time.Hour)
	stored, err := repository.Get(ctx, domain.Handle("@acme"))

	assert := require.New(t)
	assert.NoError(err)
	assert.False(stored.IsPresent)
}
