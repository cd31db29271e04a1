//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"tally/internal/platform/config"
	redisclient "tally/internal/platform/redis"
)

// RedisContainer is a disposable Redis server with a connected client.
// Config points at the container and can be passed to redisclient.New.
type RedisContainer struct {
	Container testcontainers.Container
	Config    config.RedisConfig
	Client    *redisclient.Client
}

// NewRedisContainer starts Redis and connects through the platform client,
// so tests exercise the same connection setup as the server.
func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	url, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("redis connection string: %v", err)
	}
	cfg := config.RedisConfig{URL: url, PoolSize: 4}
	client, err := redisclient.New(ctx, cfg)
	if err != nil {
		t.Fatalf("connect to redis container: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return &RedisContainer{Container: container, Config: cfg, Client: client}
}

// FlushAll empties the database between tests.
func (r *RedisContainer) FlushAll(ctx context.Context) error {
	return r.Client.FlushAll(ctx).Err()
}
