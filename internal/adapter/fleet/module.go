package fleet

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/cripslk/dispatch/internal/config"
)

// Module exposes the fleet client implementation to the fx graph.
var Module = fx.Options(
	fx.Provide(newClient),
	fx.Invoke(registerLifecycle),
)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, *redis.Client, error) {
	client, err := NewHTTPClient(p.Config.FleetAddress, p.Logger)
	if err != nil {
		return nil, nil, err
	}

	var cache *redis.Client
	if p.Config.RedisAddress != "" {
		cache = redis.NewClient(&redis.Options{Addr: p.Config.RedisAddress})
		client.SetCache(cache, p.Config.DriverCacheTTL)
	}
	return client, cache, nil
}

func registerLifecycle(lc fx.Lifecycle, cache *redis.Client) {
	if cache == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return cache.Close()
		},
	})
}
