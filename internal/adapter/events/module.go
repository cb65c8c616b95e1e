package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/cripslk/dispatch/internal/config"
)

// Module exposes the notification publisher to the fx graph. Without a
// configured broker the noop publisher is wired instead.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) (Publisher, error) {
	if p.Config.AMQPAddress == "" {
		return NoopPublisher{}, nil
	}

	publisher, err := NewAMQPPublisher(p.Config.AMQPAddress, p.Config.EventExchange, p.Logger)
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			publisher.Close()
			return nil
		},
	})
	return publisher, nil
}
