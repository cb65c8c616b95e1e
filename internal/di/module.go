package di

import (
	"go.uber.org/fx"

	"github.com/cripslk/dispatch/internal/adapter/events"
	"github.com/cripslk/dispatch/internal/adapter/fleet"
	"github.com/cripslk/dispatch/internal/app"
	"github.com/cripslk/dispatch/internal/config"
	"github.com/cripslk/dispatch/internal/logger"
	"github.com/cripslk/dispatch/internal/pkg/auth"
	"github.com/cripslk/dispatch/internal/server/http/handlers"
	"github.com/cripslk/dispatch/internal/server/http/router"
	"github.com/cripslk/dispatch/internal/storage/postgres"
	"github.com/cripslk/dispatch/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		fleet.Module,
		events.Module,
		usecase.Module,
		fx.Provide(func(client fleet.Client) usecase.DriverRegistry { return client }),
		fx.Provide(func(publisher events.Publisher) usecase.EventPublisher { return publisher }),
		fx.Provide(func(facade *app.DispatchFacade) handlers.DispatchFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
