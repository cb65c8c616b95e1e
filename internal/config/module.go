package config

import "go.uber.org/fx"

// Module exposes the configuration loader to the fx container.
var Module = fx.Provide(Load)
