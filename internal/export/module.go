package export

import "go.uber.org/fx"

// Module provides the report export service.
var Module = fx.Provide(NewService)
