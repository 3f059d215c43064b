package di

import (
	"go.uber.org/fx"

	"github.com/slt-fleet/tireflow/internal/app"
	"github.com/slt-fleet/tireflow/internal/config"
	"github.com/slt-fleet/tireflow/internal/export"
	"github.com/slt-fleet/tireflow/internal/logger"
	"github.com/slt-fleet/tireflow/internal/notification"
	"github.com/slt-fleet/tireflow/internal/pkg/auth"
	"github.com/slt-fleet/tireflow/internal/server/http/router"
	"github.com/slt-fleet/tireflow/internal/storage/postgres"
	"github.com/slt-fleet/tireflow/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		notification.Module,
		usecase.Module,
		export.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
