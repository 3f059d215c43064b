package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/slt-fleet/tireflow/internal/config"
	"github.com/slt-fleet/tireflow/internal/domain/repository"
)

// Module provides PostgreSQL storage and the domain repositories.
var Module = fx.Options(
	fx.Provide(
		newStorage,
		func(s *Storage) repository.Factory { return s },
		func(s *Storage) repository.RequestRepository { return s.Requests() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.EmployeeRepository { return s.Employees() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(context.Background(), p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			storage.Close()
			return nil
		},
	})
}
