package repository

import (
	"context"

	"github.com/slt-fleet/tireflow/internal/domain/model"
)

// RequestRepository describes persistence operations with tire requests.
type RequestRepository interface {
	Create(ctx context.Context, request *model.TireRequest) (*model.TireRequest, error)
	GetByID(ctx context.Context, id string) (*model.TireRequest, error)
	List(ctx context.Context) ([]model.TireRequest, error)
	ListByStatuses(ctx context.Context, statuses []model.RequestStatus) ([]model.TireRequest, error)
	CountByStatuses(ctx context.Context, statuses []model.RequestStatus) (int64, error)
	Update(ctx context.Context, request *model.TireRequest) (*model.TireRequest, error)
	// Mutate loads the request under a row lock, applies fn and writes the
	// result back within the same transaction. Concurrent transitions on one
	// id serialize here; an error from fn aborts the write.
	Mutate(ctx context.Context, id string, fn func(*model.TireRequest) error) (*model.TireRequest, error)
	Delete(ctx context.Context, id string) error
}
