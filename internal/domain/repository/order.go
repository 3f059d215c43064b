package repository

import (
	"context"

	"github.com/slt-fleet/tireflow/internal/domain/model"
)

// OrderRepository describes persistence operations with tire orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.TireOrder) (*model.TireOrder, error)
	GetByID(ctx context.Context, id string) (*model.TireOrder, error)
	GetByRequestID(ctx context.Context, requestID string) (*model.TireOrder, error)
	List(ctx context.Context) ([]model.TireOrder, error)
	ListByVendorEmail(ctx context.Context, vendorEmail string) ([]model.TireOrder, error)
	Update(ctx context.Context, order *model.TireOrder) (*model.TireOrder, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, rejectionReason *string) (*model.TireOrder, error)
	Delete(ctx context.Context, id string) error
}
