package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/slt-fleet/tireflow/internal/domain/errors"
	"github.com/slt-fleet/tireflow/internal/domain/model"
	"github.com/slt-fleet/tireflow/internal/domain/repository"
)

// OrderUseCase projects fully approved requests into seller-facing orders and
// handles seller confirm/reject decisions.
type OrderUseCase struct {
	orders   repository.OrderRepository
	requests repository.RequestRepository
	notifier Notifier
	logger   *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, requests repository.RequestRepository, notifier Notifier, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, requests: requests, notifier: notifier, logger: logger}
}

// Create persists a new pending order and notifies the seller. The referenced
// request must be fully approved and may carry at most one order. Notification
// failure does not roll back the creation.
func (u *OrderUseCase) Create(ctx context.Context, order *model.TireOrder) (*model.TireOrder, error) {
	var violations []string
	if order.Quantity < 1 {
		violations = append(violations, "Order quantity must be at least 1")
	}
	if strings.TrimSpace(order.RequestID) == "" {
		violations = append(violations, "Order must reference a tire request")
	}
	if len(violations) > 0 {
		return nil, domainErrors.NewValidationError(violations)
	}

	request, err := u.requests.GetByID(ctx, order.RequestID)
	if err != nil {
		return nil, err
	}
	if request.Status != model.RequestStatusEngineerApproved {
		return nil, domainErrors.ErrRequestNotApproved
	}
	if _, err := u.orders.GetByRequestID(ctx, order.RequestID); err == nil {
		return nil, fmt.Errorf("order for request %s: %w", order.RequestID, domainErrors.ErrAlreadyExists)
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	order.ID = uuid.NewString()
	order.Status = model.OrderStatusPending
	order.RejectionReason = nil

	saved, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	u.notifier.OrderCreated(saved)
	u.logger.Info("tire order created",
		slog.String("id", saved.ID),
		slog.String("request_id", saved.RequestID),
	)
	return saved, nil
}

// GetByID fetches one order.
func (u *OrderUseCase) GetByID(ctx context.Context, id string) (*model.TireOrder, error) {
	return u.orders.GetByID(ctx, id)
}

// List returns all orders.
func (u *OrderUseCase) List(ctx context.Context) ([]model.TireOrder, error) {
	return u.orders.List(ctx)
}

// ListByVendor returns the orders addressed to one seller.
func (u *OrderUseCase) ListByVendor(ctx context.Context, vendorEmail string) ([]model.TireOrder, error) {
	return u.orders.ListByVendorEmail(ctx, vendorEmail)
}

// Update replaces the mutable fields of an existing order.
func (u *OrderUseCase) Update(ctx context.Context, id string, order *model.TireOrder) (*model.TireOrder, error) {
	order.ID = id
	return u.orders.Update(ctx, order)
}

// Delete removes an order. The referenced request is untouched.
func (u *OrderUseCase) Delete(ctx context.Context, id string) error {
	return u.orders.Delete(ctx, id)
}

// Confirm flips an order to confirmed and notifies the original requester.
func (u *OrderUseCase) Confirm(ctx context.Context, id string) (*model.TireOrder, error) {
	updated, err := u.orders.UpdateStatus(ctx, id, model.OrderStatusConfirmed, nil)
	if err != nil {
		return nil, err
	}

	u.notifier.OrderConfirmed(updated, u.requesterEmail(ctx, updated))
	u.logger.Info("order confirmed by seller", slog.String("id", id))
	return updated, nil
}

// Reject flips an order to rejected with the given reason and notifies the
// original requester.
func (u *OrderUseCase) Reject(ctx context.Context, id, reason string) (*model.TireOrder, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domainErrors.ErrReasonRequired
	}

	updated, err := u.orders.UpdateStatus(ctx, id, model.OrderStatusRejected, &reason)
	if err != nil {
		return nil, err
	}

	u.notifier.OrderRejected(updated, u.requesterEmail(ctx, updated), reason)
	u.logger.Info("order rejected by seller", slog.String("id", id), slog.String("reason", reason))
	return updated, nil
}

// requesterEmail resolves the requester through the order's request
// back-reference, falling back to the email captured on the order. The order
// may outlive its request, so a missing request is not an error.
func (u *OrderUseCase) requesterEmail(ctx context.Context, order *model.TireOrder) string {
	if order.RequestID != "" {
		request, err := u.requests.GetByID(ctx, order.RequestID)
		if err == nil && request.Email != "" {
			return request.Email
		}
		if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
			u.logger.Error("resolve requester email failed",
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	return order.UserEmail
}
