package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/slt-fleet/tireflow/internal/domain/errors"
	"github.com/slt-fleet/tireflow/internal/domain/model"
	"github.com/slt-fleet/tireflow/internal/domain/repository"
	"github.com/slt-fleet/tireflow/internal/pkg/photo"
)

// Notifier delivers workflow notifications. Implementations absorb transport
// failures internally; no call here may fail a committed transition.
type Notifier interface {
	RequestSubmitted(request *model.TireRequest)
	ManagerApproved(request *model.TireRequest)
	TTOApproved(request *model.TireRequest)
	EngineerApproved(request *model.TireRequest)
	OrderCreated(order *model.TireOrder)
	OrderConfirmed(order *model.TireOrder, recipient string)
	OrderRejected(order *model.TireOrder, recipient, reason string)
}

// RequestUseCase drives the tire request lifecycle: submission, the
// Manager -> TTO -> Engineer approval chain and the per-stage notifications.
type RequestUseCase struct {
	requests repository.RequestRepository
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewRequestUseCase constructs RequestUseCase.
func NewRequestUseCase(requests repository.RequestRepository, notifier Notifier, logger *slog.Logger) *RequestUseCase {
	return &RequestUseCase{requests: requests, notifier: notifier, logger: logger, now: time.Now}
}

// Create validates and persists a new request, then notifies the manager.
func (u *RequestUseCase) Create(ctx context.Context, request *model.TireRequest) (*model.TireRequest, error) {
	AutoPopulate(request, u.now)

	if violations := ValidateRequest(request); len(violations) > 0 {
		return nil, domainErrors.NewValidationError(violations)
	}

	u.consolidatePhotos(request)

	request.ID = uuid.NewString()
	request.Status = model.RequestStatusSubmitted
	request.RejectionReason = nil

	saved, err := u.requests.Create(ctx, request)
	if err != nil {
		return nil, err
	}

	u.notifier.RequestSubmitted(saved)
	u.logger.Info("tire request created",
		slog.String("id", saved.ID),
		slog.String("vehicle", saved.VehicleNo),
	)
	return saved, nil
}

// GetByID fetches one request with its photo fields consolidated.
func (u *RequestUseCase) GetByID(ctx context.Context, id string) (*model.TireRequest, error) {
	request, err := u.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.consolidatePhotos(request)
	return request, nil
}

// List returns all requests with photos consolidated.
func (u *RequestUseCase) List(ctx context.Context) ([]model.TireRequest, error) {
	requests, err := u.requests.List(ctx)
	if err != nil {
		return nil, err
	}
	u.consolidateAll(requests)
	return requests, nil
}

// Stage identifies an approver dashboard.
type Stage string

const (
	StageManager  Stage = "manager"
	StageTTO      Stage = "tto"
	StageEngineer Stage = "engineer"
)

// stageStatuses lists the statuses visible on each dashboard.
func stageStatuses(stage Stage) []model.RequestStatus {
	switch stage {
	case StageTTO:
		return []model.RequestStatus{model.RequestStatusManagerApproved}
	case StageEngineer:
		return []model.RequestStatus{model.RequestStatusTTOApproved}
	default:
		return model.SubmittedStatuses()
	}
}

// ListByStage returns the requests awaiting action at the given stage.
func (u *RequestUseCase) ListByStage(ctx context.Context, stage Stage) ([]model.TireRequest, error) {
	requests, err := u.requests.ListByStatuses(ctx, stageStatuses(stage))
	if err != nil {
		return nil, err
	}
	u.consolidateAll(requests)
	return requests, nil
}

// DashboardCounts summarizes how many requests wait at each stage.
func (u *RequestUseCase) DashboardCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, 3)
	for _, stage := range []Stage{StageManager, StageTTO, StageEngineer} {
		n, err := u.requests.CountByStatuses(ctx, stageStatuses(stage))
		if err != nil {
			return nil, err
		}
		counts[string(stage)] = n
	}
	return counts, nil
}

// Update replaces the mutable fields of an existing request.
func (u *RequestUseCase) Update(ctx context.Context, id string, request *model.TireRequest) (*model.TireRequest, error) {
	request.ID = id
	u.consolidatePhotos(request)
	return u.requests.Update(ctx, request)
}

// Delete removes a request permanently.
func (u *RequestUseCase) Delete(ctx context.Context, id string) error {
	return u.requests.Delete(ctx, id)
}

// ManagerApprove moves a request into MANAGER_APPROVED and notifies the TTO.
// Notification failure never undoes the transition.
func (u *RequestUseCase) ManagerApprove(ctx context.Context, id string) (*model.TireRequest, error) {
	updated, err := u.requests.Mutate(ctx, id, func(request *model.TireRequest) error {
		request.Status = model.RequestStatusManagerApproved
		request.RejectionReason = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notifier.ManagerApproved(updated)
	u.logger.Info("request approved by manager", slog.String("id", id))
	return updated, nil
}

// ManagerReject moves a request into MANAGER_REJECTED with the given reason.
func (u *RequestUseCase) ManagerReject(ctx context.Context, id, reason string) (*model.TireRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domainErrors.ErrReasonRequired
	}

	updated, err := u.requests.Mutate(ctx, id, func(request *model.TireRequest) error {
		request.Status = model.RequestStatusManagerRejected
		request.RejectionReason = &reason
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("request rejected by manager", slog.String("id", id), slog.String("reason", reason))
	return updated, nil
}

// TTOApprove moves a request into TTO_APPROVED and notifies the engineer.
// Unexpected prior statuses are logged but do not block the transition.
func (u *RequestUseCase) TTOApprove(ctx context.Context, id string) (*model.TireRequest, error) {
	now := u.now()
	updated, err := u.requests.Mutate(ctx, id, func(request *model.TireRequest) error {
		if !request.Status.SubmittedEquivalent() && request.Status != model.RequestStatusManagerApproved {
			u.logger.Warn("unexpected status before TTO approval",
				slog.String("id", id),
				slog.String("status", string(request.Status)),
			)
		}
		request.Status = model.RequestStatusTTOApproved
		request.TTOApprovalDate = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notifier.TTOApproved(updated)
	u.logger.Info("request approved by TTO", slog.String("id", id))
	return updated, nil
}

// TTOReject moves a request into TTO_REJECTED. The request must have passed
// the manager stage first.
func (u *RequestUseCase) TTOReject(ctx context.Context, id, reason string) (*model.TireRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domainErrors.ErrReasonRequired
	}

	now := u.now()
	updated, err := u.requests.Mutate(ctx, id, func(request *model.TireRequest) error {
		if request.Status != model.RequestStatusManagerApproved && request.Status != model.RequestStatusApproved {
			return domainErrors.ErrManagerApprovalRequired
		}
		request.Status = model.RequestStatusTTORejected
		request.TTORejectionDate = &now
		request.TTORejectionReason = &reason
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("request rejected by TTO", slog.String("id", id), slog.String("reason", reason))
	return updated, nil
}

// EngineerApprove moves a request into the terminal ENGINEER_APPROVED state
// and sends the submitter the order-creation link.
func (u *RequestUseCase) EngineerApprove(ctx context.Context, id string) (*model.TireRequest, error) {
	updated, err := u.requests.Mutate(ctx, id, func(request *model.TireRequest) error {
		request.Status = model.RequestStatusEngineerApproved
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Email != "" {
		u.notifier.EngineerApproved(updated)
	}
	u.logger.Info("request approved by engineer", slog.String("id", id))
	return updated, nil
}

// EngineerReject moves a request into ENGINEER_REJECTED. Re-approval after an
// engineer rejection is deliberately not guarded against.
func (u *RequestUseCase) EngineerReject(ctx context.Context, id string) (*model.TireRequest, error) {
	updated, err := u.requests.Mutate(ctx, id, func(request *model.TireRequest) error {
		request.Status = model.RequestStatusEngineerRejected
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("request rejected by engineer", slog.String("id", id))
	return updated, nil
}

// StatusPatch carries optional field updates for the status patch endpoint.
type StatusPatch struct {
	Status             *model.RequestStatus
	TTOApprovalDate    *time.Time
	TTORejectionDate   *time.Time
	TTORejectionReason *string
}

// PatchStatus applies a partial status update without workflow side effects.
func (u *RequestUseCase) PatchStatus(ctx context.Context, id string, patch StatusPatch) (*model.TireRequest, error) {
	return u.requests.Mutate(ctx, id, func(request *model.TireRequest) error {
		if patch.Status != nil {
			request.Status = *patch.Status
		}
		if patch.TTOApprovalDate != nil {
			request.TTOApprovalDate = patch.TTOApprovalDate
		}
		if patch.TTORejectionDate != nil {
			request.TTORejectionDate = patch.TTORejectionDate
		}
		if patch.TTORejectionReason != nil {
			request.TTORejectionReason = patch.TTORejectionReason
		}
		return nil
	})
}

// consolidatePhotos merges the duplicated photo fields and drops malformed
// data-URL entries from the canonical list with a warning.
func (u *RequestUseCase) consolidatePhotos(request *model.TireRequest) {
	photo.ConsolidateRequest(request)
	kept, dropped := photo.FilterValid(request.PhotoURLs)
	if len(dropped) == 0 {
		return
	}
	u.logger.Warn("dropping malformed photo entries",
		slog.String("id", request.ID),
		slog.Int("count", len(dropped)),
	)
	request.PhotoURLs = kept
	request.TirePhotoURLs = kept
}

func (u *RequestUseCase) consolidateAll(requests []model.TireRequest) {
	for i := range requests {
		u.consolidatePhotos(&requests[i])
	}
}
