package handlers

import (
	"context"
	"time"

	"github.com/slt-fleet/tireflow/internal/domain/model"
	"github.com/slt-fleet/tireflow/internal/export"
	"github.com/slt-fleet/tireflow/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, serviceNo, section, password string) (*model.Employee, string, error)
	Authenticate(ctx context.Context, login, password string) (*model.Employee, string, error)
	ParseToken(token string) (string, error)
	Employee(ctx context.Context, id string) (*model.Employee, error)
}

// RequestFacade encapsulates tire request operations exposed via HTTP.
type RequestFacade interface {
	CreateRequest(ctx context.Context, request *model.TireRequest) (*model.TireRequest, error)
	Request(ctx context.Context, id string) (*model.TireRequest, error)
	Requests(ctx context.Context) ([]model.TireRequest, error)
	RequestsByStage(ctx context.Context, stage usecase.Stage) ([]model.TireRequest, error)
	DashboardCounts(ctx context.Context) (map[string]int64, error)
	UpdateRequest(ctx context.Context, id string, request *model.TireRequest) (*model.TireRequest, error)
	DeleteRequest(ctx context.Context, id string) error
	ManagerApprove(ctx context.Context, id string) (*model.TireRequest, error)
	ManagerReject(ctx context.Context, id, reason string) (*model.TireRequest, error)
	TTOApprove(ctx context.Context, id string) (*model.TireRequest, error)
	TTOReject(ctx context.Context, id, reason string) (*model.TireRequest, error)
	EngineerApprove(ctx context.Context, id string) (*model.TireRequest, error)
	EngineerReject(ctx context.Context, id string) (*model.TireRequest, error)
	PatchRequestStatus(ctx context.Context, id string, status *model.RequestStatus, ttoApprovalDate, ttoRejectionDate *time.Time, ttoRejectionReason *string) (*model.TireRequest, error)
	ValidateRequest(request *model.TireRequest) []string
	ValidateImages(uploads []usecase.ImageUpload) []string
	RequestPDF(ctx context.Context, id string) (*export.Result, error)
}

// OrderFacade encapsulates tire order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, order *model.TireOrder) (*model.TireOrder, error)
	Order(ctx context.Context, id string) (*model.TireOrder, error)
	Orders(ctx context.Context) ([]model.TireOrder, error)
	OrdersByVendor(ctx context.Context, vendorEmail string) ([]model.TireOrder, error)
	UpdateOrder(ctx context.Context, id string, order *model.TireOrder) (*model.TireOrder, error)
	DeleteOrder(ctx context.Context, id string) error
	ConfirmOrder(ctx context.Context, id string) (*model.TireOrder, error)
	RejectOrder(ctx context.Context, id, reason string) (*model.TireOrder, error)
}

// WorkflowFacade aggregates the full set of operations used across handlers.
type WorkflowFacade interface {
	AuthFacade
	RequestFacade
	OrderFacade
}
