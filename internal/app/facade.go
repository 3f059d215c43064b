package app

import (
	"context"
	"time"

	"github.com/slt-fleet/tireflow/internal/domain/model"
	"github.com/slt-fleet/tireflow/internal/export"
	"github.com/slt-fleet/tireflow/internal/usecase"
)

// WorkflowFacade aggregates the use cases exposed over HTTP.
type WorkflowFacade struct {
	auth     *usecase.AuthUseCase
	requests *usecase.RequestUseCase
	orders   *usecase.OrderUseCase
	exporter *export.Service
}

func NewWorkflowFacade(auth *usecase.AuthUseCase, requests *usecase.RequestUseCase, orders *usecase.OrderUseCase, exporter *export.Service) *WorkflowFacade {
	return &WorkflowFacade{auth: auth, requests: requests, orders: orders, exporter: exporter}
}

func (f *WorkflowFacade) Register(ctx context.Context, email, serviceNo, section, password string) (*model.Employee, string, error) {
	return f.auth.Register(ctx, email, serviceNo, section, password)
}

func (f *WorkflowFacade) Authenticate(ctx context.Context, login, password string) (*model.Employee, string, error) {
	return f.auth.Authenticate(ctx, login, password)
}

func (f *WorkflowFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

func (f *WorkflowFacade) Employee(ctx context.Context, id string) (*model.Employee, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *WorkflowFacade) CreateRequest(ctx context.Context, request *model.TireRequest) (*model.TireRequest, error) {
	return f.requests.Create(ctx, request)
}

func (f *WorkflowFacade) Request(ctx context.Context, id string) (*model.TireRequest, error) {
	return f.requests.GetByID(ctx, id)
}

func (f *WorkflowFacade) Requests(ctx context.Context) ([]model.TireRequest, error) {
	return f.requests.List(ctx)
}

func (f *WorkflowFacade) RequestsByStage(ctx context.Context, stage usecase.Stage) ([]model.TireRequest, error) {
	return f.requests.ListByStage(ctx, stage)
}

func (f *WorkflowFacade) DashboardCounts(ctx context.Context) (map[string]int64, error) {
	return f.requests.DashboardCounts(ctx)
}

func (f *WorkflowFacade) UpdateRequest(ctx context.Context, id string, request *model.TireRequest) (*model.TireRequest, error) {
	return f.requests.Update(ctx, id, request)
}

func (f *WorkflowFacade) DeleteRequest(ctx context.Context, id string) error {
	return f.requests.Delete(ctx, id)
}

func (f *WorkflowFacade) ManagerApprove(ctx context.Context, id string) (*model.TireRequest, error) {
	return f.requests.ManagerApprove(ctx, id)
}

func (f *WorkflowFacade) ManagerReject(ctx context.Context, id, reason string) (*model.TireRequest, error) {
	return f.requests.ManagerReject(ctx, id, reason)
}

func (f *WorkflowFacade) TTOApprove(ctx context.Context, id string) (*model.TireRequest, error) {
	return f.requests.TTOApprove(ctx, id)
}

func (f *WorkflowFacade) TTOReject(ctx context.Context, id, reason string) (*model.TireRequest, error) {
	return f.requests.TTOReject(ctx, id, reason)
}

func (f *WorkflowFacade) EngineerApprove(ctx context.Context, id string) (*model.TireRequest, error) {
	return f.requests.EngineerApprove(ctx, id)
}

func (f *WorkflowFacade) EngineerReject(ctx context.Context, id string) (*model.TireRequest, error) {
	return f.requests.EngineerReject(ctx, id)
}

func (f *WorkflowFacade) PatchRequestStatus(ctx context.Context, id string, status *model.RequestStatus, ttoApprovalDate, ttoRejectionDate *time.Time, ttoRejectionReason *string) (*model.TireRequest, error) {
	return f.requests.PatchStatus(ctx, id, usecase.StatusPatch{
		Status:             status,
		TTOApprovalDate:    ttoApprovalDate,
		TTORejectionDate:   ttoRejectionDate,
		TTORejectionReason: ttoRejectionReason,
	})
}

func (f *WorkflowFacade) ValidateRequest(request *model.TireRequest) []string {
	return usecase.ValidateRequest(request)
}

func (f *WorkflowFacade) ValidateImages(uploads []usecase.ImageUpload) []string {
	return usecase.ValidateImages(uploads)
}

func (f *WorkflowFacade) RequestPDF(ctx context.Context, id string) (*export.Result, error) {
	request, err := f.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return f.exporter.RequestPDF(request)
}

func (f *WorkflowFacade) CreateOrder(ctx context.Context, order *model.TireOrder) (*model.TireOrder, error) {
	return f.orders.Create(ctx, order)
}

func (f *WorkflowFacade) Order(ctx context.Context, id string) (*model.TireOrder, error) {
	return f.orders.GetByID(ctx, id)
}

func (f *WorkflowFacade) Orders(ctx context.Context) ([]model.TireOrder, error) {
	return f.orders.List(ctx)
}

func (f *WorkflowFacade) OrdersByVendor(ctx context.Context, vendorEmail string) ([]model.TireOrder, error) {
	return f.orders.ListByVendor(ctx, vendorEmail)
}

func (f *WorkflowFacade) UpdateOrder(ctx context.Context, id string, order *model.TireOrder) (*model.TireOrder, error) {
	return f.orders.Update(ctx, id, order)
}

func (f *WorkflowFacade) DeleteOrder(ctx context.Context, id string) error {
	return f.orders.Delete(ctx, id)
}

func (f *WorkflowFacade) ConfirmOrder(ctx context.Context, id string) (*model.TireOrder, error) {
	return f.orders.Confirm(ctx, id)
}

func (f *WorkflowFacade) RejectOrder(ctx context.Context, id, reason string) (*model.TireOrder, error) {
	return f.orders.Reject(ctx, id, reason)
}
