package test

import (
	"context"
	"time"

	"github.com/slt-fleet/tireflow/internal/domain/model"
	"github.com/slt-fleet/tireflow/internal/export"
	"github.com/slt-fleet/tireflow/internal/usecase"
)

// WorkflowFacadeStub lets HTTP tests customize facade behaviour per method.
// Unset functions return zero values.
type WorkflowFacadeStub struct {
	RegisterFn           func(ctx context.Context, email, serviceNo, section, password string) (*model.Employee, string, error)
	AuthenticateFn       func(ctx context.Context, login, password string) (*model.Employee, string, error)
	ParseTokenFn         func(token string) (string, error)
	EmployeeFn           func(ctx context.Context, id string) (*model.Employee, error)
	CreateRequestFn      func(ctx context.Context, request *model.TireRequest) (*model.TireRequest, error)
	RequestFn            func(ctx context.Context, id string) (*model.TireRequest, error)
	RequestsFn           func(ctx context.Context) ([]model.TireRequest, error)
	RequestsByStageFn    func(ctx context.Context, stage usecase.Stage) ([]model.TireRequest, error)
	DashboardCountsFn    func(ctx context.Context) (map[string]int64, error)
	UpdateRequestFn      func(ctx context.Context, id string, request *model.TireRequest) (*model.TireRequest, error)
	DeleteRequestFn      func(ctx context.Context, id string) error
	ManagerApproveFn     func(ctx context.Context, id string) (*model.TireRequest, error)
	ManagerRejectFn      func(ctx context.Context, id, reason string) (*model.TireRequest, error)
	TTOApproveFn         func(ctx context.Context, id string) (*model.TireRequest, error)
	TTORejectFn          func(ctx context.Context, id, reason string) (*model.TireRequest, error)
	EngineerApproveFn    func(ctx context.Context, id string) (*model.TireRequest, error)
	EngineerRejectFn     func(ctx context.Context, id string) (*model.TireRequest, error)
	PatchRequestStatusFn func(ctx context.Context, id string, status *model.RequestStatus, ttoApprovalDate, ttoRejectionDate *time.Time, ttoRejectionReason *string) (*model.TireRequest, error)
	ValidateRequestFn    func(request *model.TireRequest) []string
	ValidateImagesFn     func(uploads []usecase.ImageUpload) []string
	RequestPDFFn         func(ctx context.Context, id string) (*export.Result, error)
	CreateOrderFn        func(ctx context.Context, order *model.TireOrder) (*model.TireOrder, error)
	OrderFn              func(ctx context.Context, id string) (*model.TireOrder, error)
	OrdersFn             func(ctx context.Context) ([]model.TireOrder, error)
	OrdersByVendorFn     func(ctx context.Context, vendorEmail string) ([]model.TireOrder, error)
	UpdateOrderFn        func(ctx context.Context, id string, order *model.TireOrder) (*model.TireOrder, error)
	DeleteOrderFn        func(ctx context.Context, id string) error
	ConfirmOrderFn       func(ctx context.Context, id string) (*model.TireOrder, error)
	RejectOrderFn        func(ctx context.Context, id, reason string) (*model.TireOrder, error)
}

func (s *WorkflowFacadeStub) Register(ctx context.Context, email, serviceNo, section, password string) (*model.Employee, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, serviceNo, section, password)
	}
	return &model.Employee{Email: email, ServiceNo: serviceNo, Section: section}, "token", nil
}

func (s *WorkflowFacadeStub) Authenticate(ctx context.Context, login, password string) (*model.Employee, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return &model.Employee{Email: login}, "token", nil
}

func (s *WorkflowFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return "emp-1", nil
}

func (s *WorkflowFacadeStub) Employee(ctx context.Context, id string) (*model.Employee, error) {
	if s.EmployeeFn != nil {
		return s.EmployeeFn(ctx, id)
	}
	return &model.Employee{ID: id}, nil
}

func (s *WorkflowFacadeStub) CreateRequest(ctx context.Context, request *model.TireRequest) (*model.TireRequest, error) {
	if s.CreateRequestFn != nil {
		return s.CreateRequestFn(ctx, request)
	}
	return request, nil
}

func (s *WorkflowFacadeStub) Request(ctx context.Context, id string) (*model.TireRequest, error) {
	if s.RequestFn != nil {
		return s.RequestFn(ctx, id)
	}
	return &model.TireRequest{ID: id}, nil
}

func (s *WorkflowFacadeStub) Requests(ctx context.Context) ([]model.TireRequest, error) {
	if s.RequestsFn != nil {
		return s.RequestsFn(ctx)
	}
	return nil, nil
}

func (s *WorkflowFacadeStub) RequestsByStage(ctx context.Context, stage usecase.Stage) ([]model.TireRequest, error) {
	if s.RequestsByStageFn != nil {
		return s.RequestsByStageFn(ctx, stage)
	}
	return nil, nil
}

func (s *WorkflowFacadeStub) DashboardCounts(ctx context.Context) (map[string]int64, error) {
	if s.DashboardCountsFn != nil {
		return s.DashboardCountsFn(ctx)
	}
	return map[string]int64{}, nil
}

func (s *WorkflowFacadeStub) UpdateRequest(ctx context.Context, id string, request *model.TireRequest) (*model.TireRequest, error) {
	if s.UpdateRequestFn != nil {
		return s.UpdateRequestFn(ctx, id, request)
	}
	request.ID = id
	return request, nil
}

func (s *WorkflowFacadeStub) DeleteRequest(ctx context.Context, id string) error {
	if s.DeleteRequestFn != nil {
		return s.DeleteRequestFn(ctx, id)
	}
	return nil
}

func (s *WorkflowFacadeStub) ManagerApprove(ctx context.Context, id string) (*model.TireRequest, error) {
	if s.ManagerApproveFn != nil {
		return s.ManagerApproveFn(ctx, id)
	}
	return &model.TireRequest{ID: id, Status: model.RequestStatusManagerApproved}, nil
}

func (s *WorkflowFacadeStub) ManagerReject(ctx context.Context, id, reason string) (*model.TireRequest, error) {
	if s.ManagerRejectFn != nil {
		return s.ManagerRejectFn(ctx, id, reason)
	}
	return &model.TireRequest{ID: id, Status: model.RequestStatusManagerRejected}, nil
}

func (s *WorkflowFacadeStub) TTOApprove(ctx context.Context, id string) (*model.TireRequest, error) {
	if s.TTOApproveFn != nil {
		return s.TTOApproveFn(ctx, id)
	}
	return &model.TireRequest{ID: id, Status: model.RequestStatusTTOApproved}, nil
}

func (s *WorkflowFacadeStub) TTOReject(ctx context.Context, id, reason string) (*model.TireRequest, error) {
	if s.TTORejectFn != nil {
		return s.TTORejectFn(ctx, id, reason)
	}
	return &model.TireRequest{ID: id, Status: model.RequestStatusTTORejected}, nil
}

func (s *WorkflowFacadeStub) EngineerApprove(ctx context.Context, id string) (*model.TireRequest, error) {
	if s.EngineerApproveFn != nil {
		return s.EngineerApproveFn(ctx, id)
	}
	return &model.TireRequest{ID: id, Status: model.RequestStatusEngineerApproved}, nil
}

func (s *WorkflowFacadeStub) EngineerReject(ctx context.Context, id string) (*model.TireRequest, error) {
	if s.EngineerRejectFn != nil {
		return s.EngineerRejectFn(ctx, id)
	}
	return &model.TireRequest{ID: id, Status: model.RequestStatusEngineerRejected}, nil
}

func (s *WorkflowFacadeStub) PatchRequestStatus(ctx context.Context, id string, status *model.RequestStatus, ttoApprovalDate, ttoRejectionDate *time.Time, ttoRejectionReason *string) (*model.TireRequest, error) {
	if s.PatchRequestStatusFn != nil {
		return s.PatchRequestStatusFn(ctx, id, status, ttoApprovalDate, ttoRejectionDate, ttoRejectionReason)
	}
	request := &model.TireRequest{ID: id}
	if status != nil {
		request.Status = *status
	}
	return request, nil
}

func (s *WorkflowFacadeStub) ValidateRequest(request *model.TireRequest) []string {
	if s.ValidateRequestFn != nil {
		return s.ValidateRequestFn(request)
	}
	return nil
}

func (s *WorkflowFacadeStub) ValidateImages(uploads []usecase.ImageUpload) []string {
	if s.ValidateImagesFn != nil {
		return s.ValidateImagesFn(uploads)
	}
	return nil
}

func (s *WorkflowFacadeStub) RequestPDF(ctx context.Context, id string) (*export.Result, error) {
	if s.RequestPDFFn != nil {
		return s.RequestPDFFn(ctx, id)
	}
	return &export.Result{Data: []byte("%PDF"), Filename: "report.pdf", MimeType: "application/pdf"}, nil
}

func (s *WorkflowFacadeStub) CreateOrder(ctx context.Context, order *model.TireOrder) (*model.TireOrder, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, order)
	}
	return order, nil
}

func (s *WorkflowFacadeStub) Order(ctx context.Context, id string) (*model.TireOrder, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.TireOrder{ID: id}, nil
}

func (s *WorkflowFacadeStub) Orders(ctx context.Context) ([]model.TireOrder, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	return nil, nil
}

func (s *WorkflowFacadeStub) OrdersByVendor(ctx context.Context, vendorEmail string) ([]model.TireOrder, error) {
	if s.OrdersByVendorFn != nil {
		return s.OrdersByVendorFn(ctx, vendorEmail)
	}
	return nil, nil
}

func (s *WorkflowFacadeStub) UpdateOrder(ctx context.Context, id string, order *model.TireOrder) (*model.TireOrder, error) {
	if s.UpdateOrderFn != nil {
		return s.UpdateOrderFn(ctx, id, order)
	}
	order.ID = id
	return order, nil
}

func (s *WorkflowFacadeStub) DeleteOrder(ctx context.Context, id string) error {
	if s.DeleteOrderFn != nil {
		return s.DeleteOrderFn(ctx, id)
	}
	return nil
}

func (s *WorkflowFacadeStub) ConfirmOrder(ctx context.Context, id string) (*model.TireOrder, error) {
	if s.ConfirmOrderFn != nil {
		return s.ConfirmOrderFn(ctx, id)
	}
	return &model.TireOrder{ID: id, Status: model.OrderStatusConfirmed}, nil
}

func (s *WorkflowFacadeStub) RejectOrder(ctx context.Context, id, reason string) (*model.TireOrder, error) {
	if s.RejectOrderFn != nil {
		return s.RejectOrderFn(ctx, id, reason)
	}
	reasonCopy := reason
	return &model.TireOrder{ID: id, Status: model.OrderStatusRejected, RejectionReason: &reasonCopy}, nil
}
