package test

import (
	"context"
	"sync"

	domainErrors "github.com/slt-fleet/tireflow/internal/domain/errors"
	"github.com/slt-fleet/tireflow/internal/domain/model"
)

// RequestRepositoryStub stores tire requests in-memory for tests.
type RequestRepositoryStub struct {
	mu       sync.Mutex
	Requests map[string]*model.TireRequest
	Err      error
}

// NewRequestRepositoryStub constructs stub repository with initialized maps.
func NewRequestRepositoryStub() *RequestRepositoryStub {
	return &RequestRepositoryStub{Requests: make(map[string]*model.TireRequest)}
}

func (s *RequestRepositoryStub) Create(ctx context.Context, request *model.TireRequest) (*model.TireRequest, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *request
	s.Requests[request.ID] = &clone
	return request, nil
}

func (s *RequestRepositoryStub) GetByID(ctx context.Context, id string) (*model.TireRequest, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if request, ok := s.Requests[id]; ok {
		clone := *request
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *RequestRepositoryStub) List(ctx context.Context) ([]model.TireRequest, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.TireRequest, 0, len(s.Requests))
	for _, request := range s.Requests {
		result = append(result, *request)
	}
	return result, nil
}

func (s *RequestRepositoryStub) ListByStatuses(ctx context.Context, statuses []model.RequestStatus) ([]model.TireRequest, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.TireRequest, 0)
	for _, request := range s.Requests {
		for _, status := range statuses {
			if request.Status == status {
				result = append(result, *request)
				break
			}
		}
	}
	return result, nil
}

func (s *RequestRepositoryStub) CountByStatuses(ctx context.Context, statuses []model.RequestStatus) (int64, error) {
	requests, err := s.ListByStatuses(ctx, statuses)
	if err != nil {
		return 0, err
	}
	return int64(len(requests)), nil
}

func (s *RequestRepositoryStub) Update(ctx context.Context, request *model.TireRequest) (*model.TireRequest, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Requests[request.ID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *request
	s.Requests[request.ID] = &clone
	return request, nil
}

// Mutate applies fn to the stored request under the stub's lock, mirroring
// the serialized read-modify-write of the real repository.
func (s *RequestRepositoryStub) Mutate(ctx context.Context, id string, fn func(*model.TireRequest) error) (*model.TireRequest, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.Requests[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *stored
	if err := fn(&clone); err != nil {
		return nil, err
	}
	s.Requests[id] = &clone
	result := clone
	return &result, nil
}

func (s *RequestRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Requests[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Requests, id)
	return nil
}

// OrderRepositoryStub stores tire orders in-memory for tests.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders map[string]*model.TireOrder
	Err    error
}

// NewOrderRepositoryStub constructs stub repository with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.TireOrder)}
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.TireOrder) (*model.TireOrder, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *order
	s.Orders[order.ID] = &clone
	return order, nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.TireOrder, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if order, ok := s.Orders[id]; ok {
		clone := *order
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) GetByRequestID(ctx context.Context, requestID string) (*model.TireOrder, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.Orders {
		if order.RequestID == requestID {
			clone := *order
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.TireOrder, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.TireOrder, 0, len(s.Orders))
	for _, order := range s.Orders {
		result = append(result, *order)
	}
	return result, nil
}

func (s *OrderRepositoryStub) ListByVendorEmail(ctx context.Context, vendorEmail string) ([]model.TireOrder, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.TireOrder, 0)
	for _, order := range s.Orders {
		if order.VendorEmail == vendorEmail {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (s *OrderRepositoryStub) Update(ctx context.Context, order *model.TireOrder) (*model.TireOrder, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Orders[order.ID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *order
	s.Orders[order.ID] = &clone
	return order, nil
}

func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, rejectionReason *string) (*model.TireOrder, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order.Status = status
	order.RejectionReason = rejectionReason
	clone := *order
	return &clone, nil
}

func (s *OrderRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Orders[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Orders, id)
	return nil
}

// EmployeeRepositoryStub stores employees in-memory for tests.
type EmployeeRepositoryStub struct {
	mu        sync.Mutex
	Employees map[string]*model.Employee
	Err       error
}

// NewEmployeeRepositoryStub constructs stub repository with initialized maps.
func NewEmployeeRepositoryStub() *EmployeeRepositoryStub {
	return &EmployeeRepositoryStub{Employees: make(map[string]*model.Employee)}
}

func (s *EmployeeRepositoryStub) Create(ctx context.Context, employee *model.Employee) (*model.Employee, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.Employees {
		if existing.Email == employee.Email || existing.ServiceNo == employee.ServiceNo {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	clone := *employee
	s.Employees[employee.ID] = &clone
	return employee, nil
}

func (s *EmployeeRepositoryStub) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if employee, ok := s.Employees[id]; ok {
		clone := *employee
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *EmployeeRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, employee := range s.Employees {
		if employee.Email == email {
			clone := *employee
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *EmployeeRepositoryStub) GetByServiceNo(ctx context.Context, serviceNo string) (*model.Employee, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, employee := range s.Employees {
		if employee.ServiceNo == serviceNo {
			clone := *employee
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}
