package test

import (
	"sync"

	"github.com/slt-fleet/tireflow/internal/domain/model"
)

// NotifierStub records notification calls for assertions.
type NotifierStub struct {
	mu sync.Mutex

	SubmittedCalls        []string
	ManagerApprovedCalls  []string
	TTOApprovedCalls      []string
	EngineerApprovedCalls []string
	OrderCreatedCalls     []string
	OrderConfirmedCalls   []string
	OrderRejectedCalls    []string
	LastRecipient         string
	LastReason            string
}

func (s *NotifierStub) RequestSubmitted(request *model.TireRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SubmittedCalls = append(s.SubmittedCalls, request.ID)
}

func (s *NotifierStub) ManagerApproved(request *model.TireRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ManagerApprovedCalls = append(s.ManagerApprovedCalls, request.ID)
}

func (s *NotifierStub) TTOApproved(request *model.TireRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TTOApprovedCalls = append(s.TTOApprovedCalls, request.ID)
}

func (s *NotifierStub) EngineerApproved(request *model.TireRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.EngineerApprovedCalls = append(s.EngineerApprovedCalls, request.ID)
}

func (s *NotifierStub) OrderCreated(order *model.TireOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.OrderCreatedCalls = append(s.OrderCreatedCalls, order.ID)
}

func (s *NotifierStub) OrderConfirmed(order *model.TireOrder, recipient string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.OrderConfirmedCalls = append(s.OrderConfirmedCalls, order.ID)
	s.LastRecipient = recipient
}

func (s *NotifierStub) OrderRejected(order *model.TireOrder, recipient, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.OrderRejectedCalls = append(s.OrderRejectedCalls, order.ID)
	s.LastRecipient = recipient
	s.LastReason = reason
}
