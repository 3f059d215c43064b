package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/slt-fleet/tireflow/internal/domain/model"
)

// Config holds the recipient and delivery settings previously scattered as
// literals across the original call sites.
type Config struct {
	ManagerEmail    string
	TTOEmail        string
	EngineerEmail   string
	FrontendBaseURL string
	SendTimeout     time.Duration
	Workers         int
	QueueSize       int
}

type message struct {
	kind    string
	to      []string
	subject string
	body    string
}

// Dispatcher builds stage notifications and delivers them asynchronously
// through a bounded queue and a small worker pool. Transport errors are
// logged and never escape to the caller; a committed state transition is
// never affected by notification outcome.
type Dispatcher struct {
	cfg    Config
	sender Sender
	logger *slog.Logger

	jobs    chan message
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	stopped bool
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(cfg Config, sender Sender, logger *slog.Logger) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 15 * time.Second
	}
	return &Dispatcher{
		cfg:    cfg,
		sender: sender,
		logger: logger,
		jobs:   make(chan message, cfg.QueueSize),
	}
}

// Start launches the delivery workers.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true

	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Stop drains the queue and waits for in-flight deliveries to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.jobs)
	started := d.started
	d.mu.Unlock()

	if started {
		d.wg.Wait()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for msg := range d.jobs {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg message) {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.SendTimeout)
	defer cancel()

	if err := d.sender.Send(ctx, msg.to, msg.subject, msg.body); err != nil {
		d.logger.Error("notification delivery failed",
			slog.String("kind", msg.kind),
			slog.String("subject", msg.subject),
			slog.String("error", err.Error()),
		)
		return
	}
	d.logger.Info("notification delivered",
		slog.String("kind", msg.kind),
		slog.String("subject", msg.subject),
	)
}

// enqueue hands a message to the worker pool. A full queue drops the message
// with a warning; notification loss is tolerated by the workflow design.
func (d *Dispatcher) enqueue(msg message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		d.logger.Warn("notification dropped, dispatcher stopped", slog.String("kind", msg.kind))
		return
	}
	select {
	case d.jobs <- msg:
	default:
		d.logger.Warn("notification dropped, queue full", slog.String("kind", msg.kind))
	}
}

func (d *Dispatcher) render(kind, tmpl string, data interface{}, to []string, subject string) {
	body, err := renderTemplate(tmpl, data)
	if err != nil {
		d.logger.Error("notification render failed",
			slog.String("kind", kind),
			slog.String("error", err.Error()),
		)
		return
	}
	d.enqueue(message{kind: kind, to: to, subject: subject, body: body})
}

// RequestSubmitted notifies the manager about a newly submitted request.
func (d *Dispatcher) RequestSubmitted(request *model.TireRequest) {
	d.render("request_submitted", managerNewRequestTemplate, requestData{
		RequestID:     request.ID,
		VehicleNo:     request.VehicleNo,
		UserSection:   request.UserSection,
		TireSize:      request.TireSize,
		NoOfTires:     request.NoOfTires,
		DashboardLink: d.cfg.FrontendBaseURL + "/manager-dashboard",
	}, []string{d.cfg.ManagerEmail}, fmt.Sprintf("New Tire Request #%s", request.ID))
}

// ManagerApproved notifies the TTO that a request passed the manager stage.
func (d *Dispatcher) ManagerApproved(request *model.TireRequest) {
	d.render("manager_approved", ttoReviewTemplate, requestData{
		RequestID:     request.ID,
		VehicleNo:     request.VehicleNo,
		DashboardLink: d.cfg.FrontendBaseURL + "/tto-dashboard",
	}, []string{d.cfg.TTOEmail}, fmt.Sprintf("Tire Request Approved - Action Required #%s", request.ID))
}

// TTOApproved notifies the engineer that a request passed the TTO stage.
func (d *Dispatcher) TTOApproved(request *model.TireRequest) {
	d.render("tto_approved", engineerReviewTemplate, requestData{
		RequestID:     request.ID,
		VehicleNo:     request.VehicleNo,
		DashboardLink: d.cfg.FrontendBaseURL + "/engineer-dashboard",
	}, []string{d.cfg.EngineerEmail}, fmt.Sprintf("Urgent: Tire Replacement Request #%s", request.ID))
}

// EngineerApproved sends the submitter the order-creation link.
func (d *Dispatcher) EngineerApproved(request *model.TireRequest) {
	d.render("engineer_approved", requestApprovedTemplate, requestData{
		RequestID: request.ID,
		VehicleNo: request.VehicleNo,
		OrderLink: d.cfg.FrontendBaseURL + "/order-tires/" + request.ID,
	}, []string{request.Email}, "Your Tire Request is Approved - Order Now")
}

// OrderCreated notifies the seller about a new order.
func (d *Dispatcher) OrderCreated(order *model.TireOrder) {
	d.render("order_created", sellerOrderTemplate, orderData{
		OrderID:       order.ID,
		RequestID:     order.RequestID,
		VehicleNo:     order.VehicleNo,
		TireBrand:     order.TireBrand,
		TireSize:      order.TireSize,
		Quantity:      order.Quantity,
		DashboardLink: d.cfg.FrontendBaseURL + "/seller-dashboard",
	}, []string{order.VendorEmail}, fmt.Sprintf("New Tire Order - Processing Required - Order #%s", order.ID))
}

// OrderConfirmed notifies the requester about a confirmed order.
func (d *Dispatcher) OrderConfirmed(order *model.TireOrder, recipient string) {
	if recipient == "" {
		d.logger.Warn("order confirmation skipped, no recipient", slog.String("order_id", order.ID))
		return
	}
	d.render("order_confirmed", orderConfirmedTemplate, orderData{
		OrderID:   order.ID,
		VehicleNo: order.VehicleNo,
	}, []string{recipient}, fmt.Sprintf("Your Tire Order is Confirmed! Order ID: %s", order.ID))
}

// OrderRejected notifies the requester about a rejected order.
func (d *Dispatcher) OrderRejected(order *model.TireOrder, recipient, reason string) {
	if recipient == "" {
		d.logger.Warn("order rejection notice skipped, no recipient", slog.String("order_id", order.ID))
		return
	}
	d.render("order_rejected", orderRejectedTemplate, orderData{
		OrderID:   order.ID,
		VehicleNo: order.VehicleNo,
		Reason:    reason,
	}, []string{recipient}, fmt.Sprintf("Your Tire Order is Rejected - Order ID: %s", order.ID))
}
