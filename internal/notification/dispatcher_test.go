package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/slt-fleet/tireflow/internal/domain/model"
)

type capturingSender struct {
	mu    sync.Mutex
	sends []capturedSend
	err   error
}

type capturedSend struct {
	to      []string
	subject string
	body    string
}

func (s *capturingSender) Send(_ context.Context, to []string, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sends = append(s.sends, capturedSend{to: to, subject: subject, body: body})
	return s.err
}

func (s *capturingSender) all() []capturedSend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]capturedSend(nil), s.sends...)
}

func testDispatcher(sender Sender) *Dispatcher {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewDispatcher(Config{
		ManagerEmail:    "manager@example.com",
		TTOEmail:        "tto@example.com",
		EngineerEmail:   "engineer@example.com",
		FrontendBaseURL: "http://frontend.local",
		SendTimeout:     time.Second,
		Workers:         2,
		QueueSize:       8,
	}, sender, logger)
}

func TestDispatcherDeliversStageNotifications(t *testing.T) {
	sender := &capturingSender{}
	d := testDispatcher(sender)
	d.Start()

	request := &model.TireRequest{ID: "req-1", VehicleNo: "WP-1234", Email: "user@example.com"}
	d.RequestSubmitted(request)
	d.ManagerApproved(request)
	d.TTOApproved(request)
	d.EngineerApproved(request)
	d.Stop()

	sends := sender.all()
	if len(sends) != 4 {
		t.Fatalf("expected 4 deliveries, got %d", len(sends))
	}

	recipients := map[string]bool{}
	for _, send := range sends {
		for _, to := range send.to {
			recipients[to] = true
		}
		if !strings.Contains(send.body, "WP-1234") && !strings.Contains(send.body, "req-1") {
			t.Errorf("expected message to identify the request, got %q", send.body)
		}
	}
	for _, expected := range []string{"manager@example.com", "tto@example.com", "engineer@example.com", "user@example.com"} {
		if !recipients[expected] {
			t.Errorf("expected a delivery to %s", expected)
		}
	}
}

func TestDispatcherEmbedsDeepLinks(t *testing.T) {
	sender := &capturingSender{}
	d := testDispatcher(sender)
	d.Start()

	d.EngineerApproved(&model.TireRequest{ID: "req-9", VehicleNo: "WP-1", Email: "user@example.com"})
	d.Stop()

	sends := sender.all()
	if len(sends) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(sends))
	}
	if !strings.Contains(sends[0].body, "http://frontend.local/order-tires/req-9") {
		t.Fatalf("expected order link in body, got %q", sends[0].body)
	}
}

func TestDispatcherAbsorbsTransportFailure(t *testing.T) {
	sender := &capturingSender{err: errors.New("smtp down")}
	d := testDispatcher(sender)
	d.Start()

	// Must not panic or propagate anything to the caller.
	d.ManagerApproved(&model.TireRequest{ID: "req-2", VehicleNo: "WP-2"})
	d.Stop()

	if len(sender.all()) != 1 {
		t.Fatal("expected the failed delivery to have been attempted")
	}
}

func TestDispatcherOrderNotifications(t *testing.T) {
	sender := &capturingSender{}
	d := testDispatcher(sender)
	d.Start()

	order := &model.TireOrder{ID: "ord-1", RequestID: "req-1", VehicleNo: "WP-1234", TireBrand: "Dunlop", TireSize: "265/65R17", Quantity: 4, VendorEmail: "seller@example.com"}
	d.OrderCreated(order)
	d.OrderConfirmed(order, "user@example.com")
	d.OrderRejected(order, "user@example.com", "out of stock")
	d.OrderConfirmed(order, "") // skipped, no recipient
	d.Stop()

	sends := sender.all()
	if len(sends) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(sends))
	}

	var rejected *capturedSend
	for i := range sends {
		if strings.Contains(sends[i].subject, "Rejected") {
			rejected = &sends[i]
		}
	}
	if rejected == nil {
		t.Fatal("expected a rejection notice")
	}
	if !strings.Contains(rejected.body, "out of stock") {
		t.Fatalf("expected rejection reason in body, got %q", rejected.body)
	}
}

func TestDispatcherDropsWhenStopped(t *testing.T) {
	sender := &capturingSender{}
	d := testDispatcher(sender)
	d.Start()
	d.Stop()

	d.ManagerApproved(&model.TireRequest{ID: "req-3"})
	if len(sender.all()) != 0 {
		t.Fatal("expected no delivery after stop")
	}
}

func TestSMTPSenderRequiresConfiguration(t *testing.T) {
	sender := NewSMTPSender(SMTPConfig{})
	if sender.IsConfigured() {
		t.Fatal("expected empty config to be reported unconfigured")
	}
	if err := sender.Send(context.Background(), []string{"a@b"}, "s", "b"); err == nil {
		t.Fatal("expected error for unconfigured transport")
	}
}

func TestBuildMessageHeaders(t *testing.T) {
	msg := string(buildMessage("from@example.com", []string{"a@example.com", "b@example.com"}, "Hello", "<p>hi</p>"))
	for _, want := range []string{
		"To: a@example.com, b@example.com\r\n",
		"From: from@example.com\r\n",
		"Subject: Hello\r\n",
		"Content-Type: text/html; charset=UTF-8\r\n",
		"<p>hi</p>",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected message to contain %q", want)
		}
	}
}
