package notification

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/slt-fleet/tireflow/internal/config"
	"github.com/slt-fleet/tireflow/internal/usecase"
)

// Module wires the notification dispatcher and its SMTP transport.
var Module = fx.Options(
	fx.Provide(
		newSender,
		newDispatcher,
		func(d *Dispatcher) usecase.Notifier { return d },
	),
	fx.Invoke(registerLifecycle),
)

type senderParams struct {
	fx.In

	Config *config.Config
}

func newSender(p senderParams) Sender {
	return NewSMTPSender(SMTPConfig{
		Host:     p.Config.SMTPHost,
		Port:     p.Config.SMTPPort,
		Username: p.Config.SMTPUsername,
		Password: p.Config.SMTPPassword,
		From:     p.Config.SMTPFrom,
	})
}

type dispatcherParams struct {
	fx.In

	Config *config.Config
	Sender Sender
	Logger *slog.Logger
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	return NewDispatcher(Config{
		ManagerEmail:    p.Config.ManagerEmail,
		TTOEmail:        p.Config.TTOEmail,
		EngineerEmail:   p.Config.EngineerEmail,
		FrontendBaseURL: p.Config.FrontendBaseURL,
		SendTimeout:     p.Config.NotifyTimeout,
		Workers:         p.Config.NotifyWorkers,
		QueueSize:       p.Config.NotifyQueueSize,
	}, p.Sender, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, dispatcher *Dispatcher) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			dispatcher.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			dispatcher.Stop()
			return nil
		},
	})
}
