package notify

import (
	"context"
	"log/slog"

	"github.com/tulsagolf/teetimes/internal/kafka"
)

// Sender delivers alert notifications. The SMS gateway integration is not
// wired up yet, so deliveries are logged.
// TODO: plug in the Twilio sender once the account is provisioned.
type Sender struct {
	logger *slog.Logger
}

func NewSender(logger *slog.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.TeeTimeEvent) error {
	s.logger.Info("send sms",
		"phone", event.Phone,
		"course", event.Course,
		"date", event.Date,
		"time", event.Time,
		"spots", event.AvailableSpots,
	)
	return nil
}
