package email

import (
	"context"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/kafka"
	"go.uber.org/zap"
)

// Sender delivers booking notifications. Delivery is a structured log line
// until an outbound mail transport is configured.
type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		s.logger.Warn("notification without recipient", zap.String("type", event.Type), zap.Int64("booking_id", event.BookingID))
		return nil
	}
	s.logger.Info("send email",
		zap.String("to", event.Email),
		zap.String("subject", Subject(event)),
		zap.String("reference", event.Reference),
		zap.String("total", domain.Dollars(event.TotalPriceCents)),
	)
	return nil
}

func Subject(event kafka.BookingEvent) string {
	switch event.Type {
	case kafka.EventBookingCreated:
		return "Your FanZone booking is pending"
	case kafka.EventBookingConfirmed:
		return "Your FanZone booking is confirmed"
	case kafka.EventBookingCancelled:
		return "Your FanZone booking was cancelled"
	case kafka.EventPackageBooked:
		return "Your FanZone package is booked"
	}
	return "FanZone booking update"
}
