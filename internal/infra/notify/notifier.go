package notify

import (
	"context"
	"log/slog"

	"slotbooker/internal/domain/booking"
)

// LogNotifier stands in for the external email/SMS sender. Delivery is
// best-effort; nothing downstream depends on it succeeding.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) BookingCreated(_ context.Context, b *booking.Booking) error {
	n.logger.Info("notification: booking created",
		"booking_id", b.ID(),
		"slot_id", b.SlotID(),
		"customer_email", b.Contact().Email(),
	)
	return nil
}

func (n *LogNotifier) BookingCancelled(_ context.Context, b *booking.Booking) error {
	n.logger.Info("notification: booking cancelled",
		"booking_id", b.ID(),
		"slot_id", b.SlotID(),
		"customer_email", b.Contact().Email(),
	)
	return nil
}
