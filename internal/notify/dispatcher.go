package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/trimlylabs/trimly-api/internal/metrics"
)

const sendTimeout = 15 * time.Second

// ConfirmationMarker flips the reservation's confirmation_sent flag
// after a successful confirmation email.
type ConfirmationMarker interface {
	MarkConfirmationSent(ctx context.Context, reservationID uint) error
}

// Dispatcher delivers notification events off the request path on a
// bounded queue. Failures are logged and counted, never propagated.
type Dispatcher struct {
	notifier Notifier
	marker   ConfirmationMarker
	log      *zap.Logger
	queue    chan Event
}

func NewDispatcher(notifier Notifier, marker ConfirmationMarker, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		marker:   marker,
		log:      log,
		queue:    make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		d.deliver(ev)
	}
}

func (d *Dispatcher) deliver(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	var err error
	switch ev.Kind {
	case KindConfirmation:
		err = d.notifier.SendConfirmation(ctx, &ev.Reservation, ev.Email)
	case KindCancellation:
		err = d.notifier.SendCancellation(ctx, &ev.Reservation, ev.Email)
	}

	if err != nil {
		metrics.NotificationFailures.Inc()
		d.log.Warn("notification failed",
			zap.String("kind", string(ev.Kind)),
			zap.Uint("reservation_id", ev.Reservation.ID),
			zap.Error(err),
		)
		return
	}

	if ev.Kind == KindConfirmation {
		if err := d.marker.MarkConfirmationSent(ctx, ev.Reservation.ID); err != nil {
			d.log.Warn("failed to mark confirmation sent",
				zap.Uint("reservation_id", ev.Reservation.ID),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if ev.Email == "" {
		return
	}

	select {
	case d.queue <- ev:
	default:
		metrics.NotificationFailures.Inc()
		d.log.Warn("notification queue full, dropping event",
			zap.String("kind", string(ev.Kind)),
		)
	}
}
