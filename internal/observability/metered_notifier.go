package observability

import (
	"context"
	"errors"

	"github.com/quickfix-labs/quickfix/internal/notifications"
)

// MeteredNotifier counts notification outcomes. It sits outside the
// circuit breaker so rejected sends are visible too.
type MeteredNotifier struct {
	inner notifications.Notifier
	prom  *Prom
}

func NewMeteredNotifier(inner notifications.Notifier, prom *Prom) *MeteredNotifier {
	return &MeteredNotifier{inner: inner, prom: prom}
}

func (n *MeteredNotifier) Send(ctx context.Context, message string) error {
	err := n.inner.Send(ctx, message)

	switch {
	case err == nil:
		n.prom.NotificationsTotal.WithLabelValues("ok").Inc()
	case errors.Is(err, notifications.ErrCircuitOpen):
		n.prom.NotificationsTotal.WithLabelValues("circuit_open").Inc()
	default:
		n.prom.NotificationsTotal.WithLabelValues("error").Inc()
	}

	return err
}
