package observability

import (
	"errors"
	"strings"
	"time"

	"github.com/quickfix-labs/quickfix/internal/repo"
)

// ObserveStore times one logical storage operation and classifies its
// error, if any. ErrNotFound is a valid result, not an error class.
func (p *Prom) ObserveStore(op string, fn func() error) error {
	start := time.Now()
	err := fn()

	status := "ok"
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		status = "error"
		p.StoreErrors.WithLabelValues(op, classifyStoreErr(err)).Inc()
	}
	p.StoreOpDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
	return err
}

func classifyStoreErr(err error) string {
	switch {
	case errors.Is(err, repo.ErrConflict):
		return "conflict"
	case errors.Is(err, repo.ErrUnavailable):
		return "unavailable"
	case errors.Is(err, repo.ErrInvalid):
		return "invalid"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return "timeout"
	case strings.Contains(msg, "connection"):
		return "connection"
	default:
		return "unknown"
	}
}
