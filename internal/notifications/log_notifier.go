package notifications

import (
	"context"
	"log/slog"
)

// LogNotifier is the local-mode sink: the message goes to the process log
// and nowhere else.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(ctx context.Context, message string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	n.log.InfoContext(ctx, "notification", "message", message)
	return nil
}
