package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/quickfix-labs/quickfix/internal/notifications"
)

// notifyBestEffort fires a notification for an action that already
// committed. A sink failure is logged and swallowed: it must never undo
// or fail the triggering request.
func notifyBestEffort(ctx *gin.Context, n notifications.Notifier, log *slog.Logger, message string) {
	if n == nil {
		return
	}

	if err := n.Send(ctx.Request.Context(), message); err != nil {
		log.Warn("notification failed", "message", message, "err", err)
	}
}
