// Package notifications is the fire-and-forget message sink. Local mode
// writes to the log; remote mode publishes to an SNS topic. Failures are
// the caller's to log and never to propagate: a signup or booking that
// already committed must not be rolled back by a dead notifier.
package notifications

import "context"

type Notifier interface {
	Send(ctx context.Context, message string) error
}
