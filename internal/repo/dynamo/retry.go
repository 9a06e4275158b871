package dynamo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/quickfix-labs/quickfix/internal/repo"
)

// withRetry runs fn with a per-attempt timeout and retries transient
// failures with capped exponential backoff. Conditional-check failures and
// other permanent errors return immediately; exhaustion surfaces as
// repo.ErrUnavailable with the operation and key preserved for logs.
func (s *Store) withRetry(ctx context.Context, op, key string, fn func(ctx context.Context) error) error {
	var err error

	for attempt := 0; attempt < s.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryBackoff(attempt)):
			case <-ctx.Done():
				return fmt.Errorf("%s %s: %v: %w", op, key, ctx.Err(), repo.ErrUnavailable)
			}
		}

		actx, cancel := context.WithTimeout(ctx, s.cfg.OpTimeout)
		err = fn(actx)
		cancel()

		if err == nil {
			return nil
		}

		if !retryable(err) {
			return classify(op, key, err)
		}

		s.log.Warn("retrying remote table call", "op", op, "key", key, "attempt", attempt+1, "err", err)
	}

	return fmt.Errorf("%s %s: %v: %w", op, key, err, repo.ErrUnavailable)
}

func classify(op, key string, err error) error {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return repo.ErrConflict
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorFault() == smithy.FaultClient {
		return fmt.Errorf("%s %s: %v: %w", op, key, err, repo.ErrInvalid)
	}

	return fmt.Errorf("%s %s: %v: %w", op, key, err, repo.ErrUnavailable)
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ProvisionedThroughputExceededException",
			"ThrottlingException",
			"RequestLimitExceeded",
			"InternalServerError",
			"ServiceUnavailable":
			return true
		}
		return apiErr.ErrorFault() == smithy.FaultServer
	}

	// transport-level failures (connection refused, DNS) get another try
	return true
}

func retryBackoff(attempt int) time.Duration {
	base := 100 * time.Millisecond
	capDelay := 2 * time.Second

	delay := time.Duration(float64(base) * math.Pow(2, float64(attempt-1)))
	if delay > capDelay {
		delay = capDelay
	}

	// small jitter to avoid thundering herd
	delay += time.Duration(rand.Intn(50)) * time.Millisecond
	return delay
}
