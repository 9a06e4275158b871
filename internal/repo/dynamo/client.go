// Package dynamo is the remote backend: one DynamoDB table per entity with
// the same read/write contract as the memory backend. Writes that need
// uniqueness use conditional puts; reads that need the whole table scan it.
package dynamo

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/quickfix-labs/quickfix/internal/repo"
)

type Config struct {
	UsersTable    string
	ServicesTable string
	BookingsTable string

	// OpTimeout bounds each attempt against the table service.
	OpTimeout time.Duration
	// MaxAttempts bounds retries of transient failures.
	MaxAttempts int
}

type Store struct {
	db  *dynamodb.Client
	cfg Config
	log *slog.Logger
}

func NewStore(awsCfg aws.Config, cfg Config, log *slog.Logger) *Store {
	if cfg.OpTimeout <= 0 {
		cfg.OpTimeout = 2 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}

	// The retry policy lives in this package; keep the SDK from stacking
	// its own retries underneath it.
	db := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		o.RetryMaxAttempts = 1
	})

	return &Store{db: db, cfg: cfg, log: log}
}

// CredentialsProbe answers whether the ambient AWS credentials can sign a
// request at all, via STS GetCallerIdentity. Used once at startup to pick
// the storage mode.
func CredentialsProbe(awsCfg aws.Config) repo.Probe {
	client := sts.NewFromConfig(awsCfg)

	return func(ctx context.Context) error {
		_, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
		return err
	}
}
