package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/quickfix-labs/quickfix/internal/domain/service"
)

func (s *Store) ListServices(ctx context.Context) ([]service.Service, error) {
	items, err := s.scanServices(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]service.Service, 0, len(items))
	for _, raw := range items {
		svc, err := unmarshalService(raw)
		if err != nil {
			return nil, fmt.Errorf("services.list: %w", err)
		}
		out = append(out, svc)
	}
	return out, nil
}

// ListServicesByCategory is a scan with a client-side exact-match filter,
// same as the memory backend. The tables are small enough that an index
// is not worth carrying.
func (s *Store) ListServicesByCategory(ctx context.Context, category string) ([]service.Service, error) {
	all, err := s.ListServices(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]service.Service, 0)
	for _, svc := range all {
		if svc.Category == category {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (s *Store) AddService(ctx context.Context, svc service.Service) error {
	item, err := marshalService(svc)
	if err != nil {
		return fmt.Errorf("services.add %s: encode: %w", svc.ID, err)
	}

	return s.withRetry(ctx, "services.add", svc.ID, func(ctx context.Context) error {
		_, err := s.db.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(s.cfg.ServicesTable),
			Item:      item,
		})
		return err
	})
}

func (s *Store) scanServices(ctx context.Context) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue

	err := s.withRetry(ctx, "services.scan", "*", func(ctx context.Context) error {
		items = items[:0]

		p := dynamodb.NewScanPaginator(s.db, &dynamodb.ScanInput{
			TableName: aws.String(s.cfg.ServicesTable),
		})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return err
			}
			items = append(items, page.Items...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
