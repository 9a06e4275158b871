package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/quickfix-labs/quickfix/internal/domain/booking"
)

func (s *Store) CreateBooking(ctx context.Context, b booking.Booking) error {
	item, err := attributevalue.MarshalMap(bookingItem{
		BookingID:  b.ID,
		Username:   b.Username,
		ProviderID: b.ProviderID,
		Date:       b.Date,
		Time:       b.Time,
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("bookings.create %s: encode: %w", b.ID, err)
	}

	return s.withRetry(ctx, "bookings.create", b.ID, func(ctx context.Context) error {
		_, err := s.db.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(s.cfg.BookingsTable),
			Item:      item,
			// Opaque UUID keys make collisions a bug, not an expected case.
			ConditionExpression: aws.String("attribute_not_exists(booking_id)"),
		})
		return err
	})
}

// ListBookingsForUser scans the whole table and filters client-side.
// Deliberately unindexed and unpaginated at this scale.
func (s *Store) ListBookingsForUser(ctx context.Context, username string) ([]booking.Booking, error) {
	var items []map[string]types.AttributeValue

	err := s.withRetry(ctx, "bookings.scan", username, func(ctx context.Context) error {
		items = items[:0]

		p := dynamodb.NewScanPaginator(s.db, &dynamodb.ScanInput{
			TableName: aws.String(s.cfg.BookingsTable),
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

	out := make([]booking.Booking, 0)
	for _, raw := range items {
		var it bookingItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, fmt.Errorf("bookings.scan: decode: %w", err)
		}
		if it.Username != username {
			continue
		}
		out = append(out, booking.Booking{
			ID:         it.BookingID,
			Username:   it.Username,
			ProviderID: it.ProviderID,
			Date:       it.Date,
			Time:       it.Time,
			Notes:      it.Notes,
			CreatedAt:  it.CreatedAt,
		})
	}
	return out, nil
}
