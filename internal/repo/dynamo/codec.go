package dynamo

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/quickfix-labs/quickfix/internal/domain/service"
	"github.com/shopspring/decimal"
)

// Attribute names mirror the table schema: username / password / user_type,
// service_id / name / category / price / provider, booking_id / username /
// provider_id / date / time / notes.

type userItem struct {
	Username  string    `dynamodbav:"username"`
	Password  string    `dynamodbav:"password"`
	UserType  string    `dynamodbav:"user_type"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}

type bookingItem struct {
	BookingID  string    `dynamodbav:"booking_id"`
	Username   string    `dynamodbav:"username"`
	ProviderID int       `dynamodbav:"provider_id"`
	Date       string    `dynamodbav:"date"`
	Time       string    `dynamodbav:"time"`
	Notes      string    `dynamodbav:"notes"`
	CreatedAt  time.Time `dynamodbav:"created_at"`
}

type serviceItem struct {
	ServiceID string    `dynamodbav:"service_id"`
	Name      string    `dynamodbav:"name"`
	Category  string    `dynamodbav:"category"`
	Provider  string    `dynamodbav:"provider"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}

// marshalService writes price as a DynamoDB number built from the decimal's
// canonical string, so 19.99 is stored as 19.99, not a float64 approximation.
func marshalService(svc service.Service) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(serviceItem{
		ServiceID: svc.ID,
		Name:      svc.Name,
		Category:  svc.Category,
		Provider:  svc.Provider,
		CreatedAt: svc.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	item["price"] = &types.AttributeValueMemberN{Value: svc.Price.String()}
	return item, nil
}

func unmarshalService(item map[string]types.AttributeValue) (service.Service, error) {
	var it serviceItem
	if err := attributevalue.UnmarshalMap(item, &it); err != nil {
		return service.Service{}, err
	}

	svc := service.Service{
		ID:        it.ServiceID,
		Name:      it.Name,
		Category:  it.Category,
		Provider:  it.Provider,
		CreatedAt: it.CreatedAt,
	}

	n, ok := item["price"].(*types.AttributeValueMemberN)
	if !ok {
		return service.Service{}, fmt.Errorf("service %s: price attribute is not a number", it.ServiceID)
	}

	price, err := decimal.NewFromString(n.Value)
	if err != nil {
		return service.Service{}, fmt.Errorf("service %s: parse price: %w", it.ServiceID, err)
	}
	svc.Price = price

	return svc, nil
}
