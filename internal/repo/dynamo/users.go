package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/quickfix-labs/quickfix/internal/domain/user"
	"github.com/quickfix-labs/quickfix/internal/repo"
)

func (s *Store) GetUser(ctx context.Context, username string) (user.User, error) {
	var raw map[string]types.AttributeValue

	err := s.withRetry(ctx, "users.get", username, func(ctx context.Context) error {
		out, err := s.db.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(s.cfg.UsersTable),
			Key: map[string]types.AttributeValue{
				"username": &types.AttributeValueMemberS{Value: username},
			},
			ConsistentRead: aws.Bool(true),
		})
		if err != nil {
			return err
		}
		raw = out.Item
		return nil
	})
	if err != nil {
		return user.User{}, err
	}

	if len(raw) == 0 {
		return user.User{}, repo.ErrNotFound
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return user.User{}, fmt.Errorf("users.get %s: decode: %w", username, err)
	}

	return user.User{
		Username:     it.Username,
		PasswordHash: it.Password,
		Role:         user.Role(it.UserType),
		CreatedAt:    it.CreatedAt,
	}, nil
}

func (s *Store) CreateUser(ctx context.Context, u user.User) error {
	item, err := attributevalue.MarshalMap(userItem{
		Username:  u.Username,
		Password:  u.PasswordHash,
		UserType:  string(u.Role),
		CreatedAt: u.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("users.create %s: encode: %w", u.Username, err)
	}

	return s.withRetry(ctx, "users.create", u.Username, func(ctx context.Context) error {
		_, err := s.db.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           aws.String(s.cfg.UsersTable),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(username)"),
		})
		return err
	})
}
