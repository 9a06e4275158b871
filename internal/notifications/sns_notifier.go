package notifications

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

const alertSubject = "QuickFix Alert"

type SNSNotifier struct {
	client   *sns.Client
	topicARN string
}

func NewSNSNotifier(awsCfg aws.Config, topicARN string) *SNSNotifier {
	return &SNSNotifier{
		client:   sns.NewFromConfig(awsCfg),
		topicARN: topicARN,
	}
}

func (n *SNSNotifier) Send(ctx context.Context, message string) error {
	_, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Message:  aws.String(message),
		Subject:  aws.String(alertSubject),
	})
	return err
}
