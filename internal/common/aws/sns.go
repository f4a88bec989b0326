// internal/common/aws/sns.go
package aws

import (
	"context"
	"encoding/json"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"activity-signup/internal/models"
)

// SNSAPI is the subset of the SNS client used here.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSPublisher publishes roster events to a single SNS topic.
type SNSPublisher struct {
	client   SNSAPI
	topicARN string
}

func NewSNSPublisher(ctx context.Context, region, topicARN string) (*SNSPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSNSPublisherWithClient(sns.NewFromConfig(cfg), topicARN), nil
}

func NewSNSPublisherWithClient(client SNSAPI, topicARN string) *SNSPublisher {
	return &SNSPublisher{client: client, topicARN: topicARN}
}

// PublishRosterEvent sends the event as a JSON message. The event type and
// activity are copied into message attributes for subscription filtering.
func (s *SNSPublisher) PublishRosterEvent(ctx context.Context, event models.RosterEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal roster event: %w", err)
	}

	_, err = s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(s.topicARN),
		Message:  awssdk.String(string(body)),
		Subject:  awssdk.String(string(event.Type)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {DataType: awssdk.String("String"), StringValue: awssdk.String(string(event.Type))},
			"activity":   {DataType: awssdk.String("String"), StringValue: awssdk.String(event.Activity)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", event.Type, s.topicARN, err)
	}
	return nil
}
