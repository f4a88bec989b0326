package aws

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-signup/internal/models"
)

type fakeSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

const topic = "arn:aws:sns:eu-west-1:123456789012:roster"

func TestSNSPublisher_PublishRosterEvent(t *testing.T) {
	fake := &fakeSNS{}
	pub := NewSNSPublisherWithClient(fake, topic)

	event := models.RosterEvent{
		ID:         "evt-1",
		Type:       models.RosterEventSignedUp,
		Activity:   "Chess Club",
		Email:      "test_student@example.com",
		OccurredAt: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, pub.PublishRosterEvent(context.Background(), event))

	require.Len(t, fake.inputs, 1)
	in := fake.inputs[0]
	assert.Equal(t, topic, *in.TopicArn)
	assert.Equal(t, "participant.signed_up", *in.MessageAttributes["event_type"].StringValue)
	assert.Equal(t, "Chess Club", *in.MessageAttributes["activity"].StringValue)

	var decoded models.RosterEvent
	require.NoError(t, json.Unmarshal([]byte(*in.Message), &decoded))
	assert.Equal(t, event, decoded)
}

func TestSNSPublisher_PublishError(t *testing.T) {
	fake := &fakeSNS{err: errors.New("throttled")}
	pub := NewSNSPublisherWithClient(fake, topic)

	err := pub.PublishRosterEvent(context.Background(), models.RosterEvent{Type: models.RosterEventUnregistered})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
	assert.Contains(t, err.Error(), "participant.unregistered")
}
