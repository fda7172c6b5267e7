package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSQS serves one batch of messages and then cancels the consumer.
type fakeSQS struct {
	mu       sync.Mutex
	sent     []*sqs.SendMessageInput
	batch    []types.Message
	deleted  []string
	receives int
	cancel   context.CancelFunc
}

func (f *fakeSQS) GetQueueUrl(_ context.Context, in *sqs.GetQueueUrlInput, _ ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error) {
	return &sqs.GetQueueUrlOutput{QueueUrl: aws.String("https://sqs.local/" + aws.ToString(in.QueueName))}, nil
}

func (f *fakeSQS) SendMessage(_ context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, in)
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func (f *fakeSQS) ReceiveMessage(_ context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.receives++
	if f.receives > 1 {
		f.cancel()
		return &sqs.ReceiveMessageOutput{}, nil
	}
	return &sqs.ReceiveMessageOutput{Messages: f.batch}, nil
}

func (f *fakeSQS) DeleteMessage(_ context.Context, in *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, aws.ToString(in.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func TestSQSBusPublish(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fake := &fakeSQS{}
	bus, err := NewSQSBus(ctx, fake, "reviews-new-queue", zap.NewNop())
	require.NoError(t, err)

	review, flight := sampleReview()
	require.NoError(t, bus.Publish(ctx, NewReviewEventFrom(review, flight)))

	require.Len(t, fake.sent, 1)
	sent := fake.sent[0]
	require.Equal(t, "https://sqs.local/reviews-new-queue", aws.ToString(sent.QueueUrl))
	require.Equal(t, SchemaVersion, aws.ToString(sent.MessageAttributes[SchemaVersionKey].StringValue))

	e, err := Decode([]byte(aws.ToString(sent.MessageBody)))
	require.NoError(t, err)
	require.Equal(t, review.ID.String(), e.ReviewID)
}

func TestSQSBusDeletesOnlySettledMessages(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	review, flight := sampleReview()
	good, err := NewReviewEventFrom(review, flight).Encode()
	require.NoError(t, err)

	fake := &fakeSQS{
		cancel: cancel,
		batch: []types.Message{
			{MessageId: aws.String("ok"), ReceiptHandle: aws.String("r-ok"), Body: aws.String(string(good))},
			{MessageId: aws.String("bad"), ReceiptHandle: aws.String("r-bad"), Body: aws.String("{")},
			{MessageId: aws.String("fail"), ReceiptHandle: aws.String("r-fail"), Body: aws.String(string(good))},
		},
	}
	bus, err := NewSQSBus(ctx, fake, "q", zap.NewNop())
	require.NoError(t, err)

	h := func(_ context.Context, msg Message) error {
		if _, err := Decode(msg.Body); err != nil {
			return err
		}
		if msg.Key == "fail" {
			return errors.New("store unavailable")
		}
		return nil
	}

	require.NoError(t, bus.Subscribe(ctx, h))
	require.ElementsMatch(t, []string{"r-ok", "r-bad"}, fake.deleted)
}
