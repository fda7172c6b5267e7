package event

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"
)

// SQSAPI is the subset of *sqs.Client used by SQSBus.
type SQSAPI interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// NewSQSClient builds a client from the default AWS credential chain. A
// non-empty endpoint overrides the resolved one (localstack and friends).
func NewSQSClient(ctx context.Context, endpoint string) (*sqs.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS SDK config: %w", err)
	}

	baseEndpoint := cfg.BaseEndpoint
	if endpoint != "" {
		baseEndpoint = aws.String(endpoint)
	}

	return sqs.New(sqs.Options{
		Region:       cfg.Region,
		Credentials:  cfg.Credentials,
		HTTPClient:   cfg.HTTPClient,
		BaseEndpoint: baseEndpoint,
	}), nil
}

const (
	sqsBatchSize      = 10
	sqsWaitSeconds    = 10
	sqsReceiveBackoff = 2 * time.Second
)

// SQSBus uses one queue. Messages the handler fails on are simply not
// deleted, so the queue's visibility timeout and redrive policy decide what
// happens next.
type SQSBus struct {
	client   SQSAPI
	queueURL string
	log      *zap.Logger
}

func NewSQSBus(ctx context.Context, client SQSAPI, queueName string, log *zap.Logger) (*SQSBus, error) {
	resp, err := client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{QueueName: aws.String(queueName)})
	if err != nil {
		return nil, fmt.Errorf("get SQS queue URL for %s: %w", queueName, err)
	}

	return &SQSBus{
		client:   client,
		queueURL: aws.ToString(resp.QueueUrl),
		log:      log.With(zap.String("bus", "sqs"), zap.String("queue", queueName)),
	}, nil
}

func (b *SQSBus) Publish(ctx context.Context, e NewReviewEvent) error {
	msg, err := newMessage(e)
	if err != nil {
		return err
	}

	attrs := make(map[string]types.MessageAttributeValue, len(msg.Attributes))
	for k, v := range msg.Attributes {
		attrs[k] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(v),
		}
	}

	_, err = b.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:          aws.String(b.queueURL),
		MessageBody:       aws.String(string(msg.Body)),
		MessageAttributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("publish %s to SQS: %w", e.Event, err)
	}

	b.log.Debug("Event published", zap.String("review_id", e.ReviewID))
	return nil
}

func (b *SQSBus) Subscribe(ctx context.Context, h Handler) error {
	b.log.Info("SQS consumer started")

	for {
		if ctx.Err() != nil {
			b.log.Info("SQS consumer stopped")
			return nil
		}

		resp, err := b.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:              aws.String(b.queueURL),
			MaxNumberOfMessages:   sqsBatchSize,
			WaitTimeSeconds:       sqsWaitSeconds,
			MessageAttributeNames: []string{"All"},
		})
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			b.log.Error("Failed to receive from SQS", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(sqsReceiveBackoff):
			}
			continue
		}

		for _, m := range resp.Messages {
			b.handle(ctx, h, m)
		}
	}
}

func (b *SQSBus) handle(ctx context.Context, h Handler, m types.Message) {
	msg := fromSQS(m)
	if outcome := Dispatch(ctx, h, msg, b.log); !outcome.Settled() {
		return
	}

	_, err := b.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(b.queueURL),
		ReceiptHandle: m.ReceiptHandle,
	})
	if err != nil {
		b.log.Error("Failed to delete SQS message",
			zap.Error(err),
			zap.String("message_id", aws.ToString(m.MessageId)),
		)
	}
}

func (b *SQSBus) Close() error {
	return nil
}

func fromSQS(m types.Message) Message {
	msg := Message{
		Key:        aws.ToString(m.MessageId),
		Body:       []byte(aws.ToString(m.Body)),
		Attributes: make(map[string]string, len(m.MessageAttributes)),
	}
	for k, v := range m.MessageAttributes {
		msg.Attributes[k] = aws.ToString(v.StringValue)
	}
	return msg
}
