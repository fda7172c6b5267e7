package event

import (
	"context"
	"fmt"

	"flight-review/pkg/utils"

	"go.uber.org/zap"
)

// NewBus builds the bus selected by config.Driver.
func NewBus(ctx context.Context, config utils.BusConfig, log *zap.Logger) (Bus, error) {
	switch config.Driver {
	case "kafka":
		if len(config.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("kafka bus: no brokers configured")
		}
		return NewKafkaBus(config, log), nil
	case "sqs":
		client, err := NewSQSClient(ctx, config.SQSEndpoint)
		if err != nil {
			return nil, err
		}
		return NewSQSBus(ctx, client, config.SQSQueueName, log)
	case "memory":
		return NewMemoryBus(log), nil
	default:
		return nil, fmt.Errorf("unknown bus driver %q", config.Driver)
	}
}
