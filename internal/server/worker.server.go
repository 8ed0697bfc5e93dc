package serverApp

import (
	"context"
	"fmt"
	"time"

	"hava-checkout/internal/pkg/logger"
	"hava-checkout/internal/pkg/messenger"
	"hava-checkout/internal/pkg/rabbitmq"

	"github.com/panjf2000/ants/v2"
	amqp "github.com/rabbitmq/amqp091-go"
)

// NewPool creates the shared goroutine pool used by the payment method
// fetches and the queue workers.
func NewPool(size int) (*ants.Pool, error) {
	poolOpts := ants.Options{
		ExpiryDuration: time.Hour,
		PreAlloc:       true,
		Nonblocking:    true,
		PanicHandler: func(i interface{}) {
			logger.Error.Printf("Worker panic: %v\n", i)
		},
	}

	pool, err := ants.NewPool(size, ants.WithOptions(poolOpts))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	return pool, nil
}

// InitWorker starts the queue consumers on pool. The returned function
// stops them.
func InitWorker(ctx context.Context, rb *rabbitmq.ConnectionManager, pool *ants.Pool) (func(), error) {
	subscriber, err := rabbitmq.NewSubscriber(ctx, rb, HandleHandoff, rabbitmq.DefaultSubscribeOptions(messenger.HandoffQueue))
	if err != nil {
		return nil, fmt.Errorf("create hand-off subscriber: %w", err)
	}

	err = pool.Submit(func() {
		if err := subscriber.Start(); err != nil {
			logger.Error.Printf("Failed to initialize hand-off worker: %v\n", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit task to pool: %w", err)
	}

	logger.Info.Printf("Hand-off worker listening on %s", messenger.HandoffQueue)
	return func() {
		if err := subscriber.Stop(); err != nil {
			logger.Error.Printf("Failed to stop hand-off worker: %v", err)
		}
	}, nil
}

// HandleHandoff consumes one published order hand-off. Delivery to a
// downstream notifier is out of scope; the event is validated and logged.
func HandleHandoff(_ context.Context, msg *amqp.Delivery) error {
	h, err := rabbitmq.Decode[messenger.Handoff](msg)
	if err != nil {
		return fmt.Errorf("decode hand-off %s: %w", msg.MessageId, err)
	}
	if h.SessionID == "" || h.Link == "" {
		return fmt.Errorf("hand-off %s: missing session id or link", msg.MessageId)
	}

	logger.Info.Printf("Hand-off %s for session %s: %s", msg.MessageId, h.SessionID, h.Link)
	return nil
}
