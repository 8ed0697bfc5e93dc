package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	"hava-checkout/internal/pkg/logger"
)

type Publisher struct {
	channel  *ChannelManager
	declared sync.Map
	queueCfg *QueueConfig
}

func NewPublisher(ctx context.Context, connManager *ConnectionManager) (*Publisher, error) {
	if connManager == nil {
		return nil, ErrNoConnection
	}
	return &Publisher{
		channel:  NewChannelManager(ctx, connManager),
		queueCfg: DefaultQueueConfig(),
	}, nil
}

// Publish sends payload as a persistent message to queue on the default
// exchange, declaring the queue the first time it is used.
func (p *Publisher) Publish(ctx context.Context, queue string, payload any) error {
	msg, err := NewMessage(payload, nil)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	ch, err := p.channel.GetChannel()
	if err != nil {
		return err
	}

	if _, ok := p.declared.Load(queue); !ok {
		_, err := ch.QueueDeclare(
			queue,
			p.queueCfg.Durable,
			p.queueCfg.AutoDelete,
			p.queueCfg.Exclusive,
			p.queueCfg.NoWait,
			p.queueCfg.Args,
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}
		p.declared.Store(queue, struct{}{})
	}

	err = ch.PublishWithContext(ctx, "", queue, false, false, *msg.GeneratePayload())
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queue, err)
	}

	logger.Debug.Printf("Published message %s to %s", msg.ID, queue)
	return nil
}

func (p *Publisher) Close() error {
	return p.channel.Close()
}
