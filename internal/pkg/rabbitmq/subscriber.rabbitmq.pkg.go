package rabbitmq

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"hava-checkout/internal/pkg/logger"

	"github.com/panjf2000/ants/v2"
	amqp "github.com/rabbitmq/amqp091-go"
)

type MessageHandler func(ctx context.Context, msg *amqp.Delivery) error

type RetryStrategy string

const (
	FixedRetry       RetryStrategy = "fixed"
	ExponentialRetry RetryStrategy = "exponential"
	LinearRetry      RetryStrategy = "linear"
)

const retryCountHeader = "x-retry-count"

type SubscribeOptions struct {
	QueueOpts        *QueueConfig
	QueueName        string
	ConsumerName     string
	WorkerCount      int
	PrefetchCount    int
	HandlerTimeout   time.Duration
	MaxRetryAttempts int
	EnableDeadLetter bool
	DeadLetterName   string
	RetryStrategy    RetryStrategy
	BaseRetryDelay   time.Duration
	MaxRetryDelay    time.Duration
}

func DefaultSubscribeOptions(queueName string) *SubscribeOptions {
	return &SubscribeOptions{
		QueueName:        queueName,
		ConsumerName:     queueName,
		WorkerCount:      2,
		PrefetchCount:    10,
		HandlerTimeout:   30 * time.Second,
		MaxRetryAttempts: 5,
		EnableDeadLetter: true,
		DeadLetterName:   "fail:" + queueName,
		RetryStrategy:    ExponentialRetry,
		BaseRetryDelay:   time.Second,
		MaxRetryDelay:    time.Minute,
	}
}

// Subscriber consumes one queue with WorkerCount channels. Failed
// messages are republished with a growing delay and moved to the dead
// letter queue once MaxRetryAttempts is reached.
type Subscriber struct {
	channelManagers []*ChannelManager
	handler         MessageHandler
	opts            *SubscribeOptions
	ctx             context.Context
	cancel          context.CancelFunc
	wg              sync.WaitGroup
	isRunning       atomic.Bool
	pool            *ants.Pool
}

func NewSubscriber(ctx context.Context, connManager *ConnectionManager, handler MessageHandler, opts *SubscribeOptions) (*Subscriber, error) {
	ctx, cancel := context.WithCancel(ctx)

	pool, err := ants.NewPool(opts.WorkerCount*opts.PrefetchCount, ants.WithOptions(ants.Options{
		ExpiryDuration: time.Hour,
		PanicHandler: func(i interface{}) {
			logger.Error.Printf("Message handler panic on %s: %v", opts.QueueName, i)
		},
	}))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create subscriber pool: %w", err)
	}

	sub := &Subscriber{
		handler:         handler,
		opts:            opts,
		ctx:             ctx,
		cancel:          cancel,
		channelManagers: make([]*ChannelManager, opts.WorkerCount),
		pool:            pool,
	}
	for i := range sub.channelManagers {
		sub.channelManagers[i] = NewChannelManager(ctx, connManager)
	}

	return sub, nil
}

func (s *Subscriber) Start() error {
	if s.isRunning.Swap(true) {
		return fmt.Errorf("subscriber for %s is already running", s.opts.QueueName)
	}
	for i := 0; i < s.opts.WorkerCount; i++ {
		s.wg.Add(1)
		go s.runWorker(i)
	}
	logger.Info.Printf("Subscribed to %s with %d workers", s.opts.QueueName, s.opts.WorkerCount)
	return nil
}

func (s *Subscriber) runWorker(workerID int) {
	defer s.wg.Done()

	backoff := &exponentialBackoff{min: time.Second, max: 30 * time.Second, factor: 2}
	for s.isRunning.Load() && s.ctx.Err() == nil {
		if err := s.consume(workerID); err != nil {
			logger.Warning.Printf("Worker %d on %s: %v", workerID, s.opts.QueueName, err)
			backoff.sleep(s.ctx)
			continue
		}
		backoff.reset()
	}
}

type exponentialBackoff struct {
	min    time.Duration
	max    time.Duration
	factor float64
	curr   time.Duration
}

func (b *exponentialBackoff) sleep(ctx context.Context) {
	if b.curr == 0 {
		b.curr = b.min
	} else {
		b.curr = min(time.Duration(float64(b.curr)*b.factor), b.max)
	}

	t := time.NewTimer(b.curr)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (b *exponentialBackoff) reset() {
	b.curr = 0
}

func (s *Subscriber) declareQueue(ch *amqp.Channel) (*amqp.Queue, error) {
	if err := ch.Qos(s.opts.PrefetchCount, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	config := s.opts.QueueOpts
	if config == nil {
		config = DefaultQueueConfig()
	}

	q, err := ch.QueueDeclare(s.opts.QueueName, config.Durable, config.AutoDelete, config.Exclusive, config.NoWait, config.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}
	return &q, nil
}

func (s *Subscriber) consume(workerID int) error {
	ch, err := s.channelManagers[workerID].GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel: %w", err)
	}

	q, err := s.declareQueue(ch)
	if err != nil {
		return err
	}

	consumerName := fmt.Sprintf("%s-%d-%d", s.opts.ConsumerName, workerID, time.Now().Unix())
	msgs, err := ch.ConsumeWithContext(s.ctx, q.Name, consumerName, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for msg := range msgs {
		delivery := msg
		err := s.pool.Submit(func() {
			if err := s.processMessage(workerID, &delivery); err != nil {
				logger.Error.Printf("Worker %d failed to process message %s: %v", workerID, delivery.MessageId, err)
			}
		})
		if err != nil {
			logger.Error.Printf("Worker %d failed to submit to pool: %v", workerID, err)
			_ = delivery.Nack(false, true)
		}
	}

	if s.ctx.Err() != nil {
		return nil
	}
	return fmt.Errorf("delivery channel closed")
}

func (s *Subscriber) processMessage(workerID int, msg *amqp.Delivery) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.HandlerTimeout)
	defer cancel()

	if err := s.handler(ctx, msg); err != nil {
		return s.handleProcessingError(workerID, msg, err)
	}

	if err := msg.Ack(false); err != nil {
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}
	return nil
}

func retryCount(headers amqp.Table) int {
	switch v := headers[retryCountHeader].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	}
	return 0
}

func (s *Subscriber) handleProcessingError(workerID int, msg *amqp.Delivery, err error) error {
	attempt := retryCount(msg.Headers)
	if msg.Redelivered && attempt == 0 {
		attempt = 1
	}

	if attempt >= s.opts.MaxRetryAttempts {
		if !s.opts.EnableDeadLetter {
			return msg.Reject(false)
		}
		if ackErr := msg.Ack(false); ackErr != nil {
			return fmt.Errorf("failed to acknowledge message: %w", ackErr)
		}
		return s.publishToDeadLetter(workerID, msg, err)
	}

	if retryErr := s.republishWithDelay(workerID, msg, attempt+1); retryErr != nil {
		return fmt.Errorf("failed to schedule retry: %w", retryErr)
	}
	return fmt.Errorf("handler error on attempt %d: %w", attempt+1, err)
}

func republishing(msg *amqp.Delivery) amqp.Publishing {
	return amqp.Publishing{
		Headers:         msg.Headers,
		ContentType:     msg.ContentType,
		ContentEncoding: msg.ContentEncoding,
		DeliveryMode:    msg.DeliveryMode,
		Priority:        msg.Priority,
		CorrelationId:   msg.CorrelationId,
		MessageId:       msg.MessageId,
		Timestamp:       msg.Timestamp,
		Type:            msg.Type,
		AppId:           msg.AppId,
		Body:            msg.Body,
	}
}

func (s *Subscriber) republishWithDelay(workerID int, msg *amqp.Delivery, attempt int) error {
	if msg.Headers == nil {
		msg.Headers = amqp.Table{}
	}
	msg.Headers[retryCountHeader] = int64(attempt)
	publishing := republishing(msg)
	delay := s.calculateRetryDelay(attempt)

	if err := msg.Ack(false); err != nil {
		return fmt.Errorf("failed to acknowledge original message: %w", err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-s.ctx.Done():
			return
		}

		ch, err := s.channelManagers[workerID].GetChannel()
		if err != nil {
			logger.Error.Printf("Failed to get channel for retry: %v", err)
			return
		}
		if err := ch.PublishWithContext(s.ctx, "", s.opts.QueueName, false, false, publishing); err != nil {
			logger.Error.Printf("Failed to republish message after delay: %v", err)
		}
	}()

	return nil
}

func (s *Subscriber) publishToDeadLetter(workerID int, msg *amqp.Delivery, cause error) error {
	ch, err := s.channelManagers[workerID].GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel for dead letter: %w", err)
	}

	if _, err := ch.QueueDeclare(s.opts.DeadLetterName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare dead letter queue: %w", err)
	}

	if msg.Headers == nil {
		msg.Headers = amqp.Table{}
	}
	msg.Headers["x-death-reason"] = cause.Error()
	msg.Headers["x-death-time"] = time.Now().Format(time.RFC3339)
	msg.Headers["x-death-queue"] = s.opts.QueueName

	if err := ch.PublishWithContext(s.ctx, "", s.opts.DeadLetterName, false, false, republishing(msg)); err != nil {
		return fmt.Errorf("failed to publish to dead letter queue: %w", err)
	}

	logger.Warning.Printf("Moved message %s to %s after %d attempts", msg.MessageId, s.opts.DeadLetterName, s.opts.MaxRetryAttempts)
	return nil
}

func (s *Subscriber) calculateRetryDelay(attempt int) time.Duration {
	var delay time.Duration

	switch s.opts.RetryStrategy {
	case FixedRetry:
		delay = s.opts.BaseRetryDelay
	case LinearRetry:
		delay = s.opts.BaseRetryDelay * time.Duration(attempt)
	default:
		delay = s.opts.BaseRetryDelay * time.Duration(1<<min(attempt, 30))
	}

	return min(delay, s.opts.MaxRetryDelay)
}

func (s *Subscriber) Stop() error {
	if !s.isRunning.Swap(false) {
		return nil
	}
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		return fmt.Errorf("timeout waiting for %s workers to stop", s.opts.QueueName)
	}

	for i, ch := range s.channelManagers {
		if err := ch.Close(); err != nil {
			logger.Error.Printf("Error closing channel for worker %d: %v", i, err)
		}
	}
	s.pool.Release()
	return nil
}

func (s *Subscriber) IsHealthy() bool {
	return s.isRunning.Load() && s.ctx.Err() == nil
}
