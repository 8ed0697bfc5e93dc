package rabbitmq

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"hava-checkout/internal/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	minReconnectDelay = 2 * time.Second
	maxReconnectDelay = 30 * time.Second
)

// ConnectionManager owns the broker connection shared by the hand-off
// publisher and the workers, redialing when the broker drops it.
type ConnectionManager struct {
	conn        *amqp.Connection
	mu          sync.Mutex
	url         string
	isConnected bool
	ctx         context.Context
	cancel      context.CancelFunc
}

type QueueConfig struct {
	Durable    bool
	AutoDelete bool
	Exclusive  bool
	NoWait     bool
	Args       amqp.Table
}

// DefaultQueueConfig declares durable queues so hand-offs survive a
// broker restart.
func DefaultQueueConfig() *QueueConfig {
	return &QueueConfig{Durable: true}
}

type Config struct {
	Username string
	Password string
	Host     string
	Port     int
	VHost    string
	URI      string
}

// URL returns URI when set, otherwise an amqp URL built from the parts
// with the credentials escaped.
func (c *Config) URL() string {
	if c.URI != "" {
		return c.URI
	}
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   c.Host + ":" + strconv.Itoa(c.Port),
		Path:   "/" + c.VHost,
	}
	return u.String()
}

func NewConnectionManager(ctx context.Context, config *Config) (*ConnectionManager, error) {
	ctx, cancel := context.WithCancel(ctx)

	cm := &ConnectionManager{
		url:    config.URL(),
		ctx:    ctx,
		cancel: cancel,
	}

	if err := cm.connect(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}

	return cm, nil
}

func (cm *ConnectionManager) connect() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.isConnected {
		return nil
	}
	if err := cm.ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}

	conn, err := amqp.Dial(cm.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	cm.conn = conn
	cm.isConnected = true

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	go cm.watch(closed)

	return nil
}

// watch waits for the connection to drop and redials with a doubling
// delay. A clean close (nil error) ends the watch.
func (cm *ConnectionManager) watch(closed <-chan *amqp.Error) {
	select {
	case <-cm.ctx.Done():
		return
	case err := <-closed:
		if err == nil {
			return
		}
		cm.mu.Lock()
		cm.isConnected = false
		cm.mu.Unlock()
		logger.Warning.Printf("RabbitMQ connection lost: %v. Attempting to reconnect...", err)
	}

	delay := minReconnectDelay
	for {
		select {
		case <-cm.ctx.Done():
			return
		case <-time.After(delay):
		}

		if err := cm.connect(); err != nil {
			delay = nextReconnectDelay(delay)
			logger.Warning.Printf("Failed to reconnect: %v. Retrying in %v...", err, delay)
			continue
		}

		logger.Info.Println("Reconnected to RabbitMQ")
		return
	}
}

func nextReconnectDelay(d time.Duration) time.Duration {
	d *= 2
	if d > maxReconnectDelay {
		return maxReconnectDelay
	}
	return d
}

func (cm *ConnectionManager) GetConnection() *amqp.Connection {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.ctx.Err() != nil || !cm.isConnected {
		return nil
	}
	return cm.conn
}

func (cm *ConnectionManager) Close() error {
	cm.cancel()

	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.isConnected = false
	if cm.conn == nil {
		return nil
	}

	err := cm.conn.Close()
	cm.conn = nil
	if err != nil && err != amqp.ErrClosed {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

// IsClosed reports whether the manager has no usable connection.
func (cm *ConnectionManager) IsClosed() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.ctx.Err() != nil || !cm.isConnected
}
