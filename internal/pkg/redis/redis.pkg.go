package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hava-checkout/internal/pkg/logger"

	_redis "github.com/redis/go-redis/v9"
)

func Setup(ctx context.Context, config *Config) (*Client, error) {
	clientCtx, cancel := context.WithCancel(ctx)

	r := &Client{
		cancel: cancel,
		ctx:    clientCtx,
		config: config,
	}

	if err := r.connect(); err != nil {
		cancel()
		logger.Error.Println(err)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	go r.reconnectHandler()

	return r, nil
}

func (r *Client) connect() error {
	r.Client = _redis.NewClient(&_redis.Options{
		Addr:     fmt.Sprintf("%s:%d", r.config.Host, r.config.Port),
		Username: r.config.Username,
		Password: r.config.Password,
		PoolSize: r.config.PoolSize,
	})

	if err := r.Client.Ping(r.ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	return nil
}

func (r *Client) reconnect() error {
	if err := r.Client.Ping(r.ctx).Err(); err != nil {
		return r.connect()
	}
	return nil
}

func (r *Client) reconnectHandler() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			logger.Info.Println("Redis reconnect handler shutting down...")
			return
		case <-ticker.C:
			if err := r.Client.Ping(r.ctx).Err(); err == nil || r.ctx.Err() != nil {
				continue
			}

			logger.Warning.Println("Redis connection lost. Attempting to reconnect...")
			for attempt := 1; r.ctx.Err() == nil; attempt++ {
				logger.Warning.Printf("Redis reconnect attempt #%d...", attempt)
				if err := r.reconnect(); err == nil {
					logger.Info.Println("Reconnected to redis.")
					break
				}
				time.Sleep(time.Duration(attempt) * time.Second)
			}
		}
	}
}

// Close gracefully shuts down the redis connection.
func (r *Client) Close() error {
	r.cancel()
	return r.Client.Close()
}

func (r *Client) Ping() error {
	return r.Client.Ping(r.ctx).Err()
}

// Set stores value as JSON with an expiration time. Strings and byte
// slices are stored as is.
func (r *Client) Set(key string, value any, expiration time.Duration) error {
	var data any
	switch v := value.(type) {
	case string, []byte:
		data = v
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return err
		}
		data = b
	}

	err := r.Client.Set(r.ctx, key, data, expiration).Err()
	if err == nil {
		return nil
	}
	if rerr := r.reconnect(); rerr != nil {
		return fmt.Errorf("failed to set key %s: %w", key, rerr)
	}
	if err = r.Client.Set(r.ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Get retrieves the value of a key. A missing key yields "" and no error.
func (r *Client) Get(key string) (string, error) {
	result, err := r.Client.Get(r.ctx, key).Result()
	if err == nil {
		return result, nil
	}
	if errors.Is(err, NilType) {
		return "", nil
	}
	if rerr := r.reconnect(); rerr != nil {
		return "", fmt.Errorf("failed to get key %s: %w", key, rerr)
	}

	result, err = r.Client.Get(r.ctx, key).Result()
	if errors.Is(err, NilType) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return result, nil
}

// Del deletes a key.
func (r *Client) Del(key string) error {
	err := r.Client.Del(r.ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Expire sets a timeout on a key.
func (r *Client) Expire(key string, expiration time.Duration) error {
	err := r.Client.Expire(r.ctx, key, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to set expiration on key %s: %w", key, err)
	}
	return nil
}
