package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hava-checkout/internal/common/models"
	"hava-checkout/internal/pkg/helper"
	"hava-checkout/internal/pkg/logger"
	"hava-checkout/internal/pkg/redis"
)

const keyPrefix = "checkout:session:"

var ErrNotFound = errors.New("session not found")

type IRepository interface {
	Get(ctx context.Context, id string) (*models.CheckoutSession, error)
	Save(ctx context.Context, s *models.CheckoutSession) error
	Delete(ctx context.Context, id string) error
}

func Key(id string) string {
	return keyPrefix + id
}

// Repository keeps sessions in redis. Every save and every read pushes the
// expiry out by ttl, so a session lives as long as it is being used.
type Repository struct {
	redis redis.IRedis
	ttl   time.Duration
}

func NewRepo(rds redis.IRedis, ttl time.Duration) IRepository {
	return &Repository{redis: rds, ttl: ttl}
}

func (r *Repository) Get(_ context.Context, id string) (*models.CheckoutSession, error) {
	raw, err := r.redis.Get(Key(id))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, ErrNotFound
	}

	s, err := helper.StringToStruct[models.CheckoutSession](raw)
	if err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}

	if r.ttl > 0 {
		if err := r.redis.Expire(Key(id), r.ttl); err != nil {
			logger.Warning.Printf("Failed to refresh session %s expiry: %v", id, err)
		}
	}
	return s, nil
}

func (r *Repository) Save(_ context.Context, s *models.CheckoutSession) error {
	return r.redis.Set(Key(s.ID), s, r.ttl)
}

func (r *Repository) Delete(_ context.Context, id string) error {
	return r.redis.Del(Key(id))
}
