package session

import (
	"context"
	"sync"
	"time"

	"hava-checkout/internal/common/models"
	"hava-checkout/internal/pkg/helper"
)

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

// MemoryRepo is used when redis is not configured. Sessions are stored
// encoded so callers never share state with the store. Reads slide the
// expiry like the redis repo.
type MemoryRepo struct {
	mu  sync.RWMutex
	m   map[string]memoryEntry
	ttl time.Duration
	now func() time.Time
}

func NewMemoryRepo(ttl time.Duration) *MemoryRepo {
	return &MemoryRepo{
		m:   make(map[string]memoryEntry),
		ttl: ttl,
		now: time.Now,
	}
}

func (r *MemoryRepo) Get(_ context.Context, id string) (*models.CheckoutSession, error) {
	r.mu.RLock()
	e, ok := r.m[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if r.ttl > 0 && !r.now().Before(e.expiresAt) {
		r.mu.Lock()
		if cur, ok := r.m[id]; ok && !r.now().Before(cur.expiresAt) {
			delete(r.m, id)
		}
		r.mu.Unlock()
		return nil, ErrNotFound
	}

	if r.ttl > 0 {
		r.mu.Lock()
		if cur, ok := r.m[id]; ok {
			cur.expiresAt = r.now().Add(r.ttl)
			r.m[id] = cur
		}
		r.mu.Unlock()
	}

	return helper.StringToStruct[models.CheckoutSession](string(e.raw))
}

func (r *MemoryRepo) Save(_ context.Context, s *models.CheckoutSession) error {
	raw, err := helper.JSONToByte(s)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[s.ID] = memoryEntry{raw: raw, expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, id)
	return nil
}

func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}
