package payment

import (
	"context"
	"errors"
	"sync"
	"time"

	"hava-checkout/internal/common/models"
	s3aws "hava-checkout/internal/pkg/storage/s3"
	"hava-checkout/internal/repository"

	"github.com/panjf2000/ants/v2"
)

var (
	ErrUnavailable = errors.New("payment methods are loading or failed to load")
	ErrNotFound    = errors.New("payment method not found")
)

// Snapshot is the Payment Method Source state at one instant. Methods is
// only meaningful when Loading is false and Err is nil.
type Snapshot struct {
	Methods  []models.PaymentMethod `json:"methods"`
	Loading  bool                   `json:"loading"`
	Err      error                  `json:"-"`
	Error    string                 `json:"error,omitempty"`
	LoadedAt *time.Time             `json:"loadedAt,omitempty"`
}

// Ready reports whether a method can be selected from this snapshot.
func (s Snapshot) Ready() bool {
	return !s.Loading && s.Err == nil
}

type IService interface {
	Refresh() <-chan struct{}
	Snapshot() Snapshot
	Find(id string) (*models.PaymentMethod, error)
}

type Service struct {
	ctx     context.Context
	rp      repository.IRepository
	qr      s3aws.Is3
	pool    *ants.Pool
	timeout time.Duration

	mu       sync.RWMutex
	methods  []models.PaymentMethod
	loading  bool
	err      error
	loadedAt *time.Time
	done     chan struct{}
}

// NewService builds the source. qr may be nil when QR images are served
// from public URLs. Nothing is fetched until Refresh is called.
func NewService(ctx context.Context, rp repository.IRepository, qr s3aws.Is3, pool *ants.Pool) *Service {
	return &Service{
		ctx:     ctx,
		rp:      rp,
		qr:      qr,
		pool:    pool,
		timeout: 10 * time.Second,
		err:     ErrUnavailable,
	}
}
