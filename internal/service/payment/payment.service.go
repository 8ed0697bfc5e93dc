package payment

import (
	"context"
	"fmt"
	"strings"

	"hava-checkout/internal/common/models"
	"hava-checkout/internal/pkg/helper"
	"hava-checkout/internal/pkg/logger"

	"github.com/samber/lo"
)

// Refresh starts a fetch unless one is already running. The returned
// channel closes when the running fetch finishes.
func (s *Service) Refresh() <-chan struct{} {
	s.mu.Lock()
	if s.loading {
		done := s.done
		s.mu.Unlock()
		return done
	}
	s.loading = true
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	task := func() {
		methods, err := s.load()
		s.finish(methods, err)
	}

	if s.pool == nil {
		go task()
		return done
	}
	if err := s.pool.Submit(task); err != nil {
		logger.Error.Printf("Failed to schedule payment method fetch: %v", err)
		s.finish(nil, fmt.Errorf("schedule fetch: %w", err))
	}
	return done
}

func (s *Service) finish(methods []models.PaymentMethod, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	s.err = err
	if err == nil {
		now := helper.TimeRightNow()
		s.methods = methods
		s.loadedAt = &now
	}
	close(s.done)
}

func (s *Service) load() ([]models.PaymentMethod, error) {
	if s.rp.Payment == nil {
		return nil, fmt.Errorf("no payment method store: %w", ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	methods, err := s.rp.Payment.ListActive(ctx)
	if err != nil {
		logger.Error.Printf("Failed to load payment methods: %v", err)
		return nil, fmt.Errorf("load payment methods: %w", err)
	}

	for i := range methods {
		methods[i].QRCodeURL = s.qrURL(methods[i])
	}
	logger.Info.Printf("Loaded %d payment methods", len(methods))
	return methods, nil
}

// qrURL resolves a stored QR reference. Absolute URLs are used as they
// are; bucket keys are presigned when a bucket is configured.
func (s *Service) qrURL(m models.PaymentMethod) *string {
	if m.QRCodeKey == nil || *m.QRCodeKey == "" {
		return nil
	}
	key := *m.QRCodeKey
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return &key
	}
	if s.qr == nil {
		return nil
	}

	url, err := s.qr.GetPresignedURL(key)
	if err != nil {
		logger.Warning.Printf("No QR code for payment method %s: %v", m.ID, err)
		return nil
	}
	return &url
}

func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Methods:  append([]models.PaymentMethod{}, s.methods...),
		Loading:  s.loading,
		Err:      s.err,
		LoadedAt: s.loadedAt,
	}
	if s.err != nil && !s.loading {
		snap.Error = s.err.Error()
	}
	return snap
}

// Find returns a copy of the method with id from a ready snapshot.
func (s *Service) Find(id string) (*models.PaymentMethod, error) {
	snap := s.Snapshot()
	if !snap.Ready() {
		return nil, ErrUnavailable
	}

	method, found := lo.Find(snap.Methods, func(m models.PaymentMethod) bool {
		return m.ID == id
	})
	if !found {
		return nil, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	return &method, nil
}
