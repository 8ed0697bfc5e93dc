package repository

import (
	paymentRepo "hava-checkout/internal/repository/payment"
	sessionRepo "hava-checkout/internal/repository/session"
)

// IRepository is a container for all repository interfaces
type IRepository struct {
	Payment paymentRepo.IRepository
	Session sessionRepo.IRepository
}
