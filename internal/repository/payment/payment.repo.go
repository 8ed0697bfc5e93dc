package payment

import (
	"context"
	"fmt"

	"hava-checkout/internal/common/models"
	database "hava-checkout/internal/pkg/db"
)

type IRepository interface {
	ListActive(ctx context.Context) ([]models.PaymentMethod, error)
}

type Repository struct {
	db *database.Database
}

func NewRepo(db *database.Database) IRepository {
	return &Repository{db: db}
}

func (r *Repository) ListActive(ctx context.Context) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order(fmt.Sprintf("sort_order %s, name %s", database.ASC.ToString(), database.ASC.ToString())).
		Find(&methods).Error
	if err != nil {
		return nil, err
	}
	return methods, nil
}
