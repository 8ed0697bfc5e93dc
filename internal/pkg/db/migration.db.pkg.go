package database

import (
	"fmt"

	"hava-checkout/internal/common/models"
	"hava-checkout/internal/pkg/logger"

	"gorm.io/gorm/clause"
)

func (db *Database) RunMigrations() error {
	logger.Info.Println("Starting database migrations...")

	models := []interface{}{
		&models.PaymentMethod{},
	}

	for _, model := range models {
		logger.Info.Printf("Migrating model: %T", model)
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	if err := db.createIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logger.Info.Println("Database migrations completed successfully")
	return nil
}

func (db *Database) createIndexes() error {
	indexes := []string{
		`CREATE INDEX idx_payment_methods_sort ON payment_methods(active, sort_order, name);`,
	}

	for _, query := range indexes {
		if db.Migrator().HasIndex(&models.PaymentMethod{}, "idx_payment_methods_sort") {
			continue
		}
		if err := db.Exec(query).Error; err != nil {
			logger.Error.Printf("Error creating index: %s, Error: %v", query, err)
			return err
		}
	}

	return nil
}

func strPtr(s string) *string { return &s }

// DefaultPaymentMethods is the catalogue a fresh database starts with.
func DefaultPaymentMethods() []models.PaymentMethod {
	methods := []models.PaymentMethod{
		{ID: "gcash", Name: "GCash", AccountNumber: strPtr("09171234567"), AccountName: strPtr("Hava Java"), QRCodeKey: strPtr("payment-qr/gcash.png")},
		{ID: "maya", Name: "Maya", AccountNumber: strPtr("09181234567"), AccountName: strPtr("Hava Java"), QRCodeKey: strPtr("payment-qr/maya.png")},
		{ID: "bpi", Name: "BPI Bank Transfer", AccountNumber: strPtr("1234-5678-90"), AccountName: strPtr("Hava Java Cafe")},
		{ID: "cash", Name: "Cash"},
	}
	for i := range methods {
		methods[i].Active = true
		methods[i].SortOrder = i
	}
	return methods
}

// SeedPaymentMethods inserts the default catalogue, leaving rows that
// already exist untouched.
func (db *Database) SeedPaymentMethods() error {
	methods := DefaultPaymentMethods()
	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&methods).Error
	if err != nil {
		return fmt.Errorf("failed to seed payment methods: %w", err)
	}
	logger.Info.Printf("Seeded %d payment methods", len(methods))
	return nil
}
