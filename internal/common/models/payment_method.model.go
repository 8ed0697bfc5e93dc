package models

import "time"

// PaymentMethod is a way the customer can settle the order outside this
// service (e-wallet, bank transfer, cash). Read-only to the checkout flow.
type PaymentMethod struct {
	ID            string    `json:"id" gorm:"type:varchar(64);primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(100);not null"`
	AccountNumber *string   `json:"accountNumber,omitempty" gorm:"type:varchar(100)"`
	AccountName   *string   `json:"accountName,omitempty" gorm:"type:varchar(255)"`
	QRCodeKey     *string   `json:"-" gorm:"type:varchar(255)"`
	QRCodeURL     *string   `json:"qrCodeUrl,omitempty" gorm:"-"`
	Active        bool      `json:"-" gorm:"not null;default:true;index"`
	SortOrder     int       `json:"-" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"-" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"-" gorm:"autoUpdateTime"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// HasAccountNumber reports whether an account number line should be shown.
func (p *PaymentMethod) HasAccountNumber() bool {
	return p != nil && p.AccountNumber != nil && *p.AccountNumber != ""
}
