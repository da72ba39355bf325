package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreSettings holds the storefront pricing knobs managed from the admin
// console. A single row (id=1) is expected.
type StoreSettings struct {
	ID                    int             `gorm:"column:id;primaryKey"`
	FreeShippingThreshold decimal.Decimal `gorm:"column:free_shipping_threshold;type:numeric(12,2);not null"`
	FlatShippingRate      decimal.Decimal `gorm:"column:flat_shipping_rate;type:numeric(12,2);not null"`
	TaxRate               decimal.Decimal `gorm:"column:tax_rate;type:numeric(6,4);not null"`
	TaxShipping           bool            `gorm:"column:tax_shipping;not null;default:false"`
	UpdatedAt             time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
