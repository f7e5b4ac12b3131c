package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivingLine is one immutable goods-receiving (stock-in) ledger row.
// Supplier and ProductSKU are stored as entered, not as foreign keys, so
// historical rows survive master-data changes. TotalRate, TaxAmount and
// TotalAmount hold the rounded figures that were shown to the operator.
// There is no uniqueness constraint: identical lines are distinct rows.
type ReceivingLine struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Supplier    string          `json:"supplier" gorm:"type:varchar(100);not null"`
	ProductSKU  string          `json:"product_sku" gorm:"type:varchar(50);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Rate        decimal.Decimal `json:"rate" gorm:"type:decimal(12,2);not null"`
	TaxRate     decimal.Decimal `json:"tax_rate" gorm:"type:decimal(5,2);not null"`
	TotalRate   decimal.Decimal `json:"total_rate" gorm:"type:decimal(12,2);not null"`
	TaxAmount   decimal.Decimal `json:"tax_amount" gorm:"type:decimal(12,2);not null"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	UserID      uint            `json:"user_id" gorm:"index;not null"`
	CreatedAt   time.Time       `json:"created_at"`
}
