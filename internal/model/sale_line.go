package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLine is one immutable sale (stock-out) ledger row. Same shape as
// ReceivingLine with the counterparty being a customer.
type SaleLine struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Customer    string          `json:"customer" gorm:"type:varchar(100);not null"`
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

// SaleHistoryRow is a sale line joined with the product master to resolve
// the product's current display name. Because the join is against current
// master data, a renamed product shows its new name on old rows.
type SaleHistoryRow struct {
	SaleLine
	ProductName string `json:"product_name"`
}
