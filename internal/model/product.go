package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product master record. The natural key is
// (SKU, UserID): the same SKU may exist under different accounts.
// Products are write-once; there is no update or delete path.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	SKU         string          `json:"sku" gorm:"type:varchar(50);not null;uniqueIndex:idx_user_sku"`
	Barcode     string          `json:"barcode,omitempty" gorm:"type:varchar(50)"`
	Category    string          `json:"category" gorm:"type:varchar(100);not null"`
	Subcategory string          `json:"subcategory,omitempty" gorm:"type:varchar(100)"`
	Name        string          `json:"name" gorm:"type:varchar(200);not null"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	TaxRate     decimal.Decimal `json:"tax_rate" gorm:"type:decimal(5,2);not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Unit        string          `json:"unit" gorm:"type:varchar(20);not null"`
	ImagePath   string          `json:"image_path,omitempty" gorm:"type:varchar(255)"`
	UserID      uint            `json:"user_id" gorm:"not null;uniqueIndex:idx_user_sku"`
	CreatedAt   time.Time       `json:"created_at"`
}
