package store

import (
	"strings"

	"github.com/parthhpatil200/inventory-manager/internal/ledger"
	"github.com/parthhpatil200/inventory-manager/internal/model"

	"github.com/shopspring/decimal"
)

// LineInput carries one goods-receiving or sale entry. Counterparty is the
// supplier or customer name as free text; ProductSKU references the product
// master by code, also as free text. Rate and TaxRate arrive as entered,
// possibly overriding the product's master-data values.
type LineInput struct {
	Counterparty string `json:"counterparty"`
	ProductSKU   string `json:"product_sku"`
	Quantity     int    `json:"quantity"`
	Rate         string `json:"rate"`
	TaxRate      string `json:"tax_rate"`
}

func (in *LineInput) parse() (rate, taxRate decimal.Decimal, err error) {
	in.Counterparty = strings.TrimSpace(in.Counterparty)
	in.ProductSKU = strings.TrimSpace(in.ProductSKU)

	if in.Counterparty == "" {
		return rate, taxRate, missingField("counterparty")
	}
	if in.ProductSKU == "" {
		return rate, taxRate, missingField("product_sku")
	}

	rate, err = decimal.NewFromString(strings.TrimSpace(in.Rate))
	if err != nil {
		return rate, taxRate, invalidNumber("rate")
	}
	taxRate, err = decimal.NewFromString(strings.TrimSpace(in.TaxRate))
	if err != nil {
		return rate, taxRate, invalidNumber("tax_rate")
	}
	return rate, taxRate, nil
}

// SaveReceiving recomputes the totals from the raw inputs and inserts one
// immutable receiving line. Ledger tables carry no uniqueness constraint:
// saving the same line twice produces two rows.
func (s *Store) SaveReceiving(userID uint, in LineInput) (*model.ReceivingLine, error) {
	rate, taxRate, err := in.parse()
	if err != nil {
		return nil, err
	}

	totals, err := ledger.ComputeTotals(in.Quantity, rate, taxRate)
	if err != nil {
		return nil, &ValidationError{Field: "line", Reason: err.Error()}
	}

	line := model.ReceivingLine{
		Supplier:    in.Counterparty,
		ProductSKU:  in.ProductSKU,
		Quantity:    in.Quantity,
		Rate:        rate,
		TaxRate:     taxRate,
		TotalRate:   totals.TotalRate,
		TaxAmount:   totals.TaxAmount,
		TotalAmount: totals.TotalAmount,
		UserID:      userID,
	}

	if result := s.db.Create(&line); result.Error != nil {
		return nil, result.Error
	}
	return &line, nil
}

// SaveSale mirrors SaveReceiving for the stock-out direction.
func (s *Store) SaveSale(userID uint, in LineInput) (*model.SaleLine, error) {
	rate, taxRate, err := in.parse()
	if err != nil {
		return nil, err
	}

	totals, err := ledger.ComputeTotals(in.Quantity, rate, taxRate)
	if err != nil {
		return nil, &ValidationError{Field: "line", Reason: err.Error()}
	}

	line := model.SaleLine{
		Customer:    in.Counterparty,
		ProductSKU:  in.ProductSKU,
		Quantity:    in.Quantity,
		Rate:        rate,
		TaxRate:     taxRate,
		TotalRate:   totals.TotalRate,
		TaxAmount:   totals.TaxAmount,
		TotalAmount: totals.TotalAmount,
		UserID:      userID,
	}

	if result := s.db.Create(&line); result.Error != nil {
		return nil, result.Error
	}
	return &line, nil
}

// ListReceivings returns the account's receiving lines, most recent first
// by insertion order.
func (s *Store) ListReceivings(userID uint) ([]model.ReceivingLine, error) {
	lines := make([]model.ReceivingLine, 0)
	result := s.db.Where("user_id = ?", userID).Order("id DESC").Find(&lines)
	if result.Error != nil {
		return nil, result.Error
	}
	return lines, nil
}

// ListSales returns the account's sale lines, most recent first by
// insertion order. The product SKU is resolved against the product master
// to the product's current display name; a line whose SKU no longer
// matches a product shows an empty name.
func (s *Store) ListSales(userID uint) ([]model.SaleHistoryRow, error) {
	rows := make([]model.SaleHistoryRow, 0)
	result := s.db.Table("sale_lines").
		Select("sale_lines.*, COALESCE(products.name, '') AS product_name").
		Joins("LEFT JOIN products ON products.sku = sale_lines.product_sku AND products.user_id = sale_lines.user_id").
		Where("sale_lines.user_id = ?", userID).
		Order("sale_lines.id DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}
