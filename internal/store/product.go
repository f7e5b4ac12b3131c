package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parthhpatil200/inventory-manager/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

// ProductInput carries the product master form fields. TaxRate and Price
// arrive as the operator typed them and must parse as numbers.
type ProductInput struct {
	SKU         string `json:"sku"`
	Barcode     string `json:"barcode"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TaxRate     string `json:"tax_rate"`
	Price       string `json:"price"`
	Unit        string `json:"unit"`

	// ImageSource is an optional path to an image file. The file is
	// copied under the store's images directory and the product records
	// the copied path, never the original.
	ImageSource string `json:"image_source"`
}

// SaveProduct validates the input and inserts the product. The natural key
// is (SKU, owning account); the insert is atomic against the unique index,
// so a concurrent save of the same SKU yields ErrDuplicateKey for exactly
// one caller.
func (s *Store) SaveProduct(userID uint, in ProductInput) (*model.Product, error) {
	trim(&in.SKU, &in.Barcode, &in.Category, &in.Subcategory, &in.Name, &in.TaxRate, &in.Price, &in.Unit)

	switch {
	case in.SKU == "":
		return nil, missingField("sku")
	case in.Category == "":
		return nil, missingField("category")
	case in.Name == "":
		return nil, missingField("name")
	case in.TaxRate == "":
		return nil, missingField("tax_rate")
	case in.Price == "":
		return nil, missingField("price")
	case in.Unit == "":
		return nil, missingField("unit")
	}

	taxRate, err := decimal.NewFromString(in.TaxRate)
	if err != nil {
		return nil, invalidNumber("tax_rate")
	}
	price, err := decimal.NewFromString(in.Price)
	if err != nil {
		return nil, invalidNumber("price")
	}

	// The copy is staged to a temporary file and only moved into place
	// after the insert succeeds, so a failed save never touches another
	// product's stored image.
	imagePath, stagedPath := "", ""
	if in.ImageSource != "" {
		imagePath, stagedPath, err = s.stageImage(in.SKU, in.ImageSource)
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
	}

	product := model.Product{
		SKU:         in.SKU,
		Barcode:     in.Barcode,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		Name:        in.Name,
		Description: in.Description,
		TaxRate:     taxRate,
		Price:       price,
		Unit:        in.Unit,
		ImagePath:   imagePath,
		UserID:      userID,
	}

	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&product)
	if result.Error != nil || result.RowsAffected == 0 {
		if stagedPath != "" {
			os.Remove(stagedPath)
		}
		if result.Error != nil {
			return nil, result.Error
		}
		return nil, ErrDuplicateKey
	}

	if stagedPath != "" {
		if err := os.Rename(stagedPath, imagePath); err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
	}

	return &product, nil
}

// ListProducts returns the account's products ordered by display name.
// The listing carries SKU, tax rate and price so entry forms can pre-fill
// rate fields when a product is selected.
func (s *Store) ListProducts(userID uint) ([]model.Product, error) {
	products := make([]model.Product, 0)
	result := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}
	return products, nil
}

// ListCategories returns the distinct categories of the account's products.
func (s *Store) ListCategories(userID uint) ([]string, error) {
	categories := make([]string, 0)
	result := s.db.Model(&model.Product{}).
		Where("user_id = ?", userID).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

// stageImage copies the source file to a temporary file next to its final
// location <ImagesDir>/<sku><ext>. The caller renames the staged copy into
// place once the product row exists, or removes it on failure.
func (s *Store) stageImage(sku, source string) (dest, staged string, err error) {
	if s.ImagesDir == "" {
		return "", "", fmt.Errorf("image storage is not configured")
	}
	if err := os.MkdirAll(s.ImagesDir, 0o755); err != nil {
		return "", "", err
	}

	dest = filepath.Join(s.ImagesDir, sku+filepath.Ext(source))

	src, err := os.Open(source)
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	tmp, err := os.CreateTemp(s.ImagesDir, "staged-*")
	if err != nil {
		return "", "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		os.Remove(tmp.Name())
		return "", "", err
	}

	return dest, tmp.Name(), nil
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
