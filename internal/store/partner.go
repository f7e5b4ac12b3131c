package store

import (
	"strings"

	"github.com/parthhpatil200/inventory-manager/internal/model"

	"gorm.io/gorm/clause"
)

// PartnerInput carries the supplier and customer master form fields, which
// share the same shape. Only the name is required; it is the natural key,
// unique per owning account.
type PartnerInput struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

func (in *PartnerInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.ContactPerson = strings.TrimSpace(in.ContactPerson)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)

	if in.Name == "" {
		return missingField("name")
	}
	return nil
}

// SaveSupplier inserts a supplier; a name already present for the account
// yields ErrDuplicateKey.
func (s *Store) SaveSupplier(userID uint, in PartnerInput) (*model.Supplier, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	supplier := model.Supplier{
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		UserID:        userID,
	}

	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&supplier)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrDuplicateKey
	}

	return &supplier, nil
}

// SaveCustomer inserts a customer; same contract as SaveSupplier.
func (s *Store) SaveCustomer(userID uint, in PartnerInput) (*model.Customer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	customer := model.Customer{
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		UserID:        userID,
	}

	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&customer)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrDuplicateKey
	}

	return &customer, nil
}

// ListSuppliers returns the account's suppliers ordered by name.
func (s *Store) ListSuppliers(userID uint) ([]model.Supplier, error) {
	suppliers := make([]model.Supplier, 0)
	result := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&suppliers)
	if result.Error != nil {
		return nil, result.Error
	}
	return suppliers, nil
}

// ListCustomers returns the account's customers ordered by name.
func (s *Store) ListCustomers(userID uint) ([]model.Customer, error) {
	customers := make([]model.Customer, 0)
	result := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&customers)
	if result.Error != nil {
		return nil, result.Error
	}
	return customers, nil
}
