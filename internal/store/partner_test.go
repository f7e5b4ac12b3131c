package store

import (
	"errors"
	"testing"
)

func TestSaveSupplier_RequiresName(t *testing.T) {
	s := newTestStore(t)
	userID := newTestUser(t, s, "owner")

	_, err := s.SaveSupplier(userID, PartnerInput{Name: "   "})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("SaveSupplier() error = %v, want ValidationError", err)
	}
}

func TestSaveSupplier_PerAccountIsolation(t *testing.T) {
	s := newTestStore(t)
	first := newTestUser(t, s, "first")
	second := newTestUser(t, s, "second")

	in := PartnerInput{Name: "Acme Traders", Phone: "555-0100"}

	if _, err := s.SaveSupplier(first, in); err != nil {
		t.Fatalf("first save error = %v", err)
	}
	if _, err := s.SaveSupplier(first, in); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("duplicate name same account: error = %v, want ErrDuplicateKey", err)
	}
	if _, err := s.SaveSupplier(second, in); err != nil {
		t.Errorf("same name other account: error = %v, want nil", err)
	}
}

func TestSaveCustomer_PerAccountIsolation(t *testing.T) {
	s := newTestStore(t)
	first := newTestUser(t, s, "first")
	second := newTestUser(t, s, "second")

	in := PartnerInput{Name: "Globex Retail"}

	if _, err := s.SaveCustomer(first, in); err != nil {
		t.Fatalf("first save error = %v", err)
	}
	if _, err := s.SaveCustomer(first, in); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("duplicate name same account: error = %v, want ErrDuplicateKey", err)
	}
	if _, err := s.SaveCustomer(second, in); err != nil {
		t.Errorf("same name other account: error = %v, want nil", err)
	}
}

// Suppliers of one account are invisible to another, and a customer with
// the same name as a supplier is a separate row.
func TestPartners_ScopingAndOrdering(t *testing.T) {
	s := newTestStore(t)
	owner := newTestUser(t, s, "owner")
	other := newTestUser(t, s, "other")

	for _, name := range []string{"Zenith Supply", "Acme Traders", "Midway Goods"} {
		if _, err := s.SaveSupplier(owner, PartnerInput{Name: name}); err != nil {
			t.Fatalf("save supplier %q: %v", name, err)
		}
	}
	if _, err := s.SaveSupplier(other, PartnerInput{Name: "Hidden Vendor"}); err != nil {
		t.Fatalf("save other supplier: %v", err)
	}
	if _, err := s.SaveCustomer(owner, PartnerInput{Name: "Acme Traders"}); err != nil {
		t.Fatalf("customer sharing a supplier name: %v", err)
	}

	suppliers, err := s.ListSuppliers(owner)
	if err != nil {
		t.Fatalf("ListSuppliers() error = %v", err)
	}

	want := []string{"Acme Traders", "Midway Goods", "Zenith Supply"}
	if len(suppliers) != len(want) {
		t.Fatalf("got %d suppliers, want %d", len(suppliers), len(want))
	}
	for i, name := range want {
		if suppliers[i].Name != name {
			t.Errorf("suppliers[%d].Name = %q, want %q", i, suppliers[i].Name, name)
		}
	}

	customers, err := s.ListCustomers(owner)
	if err != nil {
		t.Fatalf("ListCustomers() error = %v", err)
	}
	if len(customers) != 1 || customers[0].Name != "Acme Traders" {
		t.Errorf("customers = %v, want single Acme Traders", customers)
	}
}
