package store

import (
	"context"

	"github.com/vsuet/accounting/internal/models"
)

// VendorStore handles vendor CRUD operations.
type VendorStore struct {
	Base
}

// NewVendorStore creates a new VendorStore.
func NewVendorStore(base Base) *VendorStore {
	return &VendorStore{Base: base}
}

// List returns all vendors ordered by name.
func (s *VendorStore) List(ctx context.Context) ([]models.Vendor, error) {
	return listRows(ctx, &s.Base, "vendors",
		"SELECT "+vendorColumns+" FROM vendors ORDER BY name, id", scanVendor)
}

// Get returns a vendor by id.
func (s *VendorStore) Get(ctx context.Context, id int64) (*models.Vendor, error) {
	return getRow(ctx, &s.Base, models.ErrVendorNotFound,
		"SELECT "+vendorColumns+" FROM vendors WHERE id = $1", scanVendor, id)
}

// Create inserts a vendor.
func (s *VendorStore) Create(ctx context.Context, req models.VendorRequest) (*models.Vendor, error) {
	return writeRow(ctx, &s.Base, "creating vendor", models.ErrVendorNotFound,
		"INSERT INTO vendors (name, tax_id) VALUES ($1, $2) RETURNING "+vendorColumns,
		scanVendor, req.Name, req.TaxID)
}

// Update replaces a vendor's fields.
func (s *VendorStore) Update(ctx context.Context, id int64, req models.VendorRequest) (*models.Vendor, error) {
	return writeRow(ctx, &s.Base, "updating vendor", models.ErrVendorNotFound,
		"UPDATE vendors SET name = $1, tax_id = $2 WHERE id = $3 RETURNING "+vendorColumns,
		scanVendor, req.Name, req.TaxID, id)
}

// Delete removes a vendor and every expense paid to it.
func (s *VendorStore) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, &s.Base, "vendors", models.ErrVendorNotFound, id)
}
