package memory

import (
	"fmt"

	"github.com/vsinha/supplyplan/pkg/domain/entities"
	"github.com/vsinha/supplyplan/pkg/domain/repositories"
)

// SupplierRepository provides in-memory supplier storage.
// Input order is preserved so that scoring ties stay deterministic.
type SupplierRepository struct {
	suppliers    []entities.SupplierRecord
	suppliersMap map[entities.SupplierID]int
}

// NewSupplierRepository creates a new in-memory supplier repository
func NewSupplierRepository(expectedSuppliers int) *SupplierRepository {
	return &SupplierRepository{
		suppliers:    make([]entities.SupplierRecord, 0, expectedSuppliers),
		suppliersMap: make(map[entities.SupplierID]int, expectedSuppliers),
	}
}

// Verify interface compliance
var _ repositories.SupplierRepository = (*SupplierRepository)(nil)

// LoadSuppliers loads suppliers into the repository
func (r *SupplierRepository) LoadSuppliers(suppliers []*entities.SupplierRecord) error {
	for _, supplier := range suppliers {
		if err := r.SaveSupplier(supplier); err != nil {
			return err
		}
	}
	return nil
}

// SaveSupplier adds a supplier, rejecting a duplicate non-empty supplier id
func (r *SupplierRepository) SaveSupplier(supplier *entities.SupplierRecord) error {
	if supplier == nil {
		return fmt.Errorf("supplier cannot be nil")
	}
	if supplier.SupplierID != "" {
		if _, exists := r.suppliersMap[supplier.SupplierID]; exists {
			return fmt.Errorf("duplicate supplier id: %s", supplier.SupplierID)
		}
		r.suppliersMap[supplier.SupplierID] = len(r.suppliers)
	}
	r.suppliers = append(r.suppliers, *supplier)
	return nil
}

// GetSupplier returns the supplier with the given id
func (r *SupplierRepository) GetSupplier(id entities.SupplierID) (*entities.SupplierRecord, error) {
	index, exists := r.suppliersMap[id]
	if !exists {
		return nil, fmt.Errorf("supplier not found: %s", id)
	}
	return &r.suppliers[index], nil
}

// GetAllSuppliers returns all suppliers in load order
func (r *SupplierRepository) GetAllSuppliers() ([]*entities.SupplierRecord, error) {
	suppliers := make([]*entities.SupplierRecord, 0, len(r.suppliers))
	for i := range r.suppliers {
		suppliers = append(suppliers, &r.suppliers[i])
	}
	return suppliers, nil
}

// Count returns the number of suppliers stored
func (r *SupplierRepository) Count() int {
	return len(r.suppliers)
}
