package repositories

import "github.com/vsinha/supplyplan/pkg/domain/entities"

// SupplierRepository provides access to supplier master data
type SupplierRepository interface {
	GetSupplier(id entities.SupplierID) (*entities.SupplierRecord, error)
	GetAllSuppliers() ([]*entities.SupplierRecord, error)
	LoadSuppliers(suppliers []*entities.SupplierRecord) error
}
