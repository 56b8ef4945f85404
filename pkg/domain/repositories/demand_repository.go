package repositories

import "github.com/vsinha/supplyplan/pkg/domain/entities"

// DemandRepository provides access to demand observations
type DemandRepository interface {
	GetDemands() ([]*entities.DemandPoint, error)
	GetDemandsForSKU(sku entities.SKU) ([]*entities.DemandPoint, error)
	GetSKUs() ([]entities.SKU, error)
	LoadDemands(demands []*entities.DemandPoint) error
}
