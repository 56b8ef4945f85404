package memory

import (
	"github.com/vsinha/supplyplan/pkg/domain/entities"
	"github.com/vsinha/supplyplan/pkg/domain/repositories"
	"github.com/vsinha/supplyplan/pkg/domain/services"
)

// DemandRepository provides in-memory demand storage
type DemandRepository struct {
	demands []entities.DemandPoint
	bySKU   map[entities.SKU][]int
}

// NewDemandRepository creates a new in-memory demand repository
func NewDemandRepository() *DemandRepository {
	return &DemandRepository{
		demands: []entities.DemandPoint{},
		bySKU:   make(map[entities.SKU][]int),
	}
}

// Verify interface compliance
var _ repositories.DemandRepository = (*DemandRepository)(nil)

// LoadDemands loads demand observations into the repository
func (r *DemandRepository) LoadDemands(demands []*entities.DemandPoint) error {
	for _, demand := range demands {
		if demand == nil {
			continue
		}
		r.bySKU[demand.SKU] = append(r.bySKU[demand.SKU], len(r.demands))
		r.demands = append(r.demands, *demand)
	}
	return nil
}

// GetDemands returns all demand observations
func (r *DemandRepository) GetDemands() ([]*entities.DemandPoint, error) {
	demands := make([]*entities.DemandPoint, 0, len(r.demands))
	for i := range r.demands {
		demands = append(demands, &r.demands[i])
	}
	return demands, nil
}

// GetDemandsForSKU returns the demand observations of one SKU in load order
func (r *DemandRepository) GetDemandsForSKU(sku entities.SKU) ([]*entities.DemandPoint, error) {
	indexes := r.bySKU[sku]
	demands := make([]*entities.DemandPoint, 0, len(indexes))
	for _, i := range indexes {
		demands = append(demands, &r.demands[i])
	}
	return demands, nil
}

// GetSKUs returns every SKU with at least one observation, sorted
func (r *DemandRepository) GetSKUs() ([]entities.SKU, error) {
	demands, err := r.GetDemands()
	if err != nil {
		return nil, err
	}
	return services.DistinctSKUs(demands), nil
}

// GetSeries returns the daily resampled series of one SKU
func (r *DemandRepository) GetSeries(sku entities.SKU) (entities.DemandSeries, error) {
	demands, err := r.GetDemandsForSKU(sku)
	if err != nil {
		return entities.DemandSeries{}, err
	}
	return services.BuildDemandSeries(demands, sku), nil
}
