package catalog

import "context"

type ItemRepository interface {
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context, limit, offset int) ([]*Item, int, error)
	// PricesByID returns the retail price for each known id in one query.
	// Unknown ids are absent from the result map.
	PricesByID(ctx context.Context, ids []string) (map[string]float64, error)
}

type ServiceRepository interface {
	Get(ctx context.Context, category, id string) (*MedicalService, error)
	List(ctx context.Context, category string, limit, offset int) ([]*MedicalService, int, error)
	// PricesByKey returns the effective price for each known (category, id)
	// pair in one query. Unknown keys are absent from the result map.
	PricesByKey(ctx context.Context, keys []ServiceKey) (map[ServiceKey]float64, error)
}
