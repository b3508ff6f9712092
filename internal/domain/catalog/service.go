package catalog

import "context"

type Service struct {
	items    ItemRepository
	services ServiceRepository
}

func NewService(items ItemRepository, services ServiceRepository) *Service {
	return &Service{items: items, services: services}
}

func (s *Service) GetItem(ctx context.Context, id string) (*Item, error) {
	return s.items.GetByID(ctx, id)
}

func (s *Service) ListItems(ctx context.Context, limit, offset int) ([]*Item, int, error) {
	return s.items.List(ctx, limit, offset)
}

func (s *Service) GetMedicalService(ctx context.Context, category, id string) (*MedicalService, error) {
	return s.services.Get(ctx, category, id)
}

func (s *Service) ListMedicalServices(ctx context.Context, category string, limit, offset int) ([]*MedicalService, int, error) {
	return s.services.List(ctx, category, limit, offset)
}

// ItemPrices resolves retail prices for a batch of item ids in a single
// round trip. Duplicate ids collapse to one lookup; unknown ids are simply
// absent from the result.
func (s *Service) ItemPrices(ctx context.Context, ids []string) (map[string]float64, error) {
	return s.items.PricesByID(ctx, dedupeStrings(ids))
}

// ServicePrices resolves effective prices for a batch of (category, id)
// service keys in a single round trip.
func (s *Service) ServicePrices(ctx context.Context, keys []ServiceKey) (map[ServiceKey]float64, error) {
	return s.services.PricesByKey(ctx, dedupeKeys(keys))
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0:0]
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func dedupeKeys(in []ServiceKey) []ServiceKey {
	seen := make(map[ServiceKey]bool, len(in))
	out := in[:0:0]
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
