package billing

import (
	"context"
	"math"

	"github.com/clinicore/clinicore/internal/domain/catalog"
)

// assemble prices every candidate line and produces the draft preview.
// A missing catalog entry prices the line at 0 and logs a warning instead of
// failing the run; an operator reviews zero-priced lines on the draft.
func (s *Service) assemble(ctx context.Context, res ReconcileResult) (*BillPreview, error) {
	var itemIDs []string
	var serviceKeys []catalog.ServiceKey
	for _, cl := range res.Candidates {
		switch cl.ItemType {
		case ItemTypeMedicine:
			itemIDs = append(itemIDs, cl.ItemID)
		case ItemTypeService:
			serviceKeys = append(serviceKeys, catalog.ServiceKey{Category: cl.ServiceCategory, ID: cl.ItemID})
		}
	}

	var itemPrices map[string]float64
	var servicePrices map[catalog.ServiceKey]float64
	var err error
	if len(itemIDs) > 0 {
		if itemPrices, err = s.catalog.ItemPrices(ctx, itemIDs); err != nil {
			return nil, err
		}
	}
	if len(serviceKeys) > 0 {
		if servicePrices, err = s.catalog.ServicePrices(ctx, serviceKeys); err != nil {
			return nil, err
		}
	}

	preview := &BillPreview{
		SkippedPrepaid:       res.SkippedPrepaid,
		SkippedAlreadyBilled: res.SkippedAlreadyBilled,
	}
	for _, cl := range res.Candidates {
		line := &BilledItem{
			PatientID:   cl.PatientID,
			ItemType:    cl.ItemType,
			ItemID:      cl.ItemID,
			ItemName:    cl.NameHint,
			Quantity:    cl.Quantity,
			OccurredAt:  cl.OccurredAt,
			RequestedBy: cl.RequestedBy,
		}
		switch cl.ItemType {
		case ItemTypeMedicine:
			price, ok := itemPrices[cl.ItemID]
			if !ok {
				s.log.Warn().Str("item_id", cl.ItemID).Msg("no catalog price for item, billing at 0")
			}
			line.PricePerUnit = price
			preview.ItemsCount++
		case ItemTypeConsultation:
			if cl.ProfessionalFee != nil {
				line.PricePerUnit = *cl.ProfessionalFee
			}
			consultationType := cl.ItemID
			line.ConsultationType = &consultationType
			preview.ConsultationsCount++
		case ItemTypeService:
			key := catalog.ServiceKey{Category: cl.ServiceCategory, ID: cl.ItemID}
			price, ok := servicePrices[key]
			if !ok {
				s.log.Warn().Str("service_id", cl.ItemID).Str("category", cl.ServiceCategory).
					Msg("no catalog price for service, billing at 0")
			}
			line.PricePerUnit = price
			preview.ServicesCount++
		}
		line.TotalPrice = line.PricePerUnit * line.Quantity
		preview.TotalAmount += line.TotalPrice
		preview.BilledItems = append(preview.BilledItems, line)
	}

	// Accumulate at full precision, round once at the end.
	preview.TotalAmount = round2(preview.TotalAmount)
	return preview, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
