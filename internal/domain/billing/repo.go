package billing

import (
	"context"

	"github.com/google/uuid"
)

// BillRepository is the append-only bill store. Bills are written once, with
// all their line items, in a single transaction; there is no update path.
type BillRepository interface {
	Create(ctx context.Context, bill *Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Bill, int, error)
	// AllItemsByPatient returns every billed line across the patient's full
	// bill history, for building the dedup index.
	AllItemsByPatient(ctx context.Context, patientID uuid.UUID) ([]*BilledItem, error)
}
