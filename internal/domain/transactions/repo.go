package transactions

import (
	"context"

	"github.com/google/uuid"
)

type InventoryTransactionRepository interface {
	Create(ctx context.Context, tx *InventoryTransaction) error
	// ListUsageByPatient returns every usage record for the patient in one
	// query, oldest first. This is the snapshot the reconciliation run sees.
	ListUsageByPatient(ctx context.Context, patientID uuid.UUID) ([]*InventoryTransaction, error)
}

type ServiceTransactionRepository interface {
	Create(ctx context.Context, tx *ServiceTransaction) error
	// ListByPatient returns every service transaction for the patient in one
	// query, oldest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*ServiceTransaction, error)
}
