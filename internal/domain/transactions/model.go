package transactions

import (
	"time"

	"github.com/google/uuid"
)

// Inventory transaction types. Only usage records are billable; restocks and
// adjustments never reference a patient.
const (
	InventoryTxUsage      = "usage"
	InventoryTxRestock    = "restock"
	InventoryTxAdjustment = "adjustment"
)

// Service transaction types. A prepayment was collected when the service was
// requested and is permanently excluded from billing.
const (
	ServiceTxNormal     = "normal"
	ServiceTxPrepayment = "SERVICE_PREPAYMENT"
)

// ServiceCategoryConsultation marks service transactions whose price is the
// doctor's professional fee carried on the record itself.
const ServiceCategoryConsultation = "consultationTypes"

// InventoryTransaction is one entry in the stock movement log. Usage entries
// record consumption against a patient; quantity_changed is negative for
// outgoing stock.
type InventoryTransaction struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	ItemID           string     `db:"item_id" json:"item_id"`
	ItemName         string     `db:"item_name" json:"item_name"`
	QuantityChanged  float64    `db:"quantity_changed" json:"quantity_changed"`
	TransactionType  string     `db:"transaction_type" json:"transaction_type"`
	SourceDepartment string     `db:"source_department" json:"source_department"`
	PatientID        *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	OccurredAt       time.Time  `db:"occurred_at" json:"occurred_at"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// ServiceTransaction is one entry in the medical service log: consultations,
// lab/imaging requests and their prepayments.
type ServiceTransaction struct {
	ID              uuid.UUID `db:"id" json:"id"`
	ServiceID       string    `db:"service_id" json:"service_id"`
	ServiceName     string    `db:"service_name" json:"service_name"`
	ServiceCategory string    `db:"service_category" json:"service_category"`
	TransactionType string    `db:"transaction_type" json:"transaction_type"`
	ProfessionalFee *float64  `db:"professional_fee" json:"professional_fee,omitempty"`
	RequestedByName *string   `db:"requested_by_name" json:"requested_by_name,omitempty"`
	PatientID       uuid.UUID `db:"patient_id" json:"patient_id"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
