package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ItemType classifies a billed line. The set is closed: inventory usage bills
// as medicine, consultations carry their own professional fee, everything else
// is a catalog-priced service.
type ItemType string

const (
	ItemTypeMedicine     ItemType = "medicine"
	ItemTypeService      ItemType = "service"
	ItemTypeConsultation ItemType = "consultation"
)

// Bill statuses. This engine only ever writes unpaid bills; payment
// processing flips the status later.
const (
	BillStatusUnpaid = "unpaid"
	BillStatusPaid   = "paid"
)

// DedupKey is the composite identity of a billed transaction:
// "{patientId}_{itemType}_{itemId}_{timestamp}". Both the index builder and
// the reconciliation engine must produce the exact same string or
// deduplication silently fails, so every caller goes through this function.
func DedupKey(patientID uuid.UUID, itemType ItemType, itemID string, occurredAt time.Time) string {
	return fmt.Sprintf("%s_%s_%s_%s", patientID, itemType, itemID, occurredAt.UTC().Format(time.RFC3339Nano))
}

// BilledItem is one line item inside a persisted Bill. Optional fields are
// pointers so absent values are omitted rather than serialized as null.
type BilledItem struct {
	ID               uuid.UUID `db:"id" json:"id"`
	BillID           uuid.UUID `db:"bill_id" json:"bill_id"`
	PatientID        uuid.UUID `db:"patient_id" json:"patient_id"`
	ItemType         ItemType  `db:"item_type" json:"item_type"`
	ItemID           string    `db:"item_id" json:"item_id"`
	ItemName         string    `db:"item_name" json:"item_name"`
	Quantity         float64   `db:"quantity" json:"quantity"`
	PricePerUnit     float64   `db:"price_per_unit" json:"price_per_unit"`
	TotalPrice       float64   `db:"total_price" json:"total_price"`
	OccurredAt       time.Time `db:"occurred_at" json:"occurred_at"`
	ConsultationType *string   `db:"consultation_type" json:"consultation_type,omitempty"`
	RequestedBy      *string   `db:"requested_by" json:"requested_by,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// Key returns the line's dedup key.
func (bi *BilledItem) Key() string {
	return DedupKey(bi.PatientID, bi.ItemType, bi.ItemID, bi.OccurredAt)
}

// Bill is an immutable billing document. Corrections are issued as new bills,
// never as edits.
type Bill struct {
	ID              uuid.UUID     `db:"id" json:"id"`
	PatientID       uuid.UUID     `db:"patient_id" json:"patient_id"`
	PatientFullName string        `db:"patient_full_name" json:"patient_full_name"`
	ClinicID        uuid.UUID     `db:"clinic_id" json:"clinic_id"`
	ClinicName      string        `db:"clinic_name" json:"clinic_name"`
	Amount          float64       `db:"amount" json:"amount"`
	Status          string        `db:"status" json:"status"`
	TransactionDate time.Time     `db:"transaction_date" json:"transaction_date"`
	ProcessedBy     string        `db:"processed_by" json:"processed_by"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	BilledItems     []*BilledItem `json:"billed_items"`
}

// CandidateLine is a classified, deduplicated transaction that still needs
// price resolution before it becomes a BilledItem.
type CandidateLine struct {
	ItemType        ItemType   `json:"item_type"`
	ItemID          string     `json:"item_id"`
	NameHint        string     `json:"name_hint"`
	Quantity        float64    `json:"quantity"`
	OccurredAt      time.Time  `json:"occurred_at"`
	ServiceCategory string     `json:"service_category,omitempty"`
	ProfessionalFee *float64   `json:"professional_fee,omitempty"`
	RequestedBy     *string    `json:"requested_by,omitempty"`
	SourceID        uuid.UUID  `json:"source_id"`
	PatientID       uuid.UUID  `json:"patient_id"`
}

// Key returns the candidate's dedup key, matching BilledItem.Key for the
// same underlying transaction.
func (cl *CandidateLine) Key() string {
	return DedupKey(cl.PatientID, cl.ItemType, cl.ItemID, cl.OccurredAt)
}

// BillPreview is the priced draft returned before (or without) persisting a
// bill: the lines, the grand total and per-category counts, plus diagnostics
// about what reconciliation skipped.
type BillPreview struct {
	BilledItems          []*BilledItem `json:"billed_items"`
	TotalAmount          float64       `json:"total_amount"`
	ItemsCount           int           `json:"items_count"`
	ServicesCount        int           `json:"services_count"`
	ConsultationsCount   int           `json:"consultations_count"`
	SkippedPrepaid       int           `json:"skipped_prepaid"`
	SkippedAlreadyBilled int           `json:"skipped_already_billed"`
}
