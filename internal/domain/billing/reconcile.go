package billing

import (
	"math"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/domain/transactions"
)

// consultationDisplayNames maps raw consultation type codes to the names
// printed on bills. Unmapped codes pass through unchanged.
var consultationDisplayNames = map[string]string{
	"general":      "General Consultation",
	"follow_up":    "Follow-up Consultation",
	"emergency":    "Emergency Consultation",
	"pediatric":    "Pediatric Consultation",
	"prenatal":     "Prenatal Consultation",
	"telemedicine": "Telemedicine Consultation",
}

func consultationDisplayName(raw string) string {
	if name, ok := consultationDisplayNames[raw]; ok {
		return name
	}
	return raw
}

// ReconcileResult is the output of one reconciliation pass: the candidate
// lines still owed, plus counts of what was discarded and why.
type ReconcileResult struct {
	Candidates           []*CandidateLine
	SkippedPrepaid       int
	SkippedAlreadyBilled int
}

// Reconcile classifies the patient's raw transaction records, drops
// prepayments and anything the index says was already billed, and emits the
// remaining charges as candidate lines. It is a pure function over its
// inputs; candidate order follows input order (usage first, then service
// transactions) so runs are reproducible.
func Reconcile(patientID uuid.UUID, usages []*transactions.InventoryTransaction, serviceTxs []*transactions.ServiceTransaction, idx BilledIndex) ReconcileResult {
	var res ReconcileResult

	for _, u := range usages {
		cl := &CandidateLine{
			ItemType:   ItemTypeMedicine,
			ItemID:     u.ItemID,
			NameHint:   u.ItemName,
			Quantity:   math.Abs(u.QuantityChanged),
			OccurredAt: u.OccurredAt,
			SourceID:   u.ID,
			PatientID:  patientID,
		}
		if idx.IsBilled(cl.Key()) {
			res.SkippedAlreadyBilled++
			continue
		}
		res.Candidates = append(res.Candidates, cl)
	}

	for _, st := range serviceTxs {
		if st.TransactionType == transactions.ServiceTxPrepayment {
			res.SkippedPrepaid++
			continue
		}
		cl := &CandidateLine{
			ItemID:          st.ServiceID,
			Quantity:        1,
			OccurredAt:      st.CreatedAt,
			ServiceCategory: st.ServiceCategory,
			RequestedBy:     st.RequestedByName,
			SourceID:        st.ID,
			PatientID:       patientID,
		}
		if st.ServiceCategory == transactions.ServiceCategoryConsultation {
			cl.ItemType = ItemTypeConsultation
			cl.NameHint = consultationDisplayName(st.ServiceName)
			cl.ProfessionalFee = st.ProfessionalFee
		} else {
			// Name and price for plain services come from the catalog at
			// assembly time; the transaction's copy is only a hint.
			cl.ItemType = ItemTypeService
			cl.NameHint = st.ServiceName
		}
		if idx.IsBilled(cl.Key()) {
			res.SkippedAlreadyBilled++
			continue
		}
		res.Candidates = append(res.Candidates, cl)
	}

	return res
}
