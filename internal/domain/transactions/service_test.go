package transactions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type mockInventoryRepo struct {
	created []*InventoryTransaction
}

func (m *mockInventoryRepo) Create(ctx context.Context, tx *InventoryTransaction) error {
	tx.ID = uuid.New()
	m.created = append(m.created, tx)
	return nil
}

func (m *mockInventoryRepo) ListUsageByPatient(ctx context.Context, patientID uuid.UUID) ([]*InventoryTransaction, error) {
	var out []*InventoryTransaction
	for _, tx := range m.created {
		if tx.TransactionType == InventoryTxUsage && tx.PatientID != nil && *tx.PatientID == patientID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type mockServiceTxRepo struct {
	created []*ServiceTransaction
}

func (m *mockServiceTxRepo) Create(ctx context.Context, tx *ServiceTransaction) error {
	tx.ID = uuid.New()
	m.created = append(m.created, tx)
	return nil
}

func (m *mockServiceTxRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*ServiceTransaction, error) {
	var out []*ServiceTransaction
	for _, tx := range m.created {
		if tx.PatientID == patientID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func newTestService() (*Service, *mockInventoryRepo, *mockServiceTxRepo) {
	inv := &mockInventoryRepo{}
	svcTx := &mockServiceTxRepo{}
	return NewService(inv, svcTx, zerolog.Nop()), inv, svcTx
}

func TestRecordInventoryTransaction(t *testing.T) {
	svc, repo, _ := newTestService()
	patientID := uuid.New()

	tx := &InventoryTransaction{
		ItemID:          "med-1",
		ItemName:        "Paracetamol 500mg",
		QuantityChanged: -2,
		TransactionType: InventoryTxUsage,
		PatientID:       &patientID,
	}
	if err := svc.RecordInventoryTransaction(context.Background(), tx); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("got %d records, want 1", len(repo.created))
	}
	if tx.OccurredAt.IsZero() {
		t.Error("occurred_at not defaulted")
	}
}

func TestRecordInventoryTransactionValidation(t *testing.T) {
	svc, _, _ := newTestService()
	patientID := uuid.New()

	cases := []struct {
		name string
		tx   InventoryTransaction
	}{
		{"missing item id", InventoryTransaction{ItemName: "X", TransactionType: InventoryTxRestock}},
		{"missing item name", InventoryTransaction{ItemID: "med-1", TransactionType: InventoryTxRestock}},
		{"bad type", InventoryTransaction{ItemID: "med-1", ItemName: "X", TransactionType: "transfer", PatientID: &patientID}},
		{"usage without patient", InventoryTransaction{ItemID: "med-1", ItemName: "X", TransactionType: InventoryTxUsage}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.RecordInventoryTransaction(context.Background(), &tc.tx); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRecordServiceTransactionValidation(t *testing.T) {
	svc, _, _ := newTestService()
	fee := 500.0

	valid := ServiceTransaction{
		ServiceID:       "cbc",
		ServiceName:     "Complete Blood Count",
		ServiceCategory: "laboratoryTests",
		TransactionType: ServiceTxNormal,
		PatientID:       uuid.New(),
	}
	if err := svc.RecordServiceTransaction(context.Background(), &valid); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	prepaid := valid
	prepaid.TransactionType = ServiceTxPrepayment
	if err := svc.RecordServiceTransaction(context.Background(), &prepaid); err != nil {
		t.Fatalf("prepayment rejected: %v", err)
	}

	consultNoFee := ServiceTransaction{
		ServiceID:       "general",
		ServiceName:     "general",
		ServiceCategory: ServiceCategoryConsultation,
		TransactionType: ServiceTxNormal,
		PatientID:       uuid.New(),
	}
	if err := svc.RecordServiceTransaction(context.Background(), &consultNoFee); err == nil {
		t.Error("consultation without professional_fee accepted")
	}

	consultNoFee.ProfessionalFee = &fee
	if err := svc.RecordServiceTransaction(context.Background(), &consultNoFee); err != nil {
		t.Errorf("consultation with fee rejected: %v", err)
	}

	badType := valid
	badType.TransactionType = "refund"
	if err := svc.RecordServiceTransaction(context.Background(), &badType); err == nil {
		t.Error("invalid transaction_type accepted")
	}

	noPatient := valid
	noPatient.PatientID = uuid.Nil
	if err := svc.RecordServiceTransaction(context.Background(), &noPatient); err == nil {
		t.Error("transaction without patient accepted")
	}
}

func TestListUsageByPatientScopesToPatient(t *testing.T) {
	svc, _, _ := newTestService()
	p1, p2 := uuid.New(), uuid.New()
	now := time.Now().UTC()

	for _, pid := range []uuid.UUID{p1, p1, p2} {
		pid := pid
		tx := &InventoryTransaction{
			ItemID:          "med-1",
			ItemName:        "Paracetamol 500mg",
			QuantityChanged: -1,
			TransactionType: InventoryTxUsage,
			PatientID:       &pid,
			OccurredAt:      now,
		}
		if err := svc.RecordInventoryTransaction(context.Background(), tx); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := svc.ListUsageByPatient(context.Background(), p1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d usage records for p1, want 2", len(got))
	}
}
