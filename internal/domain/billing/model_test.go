package billing

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDedupKeyFormat(t *testing.T) {
	patientID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	got := DedupKey(patientID, ItemTypeMedicine, "med-42", ts)
	want := "11111111-2222-3333-4444-555555555555_medicine_med-42_2026-03-14T09:26:53Z"
	if got != want {
		t.Errorf("DedupKey = %q, want %q", got, want)
	}
}

func TestDedupKeyNormalizesTimezone(t *testing.T) {
	patientID := uuid.New()
	loc := time.FixedZone("UTC+8", 8*3600)
	local := time.Date(2026, 3, 14, 17, 0, 0, 0, loc)
	utc := local.UTC()

	if DedupKey(patientID, ItemTypeService, "svc-1", local) != DedupKey(patientID, ItemTypeService, "svc-1", utc) {
		t.Error("same instant in different zones produced different dedup keys")
	}
}

func TestBilledItemKeyMatchesCandidateKey(t *testing.T) {
	patientID := uuid.New()
	ts := time.Now().UTC()

	item := &BilledItem{PatientID: patientID, ItemType: ItemTypeMedicine, ItemID: "med-1", OccurredAt: ts}
	cand := &CandidateLine{PatientID: patientID, ItemType: ItemTypeMedicine, ItemID: "med-1", OccurredAt: ts}

	if item.Key() != cand.Key() {
		t.Errorf("index key %q does not match candidate key %q", item.Key(), cand.Key())
	}
}

func TestBilledItemOmitsAbsentOptionalFields(t *testing.T) {
	item := &BilledItem{
		PatientID: uuid.New(),
		ItemType:  ItemTypeMedicine,
		ItemID:    "med-1",
		ItemName:  "Paracetamol 500mg",
		Quantity:  2,
	}
	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if strings.Contains(s, "consultation_type") {
		t.Errorf("absent consultation_type serialized: %s", s)
	}
	if strings.Contains(s, "requested_by") {
		t.Errorf("absent requested_by serialized: %s", s)
	}
	if strings.Contains(s, "null") {
		t.Errorf("null placeholder in serialized line: %s", s)
	}
}
