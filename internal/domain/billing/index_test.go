package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestBuildBilledIndex(t *testing.T) {
	patientID := uuid.New()
	ts := time.Now().UTC()

	items := []*BilledItem{
		{PatientID: patientID, ItemType: ItemTypeMedicine, ItemID: "med-1", OccurredAt: ts},
		{PatientID: patientID, ItemType: ItemTypeService, ItemID: "cbc", OccurredAt: ts},
	}
	idx := BuildBilledIndex(items)

	for _, it := range items {
		if !idx.IsBilled(it.Key()) {
			t.Errorf("index missing key %q", it.Key())
		}
	}
	if idx.IsBilled(DedupKey(patientID, ItemTypeMedicine, "med-2", ts)) {
		t.Error("index reports unbilled item as billed")
	}
	// Same item id under a different classified type is a different identity.
	if idx.IsBilled(DedupKey(patientID, ItemTypeConsultation, "cbc", ts)) {
		t.Error("item type not part of index identity")
	}
}

func TestEmptyIndexBillsEverything(t *testing.T) {
	idx := BuildBilledIndex(nil)
	if idx.IsBilled(DedupKey(uuid.New(), ItemTypeMedicine, "med-1", time.Now())) {
		t.Error("empty index claims item is billed")
	}
}
