package billing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/domain/transactions"
)

func TestPatientLocksMutualExclusion(t *testing.T) {
	locks := newPatientLocks()
	patientID := uuid.New()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(patientID)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("counter = %d, want 50", counter)
	}
	if len(locks.locks) != 0 {
		t.Errorf("%d lock entries leaked after all unlocks", len(locks.locks))
	}
}

func TestPatientLocksIndependentPatients(t *testing.T) {
	locks := newPatientLocks()

	unlockA := locks.Lock(uuid.New())
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock(uuid.New())
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock for a different patient blocked")
	}
}

// Concurrent generation attempts for one patient must produce exactly one
// bill for a given transaction history, never two bills sharing a line.
func TestConcurrentGenerateBillSinglePatient(t *testing.T) {
	env := newTestEnv()
	env.usage.txs = []*transactions.InventoryTransaction{
		usageTx("med-1", "Paracetamol 500mg", -2, time.Now().UTC()),
	}
	env.catalog.itemPrices["med-1"] = 50

	const runs = 8
	results := make(chan error, runs)
	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.GenerateBill(context.Background(), env.patientID, "cashier1")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, empty int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrNoUnbilledItems):
			empty++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("%d runs produced a bill, want exactly 1", succeeded)
	}
	if empty != runs-1 {
		t.Errorf("%d runs saw an empty candidate set, want %d", empty, runs-1)
	}
	if len(env.bills.items) != 1 {
		t.Errorf("%d billed lines persisted, want 1", len(env.bills.items))
	}
}
