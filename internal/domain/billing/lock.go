package billing

import (
	"sync"

	"github.com/google/uuid"
)

// patientLocks serializes bill generation per patient within this process.
// Two concurrent runs for the same patient would both read a bill history
// that misses the other's write and double-bill every line; holding the
// patient's lock across read-reconcile-write closes that window. The
// database's unique index on billed line identity backstops multi-process
// deployments.
type patientLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*patientLock
}

type patientLock struct {
	mu   sync.Mutex
	refs int
}

func newPatientLocks() *patientLocks {
	return &patientLocks{locks: make(map[uuid.UUID]*patientLock)}
}

// Lock blocks until the patient's lock is held and returns the unlock
// function. Entries are reference counted so the map does not grow with
// every patient ever billed.
func (pl *patientLocks) Lock(patientID uuid.UUID) func() {
	pl.mu.Lock()
	l, ok := pl.locks[patientID]
	if !ok {
		l = &patientLock{}
		pl.locks[patientID] = l
	}
	l.refs++
	pl.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()
		pl.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(pl.locks, patientID)
		}
		pl.mu.Unlock()
	}
}
