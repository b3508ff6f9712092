package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/clinicore/clinicore/internal/domain/catalog"
	"github.com/clinicore/clinicore/internal/domain/identity"
	"github.com/clinicore/clinicore/internal/domain/transactions"
)

// ErrNoUnbilledItems is returned by GenerateBill when reconciliation finds
// nothing left to bill for the patient.
var ErrNoUnbilledItems = errors.New("no unbilled items for patient")

// PriceCatalog resolves unit prices for batches of items and services.
type PriceCatalog interface {
	ItemPrices(ctx context.Context, ids []string) (map[string]float64, error)
	ServicePrices(ctx context.Context, keys []catalog.ServiceKey) (map[catalog.ServiceKey]float64, error)
}

// UsageSource reads the patient's inventory usage log.
type UsageSource interface {
	ListUsageByPatient(ctx context.Context, patientID uuid.UUID) ([]*transactions.InventoryTransaction, error)
}

// ServiceTransactionSource reads the patient's service transaction log.
type ServiceTransactionSource interface {
	ListServiceTransactionsByPatient(ctx context.Context, patientID uuid.UUID) ([]*transactions.ServiceTransaction, error)
}

// PatientDirectory resolves the patient and clinic names stamped onto bills.
type PatientDirectory interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*identity.Patient, error)
	GetClinic(ctx context.Context, id uuid.UUID) (*identity.Clinic, error)
}

// Service runs reconciliation and bill generation. Bill generation is
// serialized per patient; see lock.go.
type Service struct {
	bills     BillRepository
	usage     UsageSource
	svcTxs    ServiceTransactionSource
	catalog   PriceCatalog
	directory PatientDirectory
	locks     *patientLocks
	log       zerolog.Logger
}

func NewService(bills BillRepository, usage UsageSource, svcTxs ServiceTransactionSource, cat PriceCatalog, directory PatientDirectory, log zerolog.Logger) *Service {
	return &Service{
		bills:     bills,
		usage:     usage,
		svcTxs:    svcTxs,
		catalog:   cat,
		directory: directory,
		locks:     newPatientLocks(),
		log:       log,
	}
}

// readSources fetches the three inputs of a reconciliation run concurrently:
// the patient's billed history, usage log and service transaction log. Any
// failure aborts the whole run — a partial view could double-bill.
func (s *Service) readSources(ctx context.Context, patientID uuid.UUID) (BilledIndex, []*transactions.InventoryTransaction, []*transactions.ServiceTransaction, error) {
	var (
		billed     []*BilledItem
		usages     []*transactions.InventoryTransaction
		serviceTxs []*transactions.ServiceTransaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if billed, err = s.bills.AllItemsByPatient(gctx, patientID); err != nil {
			return fmt.Errorf("read billed history: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if usages, err = s.usage.ListUsageByPatient(gctx, patientID); err != nil {
			return fmt.Errorf("read inventory usage: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if serviceTxs, err = s.svcTxs.ListServiceTransactionsByPatient(gctx, patientID); err != nil {
			return fmt.Errorf("read service transactions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return BuildBilledIndex(billed), usages, serviceTxs, nil
}

// PreviewUnbilled reconciles the patient's transaction history against their
// billed history and returns a priced draft without persisting anything.
func (s *Service) PreviewUnbilled(ctx context.Context, patientID uuid.UUID) (*BillPreview, error) {
	idx, usages, serviceTxs, err := s.readSources(ctx, patientID)
	if err != nil {
		return nil, err
	}
	res := Reconcile(patientID, usages, serviceTxs, idx)
	preview, err := s.assemble(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("assemble bill preview: %w", err)
	}
	return preview, nil
}

// GenerateBill reconciles, prices and persists a bill for everything the
// patient currently owes. Returns ErrNoUnbilledItems when the candidate set
// is empty. The patient lock is held across the whole read-reconcile-write
// sequence so concurrent runs for the same patient cannot bill the same
// transaction twice.
func (s *Service) GenerateBill(ctx context.Context, patientID uuid.UUID, processedBy string) (*Bill, error) {
	unlock := s.locks.Lock(patientID)
	defer unlock()

	preview, err := s.PreviewUnbilled(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if len(preview.BilledItems) == 0 {
		return nil, ErrNoUnbilledItems
	}

	patient, err := s.directory.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	clinic, err := s.directory.GetClinic(ctx, patient.ClinicID)
	if err != nil {
		return nil, err
	}

	bill := &Bill{
		PatientID:       patientID,
		PatientFullName: patient.FullName(),
		ClinicID:        clinic.ID,
		ClinicName:      clinic.Name,
		Amount:          preview.TotalAmount,
		Status:          BillStatusUnpaid,
		TransactionDate: time.Now().UTC(),
		ProcessedBy:     processedBy,
		BilledItems:     preview.BilledItems,
	}
	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("persist bill: %w", err)
	}

	s.log.Info().
		Str("bill_id", bill.ID.String()).
		Str("patient_id", patientID.String()).
		Float64("amount", bill.Amount).
		Int("lines", len(bill.BilledItems)).
		Int("skipped_prepaid", preview.SkippedPrepaid).
		Int("skipped_already_billed", preview.SkippedAlreadyBilled).
		Msg("bill generated")
	return bill, nil
}

func (s *Service) GetBill(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return s.bills.GetByID(ctx, id)
}

func (s *Service) ListBillsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Bill, int, error) {
	return s.bills.ListByPatient(ctx, patientID, limit, offset)
}
