package transactions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service validates and records stock movements and medical service
// transactions, and exposes the per-patient views the billing run reads.
type Service struct {
	inventory InventoryTransactionRepository
	services  ServiceTransactionRepository
	log       zerolog.Logger
}

func NewService(inventory InventoryTransactionRepository, services ServiceTransactionRepository, log zerolog.Logger) *Service {
	return &Service{inventory: inventory, services: services, log: log}
}

func (s *Service) RecordInventoryTransaction(ctx context.Context, tx *InventoryTransaction) error {
	if tx.ItemID == "" {
		return fmt.Errorf("item_id is required")
	}
	if tx.ItemName == "" {
		return fmt.Errorf("item_name is required")
	}
	switch tx.TransactionType {
	case InventoryTxUsage, InventoryTxRestock, InventoryTxAdjustment:
	default:
		return fmt.Errorf("invalid transaction_type %q", tx.TransactionType)
	}
	if tx.TransactionType == InventoryTxUsage && tx.PatientID == nil {
		return fmt.Errorf("usage transactions require a patient_id")
	}
	if tx.OccurredAt.IsZero() {
		tx.OccurredAt = time.Now().UTC()
	}
	if err := s.inventory.Create(ctx, tx); err != nil {
		return fmt.Errorf("record inventory transaction: %w", err)
	}
	s.log.Info().
		Str("item_id", tx.ItemID).
		Str("transaction_type", tx.TransactionType).
		Float64("quantity_changed", tx.QuantityChanged).
		Msg("inventory transaction recorded")
	return nil
}

func (s *Service) RecordServiceTransaction(ctx context.Context, tx *ServiceTransaction) error {
	if tx.ServiceID == "" {
		return fmt.Errorf("service_id is required")
	}
	if tx.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}
	if tx.ServiceCategory == "" {
		return fmt.Errorf("service_category is required")
	}
	if tx.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	switch tx.TransactionType {
	case ServiceTxNormal, ServiceTxPrepayment:
	default:
		return fmt.Errorf("invalid transaction_type %q", tx.TransactionType)
	}
	if tx.ServiceCategory == ServiceCategoryConsultation && tx.ProfessionalFee == nil {
		return fmt.Errorf("consultation transactions require a professional_fee")
	}
	if err := s.services.Create(ctx, tx); err != nil {
		return fmt.Errorf("record service transaction: %w", err)
	}
	s.log.Info().
		Str("service_id", tx.ServiceID).
		Str("service_category", tx.ServiceCategory).
		Str("transaction_type", tx.TransactionType).
		Msg("service transaction recorded")
	return nil
}

// ListUsageByPatient returns the patient's inventory usage log.
func (s *Service) ListUsageByPatient(ctx context.Context, patientID uuid.UUID) ([]*InventoryTransaction, error) {
	return s.inventory.ListUsageByPatient(ctx, patientID)
}

// ListServiceTransactionsByPatient returns the patient's service transaction
// log, prepayments included.
func (s *Service) ListServiceTransactionsByPatient(ctx context.Context, patientID uuid.UUID) ([]*ServiceTransaction, error) {
	return s.services.ListByPatient(ctx, patientID)
}
