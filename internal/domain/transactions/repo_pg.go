package transactions

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== Inventory Transaction Repository ===========

type inventoryTxRepoPG struct{ pool *pgxpool.Pool }

func NewInventoryTransactionRepoPG(pool *pgxpool.Pool) InventoryTransactionRepository {
	return &inventoryTxRepoPG{pool: pool}
}

const invTxCols = `id, item_id, item_name, quantity_changed, transaction_type,
	source_department, patient_id, occurred_at, created_at`

func (r *inventoryTxRepoPG) scanTx(row pgx.Row) (*InventoryTransaction, error) {
	var t InventoryTransaction
	err := row.Scan(&t.ID, &t.ItemID, &t.ItemName, &t.QuantityChanged, &t.TransactionType,
		&t.SourceDepartment, &t.PatientID, &t.OccurredAt, &t.CreatedAt)
	return &t, err
}

func (r *inventoryTxRepoPG) Create(ctx context.Context, tx *InventoryTransaction) error {
	tx.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO inventory_transaction (id, item_id, item_name, quantity_changed,
			transaction_type, source_department, patient_id, occurred_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		tx.ID, tx.ItemID, tx.ItemName, tx.QuantityChanged,
		tx.TransactionType, tx.SourceDepartment, tx.PatientID, tx.OccurredAt)
	return err
}

func (r *inventoryTxRepoPG) ListUsageByPatient(ctx context.Context, patientID uuid.UUID) ([]*InventoryTransaction, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+invTxCols+` FROM inventory_transaction
		WHERE patient_id = $1 AND transaction_type = $2
		ORDER BY occurred_at, created_at`, patientID, InventoryTxUsage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var txs []*InventoryTransaction
	for rows.Next() {
		t, err := r.scanTx(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// =========== Service Transaction Repository ===========

type serviceTxRepoPG struct{ pool *pgxpool.Pool }

func NewServiceTransactionRepoPG(pool *pgxpool.Pool) ServiceTransactionRepository {
	return &serviceTxRepoPG{pool: pool}
}

const svcTxCols = `id, service_id, service_name, service_category, transaction_type,
	professional_fee, requested_by_name, patient_id, created_at`

func (r *serviceTxRepoPG) scanTx(row pgx.Row) (*ServiceTransaction, error) {
	var t ServiceTransaction
	err := row.Scan(&t.ID, &t.ServiceID, &t.ServiceName, &t.ServiceCategory, &t.TransactionType,
		&t.ProfessionalFee, &t.RequestedByName, &t.PatientID, &t.CreatedAt)
	return &t, err
}

func (r *serviceTxRepoPG) Create(ctx context.Context, tx *ServiceTransaction) error {
	tx.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO service_transaction (id, service_id, service_name, service_category,
			transaction_type, professional_fee, requested_by_name, patient_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		tx.ID, tx.ServiceID, tx.ServiceName, tx.ServiceCategory,
		tx.TransactionType, tx.ProfessionalFee, tx.RequestedByName, tx.PatientID)
	return err
}

func (r *serviceTxRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*ServiceTransaction, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+svcTxCols+` FROM service_transaction
		WHERE patient_id = $1 ORDER BY created_at`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var txs []*ServiceTransaction
	for rows.Next() {
		t, err := r.scanTx(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
