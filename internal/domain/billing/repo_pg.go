package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type billRepoPG struct{ pool *pgxpool.Pool }

func NewBillRepoPG(pool *pgxpool.Pool) BillRepository {
	return &billRepoPG{pool: pool}
}

const billCols = `id, patient_id, patient_full_name, clinic_id, clinic_name,
	amount, status, transaction_date, processed_by, created_at`

const billedItemCols = `id, bill_id, patient_id, item_type, item_id, item_name,
	quantity, price_per_unit, total_price, occurred_at, consultation_type,
	requested_by, created_at`

func scanBill(row pgx.Row) (*Bill, error) {
	var b Bill
	err := row.Scan(&b.ID, &b.PatientID, &b.PatientFullName, &b.ClinicID, &b.ClinicName,
		&b.Amount, &b.Status, &b.TransactionDate, &b.ProcessedBy, &b.CreatedAt)
	return &b, err
}

func scanBilledItem(row pgx.Row) (*BilledItem, error) {
	var it BilledItem
	err := row.Scan(&it.ID, &it.BillID, &it.PatientID, &it.ItemType, &it.ItemID, &it.ItemName,
		&it.Quantity, &it.PricePerUnit, &it.TotalPrice, &it.OccurredAt, &it.ConsultationType,
		&it.RequestedBy, &it.CreatedAt)
	return &it, err
}

// Create writes the bill and all its line items in one transaction. The
// unique index on (patient_id, item_type, item_id, occurred_at) makes a
// concurrent double-bill fail the whole transaction rather than half-apply.
func (r *billRepoPG) Create(ctx context.Context, bill *Bill) error {
	bill.ID = uuid.New()
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO bill (id, patient_id, patient_full_name, clinic_id, clinic_name,
			amount, status, transaction_date, processed_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		bill.ID, bill.PatientID, bill.PatientFullName, bill.ClinicID, bill.ClinicName,
		bill.Amount, bill.Status, bill.TransactionDate, bill.ProcessedBy, bill.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}

	for _, it := range bill.BilledItems {
		it.ID = uuid.New()
		it.BillID = bill.ID
		it.CreatedAt = bill.CreatedAt
		_, err = tx.Exec(ctx, `
			INSERT INTO billed_item (id, bill_id, patient_id, item_type, item_id, item_name,
				quantity, price_per_unit, total_price, occurred_at, consultation_type,
				requested_by, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
			it.ID, it.BillID, it.PatientID, it.ItemType, it.ItemID, it.ItemName,
			it.Quantity, it.PricePerUnit, it.TotalPrice, it.OccurredAt, it.ConsultationType,
			it.RequestedBy, it.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert billed item %s: %w", it.ItemID, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *billRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Bill, error) {
	b, err := scanBill(r.pool.QueryRow(ctx, `SELECT `+billCols+` FROM bill WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	b.BilledItems, err = r.itemsByBill(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *billRepoPG) itemsByBill(ctx context.Context, billID uuid.UUID) ([]*BilledItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+billedItemCols+` FROM billed_item
		WHERE bill_id = $1 ORDER BY created_at, id`, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *billRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Bill, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bill WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `SELECT `+billCols+` FROM bill
		WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bills []*Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, 0, err
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, b := range bills {
		if b.BilledItems, err = r.itemsByBill(ctx, b.ID); err != nil {
			return nil, 0, err
		}
	}
	return bills, total, nil
}

func (r *billRepoPG) AllItemsByPatient(ctx context.Context, patientID uuid.UUID) ([]*BilledItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+billedItemCols+` FROM billed_item
		WHERE patient_id = $1`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

func collectItems(rows pgx.Rows) ([]*BilledItem, error) {
	var items []*BilledItem
	for rows.Next() {
		it, err := scanBilledItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
