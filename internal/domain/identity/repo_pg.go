package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	var p Patient
	err := r.pool.QueryRow(ctx, `
		SELECT id, clinic_id, first_name, last_name, birth_date, phone, created_at, updated_at
		FROM patient WHERE id = $1`, id).
		Scan(&p.ID, &p.ClinicID, &p.FirstName, &p.LastName, &p.BirthDate, &p.Phone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type clinicRepoPG struct{ pool *pgxpool.Pool }

func NewClinicRepoPG(pool *pgxpool.Pool) ClinicRepository {
	return &clinicRepoPG{pool: pool}
}

func (r *clinicRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	var cl Clinic
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, address, phone, created_at
		FROM clinic WHERE id = $1`, id).
		Scan(&cl.ID, &cl.Name, &cl.Address, &cl.Phone, &cl.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &cl, nil
}
