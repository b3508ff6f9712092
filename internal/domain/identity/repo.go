package identity

import (
	"context"

	"github.com/google/uuid"
)

type PatientRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
}

type ClinicRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Clinic, error)
}
