package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service resolves patient and clinic records for display on bills. Registry
// management (admissions, demographics editing) lives elsewhere.
type Service struct {
	patients PatientRepository
	clinics  ClinicRepository
}

func NewService(patients PatientRepository, clinics ClinicRepository) *Service {
	return &Service{patients: patients, clinics: clinics}
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get patient %s: %w", id, err)
	}
	return p, nil
}

func (s *Service) GetClinic(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	cl, err := s.clinics.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get clinic %s: %w", id, err)
	}
	return cl, nil
}
