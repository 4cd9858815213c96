package patient

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
	if err := validatePatient(req.Name, req.DateOfBirth, req.Phone); err != nil {
		return nil, err
	}
	if req.BloodGroup == "" {
		req.BloodGroup = "Unknown"
	}

	p, err := s.repo.CreatePatient(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	return p, nil
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]PatientResponse, int, error) {
	patients, total, err := s.repo.ListPatients(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, total, nil
}

func (s *Service) GetPatient(ctx context.Context, id string) (*PatientResponse, error) {
	return s.repo.GetPatient(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*PatientResponse, error) {
	if err := validatePatient(req.Name, req.DateOfBirth, req.Phone); err != nil {
		return nil, err
	}
	if req.BloodGroup == "" {
		req.BloodGroup = "Unknown"
	}

	return s.repo.UpdatePatient(ctx, id, req)
}

func (s *Service) DeletePatient(ctx context.Context, id string) error {
	return s.repo.DeletePatient(ctx, id)
}

func validatePatient(name, dateOfBirth, phone string) error {
	if name == "" {
		return ErrMissingName
	}
	if dateOfBirth == "" {
		return ErrMissingDateOfBirth
	}
	dob, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return ErrInvalidDateOfBirth
	}
	if dob.After(time.Now()) {
		return ErrInvalidDateOfBirth
	}
	if phone == "" {
		return ErrMissingPhone
	}
	return nil
}
