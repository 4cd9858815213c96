package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*DoctorResponse, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}
	if req.Specialization == "" {
		return nil, ErrMissingSpecialization
	}
	if req.ConsultationFee.LessThan(decimal.Zero) {
		return nil, ErrNegativeFee
	}
	if req.AvailableFrom == "" {
		req.AvailableFrom = "09:00"
	}
	if req.AvailableTo == "" {
		req.AvailableTo = "17:00"
	}
	if err := validateWindow(req.AvailableFrom, req.AvailableTo); err != nil {
		return nil, err
	}

	d, err := s.repo.CreateDoctor(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	return d, nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]DoctorResponse, error) {
	doctors, err := s.repo.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) ListAvailableDoctors(ctx context.Context) ([]DoctorResponse, error) {
	doctors, err := s.repo.ListAvailableDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list available doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) GetDoctor(ctx context.Context, id string) (*DoctorResponse, error) {
	return s.repo.GetDoctor(ctx, id)
}

func (s *Service) UpdateDoctor(ctx context.Context, id string, req UpdateDoctorRequest) (*DoctorResponse, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}
	if req.Specialization == "" {
		return nil, ErrMissingSpecialization
	}
	if req.ConsultationFee.LessThan(decimal.Zero) {
		return nil, ErrNegativeFee
	}
	if err := validateWindow(req.AvailableFrom, req.AvailableTo); err != nil {
		return nil, err
	}

	return s.repo.UpdateDoctor(ctx, id, req)
}

func (s *Service) DeleteDoctor(ctx context.Context, id string) error {
	return s.repo.DeleteDoctor(ctx, id)
}

func validateWindow(from, to string) error {
	f, err := time.Parse("15:04", from)
	if err != nil {
		return ErrInvalidTimeWindow
	}
	t, err := time.Parse("15:04", to)
	if err != nil {
		return ErrInvalidTimeWindow
	}
	if !f.Before(t) {
		return ErrInvalidTimeWindow
	}
	return nil
}
