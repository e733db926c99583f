package clinic

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manavumd/dental-management-system/internal/model"
	"github.com/manavumd/dental-management-system/internal/repository"
)

type Service struct {
	repo repository.ClinicRepository
}

func NewService(repo repository.ClinicRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateClinic(ctx context.Context, req *model.CreateClinicRequest) (*model.Clinic, error) {
	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	clinic := &model.Clinic{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		City:        req.City,
		State:       req.State,
		Email:       req.Email,
		Timezone:    tz,
	}
	if err := s.repo.Create(ctx, clinic); err != nil {
		return nil, fmt.Errorf("failed to create clinic: %w", err)
	}
	return clinic, nil
}

func (s *Service) GetClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return clinic, nil
}

func (s *Service) UpdateClinic(ctx context.Context, id uuid.UUID, req *model.UpdateClinicRequest) (*model.Clinic, error) {
	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}

	if req.Name != nil {
		clinic.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		clinic.PhoneNumber = *req.PhoneNumber
	}
	if req.City != nil {
		clinic.City = *req.City
	}
	if req.State != nil {
		clinic.State = *req.State
	}
	if req.Email != nil {
		clinic.Email = *req.Email
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", *req.Timezone, err)
		}
		clinic.Timezone = *req.Timezone
	}

	if err := s.repo.Update(ctx, clinic); err != nil {
		return nil, fmt.Errorf("failed to update clinic: %w", err)
	}
	return clinic, nil
}

func (s *Service) DeleteClinic(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete clinic: %w", err)
	}
	return nil
}

func (s *Service) ListClinics(ctx context.Context) ([]*model.Clinic, error) {
	clinics, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics: %w", err)
	}
	return clinics, nil
}
