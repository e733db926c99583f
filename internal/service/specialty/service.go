package specialty

import (
	"context"
	"fmt"

	"github.com/manavumd/dental-management-system/internal/model"
	"github.com/manavumd/dental-management-system/internal/repository"
)

type Service struct {
	repo repository.SpecialtyRepository
}

func NewService(repo repository.SpecialtyRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateSpecialty(ctx context.Context, req *model.CreateSpecialtyRequest) (*model.Specialty, error) {
	specialty := &model.Specialty{Name: req.Name}
	if err := s.repo.Create(ctx, specialty); err != nil {
		return nil, fmt.Errorf("failed to create specialty: %w", err)
	}
	return specialty, nil
}

func (s *Service) ListSpecialties(ctx context.Context) ([]*model.Specialty, error) {
	specialties, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}
	return specialties, nil
}
