package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manavumd/dental-management-system/internal/model"
	"github.com/manavumd/dental-management-system/internal/repository"
	"github.com/manavumd/dental-management-system/pkg/validator"
)

const dobLayout = "2006-01-02"

var validate = validator.New()

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	dob, err := time.Parse(dobLayout, req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("invalid date of birth, expected YYYY-MM-DD: %w", err)
	}
	if err := validate.Var(req.Last4SSN, "len=4,numeric"); err != nil {
		return nil, fmt.Errorf("last 4 of SSN must be exactly 4 digits")
	}

	patient := &model.Patient{
		Name:        req.Name,
		DateOfBirth: dob,
		Last4SSN:    req.Last4SSN,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		Address:     req.Address,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(dobLayout, *req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("invalid date of birth, expected YYYY-MM-DD: %w", err)
		}
		patient.DateOfBirth = dob
	}
	if req.Last4SSN != nil {
		if err := validate.Var(*req.Last4SSN, "len=4,numeric"); err != nil {
			return nil, fmt.Errorf("last 4 of SSN must be exactly 4 digits")
		}
		patient.Last4SSN = *req.Last4SSN
	}
	if req.PhoneNumber != nil {
		patient.PhoneNumber = *req.PhoneNumber
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
