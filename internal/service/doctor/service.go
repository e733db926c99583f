package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/manavumd/dental-management-system/internal/model"
	"github.com/manavumd/dental-management-system/internal/repository"
	"github.com/manavumd/dental-management-system/pkg/validator"
)

var (
	ErrDuplicateNPI = errors.New("a doctor with this NPI already exists")
	ErrInvalidNPI   = errors.New("NPI must be exactly 10 digits")
)

var validate = validator.New()

type Service struct {
	repo        repository.DoctorRepository
	specialties repository.SpecialtyRepository
}

func NewService(repo repository.DoctorRepository, specialties repository.SpecialtyRepository) *Service {
	return &Service{repo: repo, specialties: specialties}
}

func (s *Service) CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	if err := validate.Var(req.NPI, "len=10,numeric"); err != nil {
		return nil, ErrInvalidNPI
	}

	specialtyIDs, err := s.resolveSpecialties(ctx, req.SpecialtyIDs)
	if err != nil {
		return nil, err
	}

	doctor := &model.Doctor{
		NPI:         req.NPI,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.repo.Create(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateNPI
		}
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	if err := s.repo.SetSpecialties(ctx, doctor.ID, specialtyIDs); err != nil {
		return nil, fmt.Errorf("failed to set doctor specialties: %w", err)
	}

	return s.GetDoctor(ctx, doctor.ID)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	specialties, err := s.repo.ListSpecialties(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor specialties: %w", err)
	}
	doctor.Specialties = specialties
	return doctor, nil
}

func (s *Service) UpdateDoctor(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Email != nil {
		doctor.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		doctor.PhoneNumber = *req.PhoneNumber
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	if req.SpecialtyIDs != nil {
		specialtyIDs, err := s.resolveSpecialties(ctx, req.SpecialtyIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.SetSpecialties(ctx, id, specialtyIDs); err != nil {
			return nil, fmt.Errorf("failed to set doctor specialties: %w", err)
		}
	}

	return s.GetDoctor(ctx, id)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// Search finds doctors affiliated with a clinic who offer a procedure;
// it feeds the booking form's doctor dropdown.
func (s *Service) Search(ctx context.Context, clinicID, procedureID uuid.UUID) ([]model.DoctorRef, error) {
	doctors, err := s.repo.ListByClinicAndSpecialty(ctx, clinicID, procedureID)
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) resolveSpecialties(ctx context.Context, ids []string) ([]uuid.UUID, error) {
	specialtyIDs := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid specialty ID %q: %w", raw, err)
		}
		if _, err := s.specialties.Get(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to verify specialty: %w", err)
		}
		specialtyIDs = append(specialtyIDs, id)
	}
	return specialtyIDs, nil
}
