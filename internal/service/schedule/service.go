package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/manavumd/dental-management-system/internal/model"
	"github.com/manavumd/dental-management-system/internal/repository"
)

var (
	ErrAlreadyAffiliated = errors.New("doctor is already affiliated with this clinic")
	ErrDuplicateWeekday  = errors.New("schedule lists the same day of week twice")
)

// Service manages doctor-clinic affiliations and their weekly hours.
type Service struct {
	repo    repository.ScheduleRepository
	doctors repository.DoctorRepository
	clinics repository.ClinicRepository
}

func NewService(repo repository.ScheduleRepository, doctors repository.DoctorRepository, clinics repository.ClinicRepository) *Service {
	return &Service{repo: repo, doctors: doctors, clinics: clinics}
}

func (s *Service) CreateAffiliation(ctx context.Context, req *model.CreateAffiliationRequest) (*model.Affiliation, error) {
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("invalid doctor ID: %w", err)
	}
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinic ID: %w", err)
	}

	if _, err := s.doctors.Get(ctx, doctorID); err != nil {
		return nil, fmt.Errorf("failed to verify doctor: %w", err)
	}
	if _, err := s.clinics.Get(ctx, clinicID); err != nil {
		return nil, fmt.Errorf("failed to verify clinic: %w", err)
	}

	aff := &model.Affiliation{
		DoctorID:      doctorID,
		ClinicID:      clinicID,
		OfficeAddress: req.OfficeAddress,
	}
	if err := s.repo.CreateAffiliation(ctx, aff); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyAffiliated
		}
		return nil, fmt.Errorf("failed to create affiliation: %w", err)
	}
	return aff, nil
}

func (s *Service) GetAffiliation(ctx context.Context, id uuid.UUID) (*model.Affiliation, error) {
	aff, err := s.repo.GetAffiliationByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get affiliation: %w", err)
	}
	return aff, nil
}

func (s *Service) ListAffiliations(ctx context.Context, doctorID uuid.UUID) ([]*model.Affiliation, error) {
	affs, err := s.repo.ListAffiliations(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list affiliations: %w", err)
	}
	return affs, nil
}

func (s *Service) DeleteAffiliation(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteAffiliation(ctx, id); err != nil {
		return fmt.Errorf("failed to delete affiliation: %w", err)
	}
	return nil
}

// SetWeeklyHours replaces the affiliation's whole schedule. Each day
// appears at most once and every interval must end after it starts;
// the slot engine is allowed to assume stored rows are well formed.
func (s *Service) SetWeeklyHours(ctx context.Context, affiliationID uuid.UUID, inputs []model.WorkingIntervalInput) ([]model.WorkingInterval, error) {
	if _, err := s.repo.GetAffiliationByID(ctx, affiliationID); err != nil {
		return nil, fmt.Errorf("failed to get affiliation: %w", err)
	}

	seen := make(map[model.Weekday]bool, len(inputs))
	intervals := make([]model.WorkingInterval, 0, len(inputs))
	for _, input := range inputs {
		day, err := model.ParseWeekday(input.DayOfWeek)
		if err != nil {
			return nil, err
		}
		if seen[day] {
			return nil, ErrDuplicateWeekday
		}
		seen[day] = true

		start, err := model.ParseTimeOfDay(input.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := model.ParseTimeOfDay(input.EndTime)
		if err != nil {
			return nil, err
		}

		interval := model.WorkingInterval{
			AffiliationID: affiliationID,
			DayOfWeek:     day,
			StartTime:     start,
			EndTime:       end,
		}
		if err := interval.Validate(); err != nil {
			return nil, err
		}
		intervals = append(intervals, interval)
	}

	if err := s.repo.ReplaceWorkingIntervals(ctx, affiliationID, intervals); err != nil {
		return nil, fmt.Errorf("failed to replace working intervals: %w", err)
	}
	return intervals, nil
}

func (s *Service) WeeklyHours(ctx context.Context, affiliationID uuid.UUID) ([]model.WorkingInterval, error) {
	intervals, err := s.repo.ListWorkingIntervals(ctx, affiliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list working intervals: %w", err)
	}
	return intervals, nil
}
