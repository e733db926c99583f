package visit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manavumd/dental-management-system/internal/model"
	"github.com/manavumd/dental-management-system/internal/repository"
)

const dateTimeLayout = "2006-01-02 15:04:05"

var ErrVisitInFuture = errors.New("visit date must be in the past")

type Service struct {
	repo        repository.VisitRepository
	patients    repository.PatientRepository
	specialties repository.SpecialtyRepository
}

func NewService(repo repository.VisitRepository, patients repository.PatientRepository, specialties repository.SpecialtyRepository) *Service {
	return &Service{repo: repo, patients: patients, specialties: specialties}
}

// RecordVisit stores a past visit. now is supplied by the caller so
// the past-only rule stays testable.
func (s *Service) RecordVisit(ctx context.Context, req *model.CreateVisitRequest, now time.Time) (*model.Visit, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("invalid patient ID: %w", err)
	}
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("invalid doctor ID: %w", err)
	}
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinic ID: %w", err)
	}

	dateTime, err := time.Parse(dateTimeLayout, req.DateTime)
	if err != nil {
		return nil, fmt.Errorf("invalid visit date, expected YYYY-MM-DD HH:MM:SS: %w", err)
	}
	if dateTime.After(now) {
		return nil, ErrVisitInFuture
	}

	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, fmt.Errorf("failed to verify patient: %w", err)
	}

	procedures := make([]model.Specialty, 0, len(req.ProcedureIDs))
	for _, raw := range req.ProcedureIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid procedure ID %q: %w", raw, err)
		}
		procedure, err := s.specialties.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to verify procedure: %w", err)
		}
		procedures = append(procedures, *procedure)
	}

	visit := &model.Visit{
		PatientID:      patientID,
		DoctorID:       doctorID,
		ClinicID:       clinicID,
		DateTime:       dateTime,
		DoctorNotes:    req.DoctorNotes,
		ProceduresDone: procedures,
	}
	if err := s.repo.Create(ctx, visit); err != nil {
		return nil, fmt.Errorf("failed to create visit: %w", err)
	}
	return visit, nil
}

func (s *Service) GetVisit(ctx context.Context, id uuid.UUID) (*model.Visit, error) {
	visit, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}
	return visit, nil
}

// ListPastVisits returns a patient's visit history, newest first.
func (s *Service) ListPastVisits(ctx context.Context, patientID uuid.UUID, now time.Time) ([]*model.Visit, error) {
	visits, err := s.repo.ListForPatient(ctx, patientID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	return visits, nil
}
