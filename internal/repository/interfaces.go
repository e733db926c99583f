package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/manavumd/dental-management-system/internal/model"
)

// ErrNotFound is returned by Get-style lookups when no row matches.
// Implementations map their driver's no-rows error onto it so callers
// can test with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint (doctor NPI, affiliation pair, appointment start time).
var ErrDuplicate = errors.New("already exists")

// All repository interfaces in one file
type (
	ClinicRepository interface {
		Create(ctx context.Context, clinic *model.Clinic) error
		Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
		Update(ctx context.Context, clinic *model.Clinic) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Clinic, error)
	}

	SpecialtyRepository interface {
		Create(ctx context.Context, specialty *model.Specialty) error
		Get(ctx context.Context, id uuid.UUID) (*model.Specialty, error)
		List(ctx context.Context) ([]*model.Specialty, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Doctor, error)
		SetSpecialties(ctx context.Context, doctorID uuid.UUID, specialtyIDs []uuid.UUID) error
		ListSpecialties(ctx context.Context, doctorID uuid.UUID) ([]model.Specialty, error)
		// ListByClinicAndSpecialty backs the booking-form widget:
		// doctors affiliated with the clinic who offer the procedure.
		ListByClinicAndSpecialty(ctx context.Context, clinicID, specialtyID uuid.UUID) ([]model.DoctorRef, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Patient, error)
	}

	// ScheduleRepository covers affiliations and their weekly working
	// intervals. Reads GetAffiliation and GetWorkingInterval are the
	// slot engine's only schedule dependencies.
	ScheduleRepository interface {
		CreateAffiliation(ctx context.Context, aff *model.Affiliation) error
		GetAffiliation(ctx context.Context, doctorID, clinicID uuid.UUID) (*model.Affiliation, error)
		GetAffiliationByID(ctx context.Context, id uuid.UUID) (*model.Affiliation, error)
		ListAffiliations(ctx context.Context, doctorID uuid.UUID) ([]*model.Affiliation, error)
		DeleteAffiliation(ctx context.Context, id uuid.UUID) error
		ReplaceWorkingIntervals(ctx context.Context, affiliationID uuid.UUID, intervals []model.WorkingInterval) error
		ListWorkingIntervals(ctx context.Context, affiliationID uuid.UUID) ([]model.WorkingInterval, error)
		GetWorkingInterval(ctx context.Context, affiliationID uuid.UUID, day model.Weekday) (*model.WorkingInterval, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Delete(ctx context.Context, id uuid.UUID) error
		// ListForDay returns the appointments whose start falls in
		// [dayStart, dayEnd) for one doctor-clinic affiliation.
		ListForDay(ctx context.Context, doctorID, clinicID uuid.UUID, dayStart, dayEnd time.Time) ([]*model.Appointment, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID, after time.Time) ([]*model.Appointment, error)
	}

	VisitRepository interface {
		Create(ctx context.Context, visit *model.Visit) error
		Get(ctx context.Context, id uuid.UUID) (*model.Visit, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID, before time.Time) ([]*model.Visit, error)
	}
)
