package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/manavumd/dental-management-system/internal/cache"
	"github.com/manavumd/dental-management-system/internal/model"
	"github.com/manavumd/dental-management-system/internal/repository"
	"github.com/manavumd/dental-management-system/internal/service/availability"
	"github.com/manavumd/dental-management-system/pkg/metrics"
)

// SlotLayout matches the strings the availability endpoint emits, so a
// client can post back a slot exactly as it received it.
const SlotLayout = "2006-01-02 15:04:05"

var (
	ErrInvalidStartTime = errors.New("invalid start time, expected YYYY-MM-DD HH:MM:SS")
	// ErrSlotUnavailable covers a start that is off the slot grid,
	// outside working hours, or already booked.
	ErrSlotUnavailable = errors.New("requested time is not an open slot")
)

type Service struct {
	repo         repository.AppointmentRepository
	schedules    repository.ScheduleRepository
	patients     repository.PatientRepository
	availability *availability.Service
	slotCache    cache.SlotCache
	metrics      *metrics.Metrics
	defaultZone  *time.Location
}

func NewService(
	repo repository.AppointmentRepository,
	schedules repository.ScheduleRepository,
	patients repository.PatientRepository,
	availabilitySvc *availability.Service,
	slotCache cache.SlotCache,
	m *metrics.Metrics,
	defaultZone *time.Location,
) *Service {
	if defaultZone == nil {
		defaultZone = time.UTC
	}
	return &Service{
		repo:         repo,
		schedules:    schedules,
		patients:     patients,
		availability: availabilitySvc,
		slotCache:    slotCache,
		metrics:      m,
		defaultZone:  defaultZone,
	}
}

// Book validates the requested start against the availability engine
// and inserts the appointment. The check is advisory; the unique index
// on (doctor, clinic, start_time) settles concurrent bookings, which
// surface here as ErrSlotUnavailable. now is passed in by the caller
// so booking stays deterministic under test.
func (s *Service) Book(ctx context.Context, req *model.CreateAppointmentRequest, now time.Time) (*model.Appointment, error) {
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
	procedureID, err := uuid.Parse(req.ProcedureID)
	if err != nil {
		return nil, fmt.Errorf("invalid procedure ID: %w", err)
	}

	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, fmt.Errorf("failed to verify patient: %w", err)
	}

	aff, err := s.schedules.GetAffiliation(ctx, doctorID, clinicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, availability.ErrAffiliationNotFound
		}
		return nil, fmt.Errorf("failed to look up affiliation: %w", err)
	}

	loc := s.defaultZone
	if aff.ClinicTimezone != "" {
		if loc, err = time.LoadLocation(aff.ClinicTimezone); err != nil {
			return nil, fmt.Errorf("failed to load clinic time zone %q: %w", aff.ClinicTimezone, err)
		}
	}

	start, err := time.ParseInLocation(SlotLayout, req.StartTime, loc)
	if err != nil {
		return nil, ErrInvalidStartTime
	}

	date := start.Format(availability.DateLayout)
	slots, err := s.availability.AvailableSlots(ctx, doctorID, clinicID, date)
	if err != nil {
		if errors.Is(err, availability.ErrFullyBooked) {
			s.metrics.BookingConflicts.Inc()
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}
	if !containsSlot(slots, start) {
		s.metrics.BookingConflicts.Inc()
		return nil, ErrSlotUnavailable
	}

	apt := &model.Appointment{
		PatientID:   patientID,
		DoctorID:    doctorID,
		ClinicID:    clinicID,
		ProcedureID: procedureID,
		StartTime:   start,
		DateBooked:  now,
	}
	if err := s.repo.Create(ctx, apt); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Another booking claimed the slot between the
			// availability read and this insert.
			s.metrics.BookingConflicts.Inc()
			s.invalidateDay(ctx, doctorID, clinicID, date)
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.invalidateDay(ctx, doctorID, clinicID, date)
	s.metrics.AppointmentsBooked.Inc()
	return apt, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return apt, nil
}

// Cancel removes the appointment and frees its slot.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	date := apt.StartTime.Format(availability.DateLayout)
	if aff, err := s.schedules.GetAffiliation(ctx, apt.DoctorID, apt.ClinicID); err == nil && aff.ClinicTimezone != "" {
		if loc, err := time.LoadLocation(aff.ClinicTimezone); err == nil {
			date = apt.StartTime.In(loc).Format(availability.DateLayout)
		}
	}
	s.invalidateDay(ctx, apt.DoctorID, apt.ClinicID, date)
	s.metrics.AppointmentsCancelled.Inc()
	return nil
}

// ListUpcoming returns a patient's appointments at or after now, in
// chronological order.
func (s *Service) ListUpcoming(ctx context.Context, patientID uuid.UUID, now time.Time) ([]*model.Appointment, error) {
	appointments, err := s.repo.ListForPatient(ctx, patientID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) invalidateDay(ctx context.Context, doctorID, clinicID uuid.UUID, date string) {
	if s.slotCache != nil {
		s.slotCache.InvalidateDay(ctx, doctorID, clinicID, date)
	}
}

func containsSlot(slots []time.Time, start time.Time) bool {
	for _, slot := range slots {
		if slot.Equal(start) {
			return true
		}
	}
	return false
}
