package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/manavumd/dental-management-system/internal/cache"
	"github.com/manavumd/dental-management-system/internal/model"
	"github.com/manavumd/dental-management-system/internal/repository"
	"github.com/manavumd/dental-management-system/pkg/metrics"
)

// DateLayout is the only accepted request date format.
const DateLayout = "2006-01-02"

// Availability outcomes. The three zero-slot cases are distinct so
// callers can tell "wrong clinic" from "closed that day" from "booked
// out".
var (
	ErrInvalidDate         = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrAffiliationNotFound = errors.New("doctor is not affiliated with the selected clinic")
	ErrNoScheduleThatDay   = errors.New("doctor is not available on the selected day")
	ErrFullyBooked         = errors.New("no available slots for the selected day")
)

type Service struct {
	schedules    repository.ScheduleRepository
	appointments repository.AppointmentRepository
	slotCache    cache.SlotCache
	metrics      *metrics.Metrics
	defaultZone  *time.Location
}

// NewService wires the slot engine. slotCache may be nil to disable
// caching; defaultZone is used for clinics without an explicit zone.
func NewService(
	schedules repository.ScheduleRepository,
	appointments repository.AppointmentRepository,
	slotCache cache.SlotCache,
	m *metrics.Metrics,
	defaultZone *time.Location,
) *Service {
	if defaultZone == nil {
		defaultZone = time.UTC
	}
	return &Service{
		schedules:    schedules,
		appointments: appointments,
		slotCache:    slotCache,
		metrics:      m,
		defaultZone:  defaultZone,
	}
}

// AvailableSlots computes the free fixed-duration start times for one
// doctor at one clinic on one date. It reads a snapshot and writes
// nothing; the result is advisory, the booking insert is what actually
// claims a slot.
func (s *Service) AvailableSlots(ctx context.Context, doctorID, clinicID uuid.UUID, date string) ([]time.Time, error) {
	start := time.Now()
	slots, err := s.availableSlots(ctx, doctorID, clinicID, date)
	s.metrics.SlotComputationTime.Observe(time.Since(start).Seconds())
	s.metrics.SlotComputations.WithLabelValues(outcomeLabel(err)).Inc()
	if err == nil {
		s.metrics.SlotsReturned.Observe(float64(len(slots)))
	}
	return slots, err
}

func (s *Service) availableSlots(ctx context.Context, doctorID, clinicID uuid.UUID, date string) ([]time.Time, error) {
	// Date validation happens before any store access.
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if s.slotCache != nil {
		if slots, ok := s.slotCache.GetSlots(ctx, doctorID, clinicID, date); ok {
			s.metrics.SlotCacheHits.Inc()
			return slots, nil
		}
		s.metrics.SlotCacheMisses.Inc()
	}

	aff, err := s.schedules.GetAffiliation(ctx, doctorID, clinicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAffiliationNotFound
		}
		return nil, fmt.Errorf("failed to look up affiliation: %w", err)
	}

	interval, err := s.schedules.GetWorkingInterval(ctx, aff.ID, model.WeekdayOf(day))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoScheduleThatDay
		}
		return nil, fmt.Errorf("failed to look up working interval: %w", err)
	}

	// Schedule writes reject start >= end, but intervals are edited
	// independently of this engine, so a malformed row degrades to a
	// closed day instead of an infinite or negative window.
	if !interval.StartTime.Before(interval.EndTime) {
		log.Warn().
			Str("affiliation_id", aff.ID.String()).
			Str("day_of_week", string(interval.DayOfWeek)).
			Msg("malformed working interval, treating day as closed")
		return nil, ErrNoScheduleThatDay
	}

	loc, err := s.clinicZone(aff.ClinicTimezone)
	if err != nil {
		return nil, err
	}

	year, month, dayOfMonth := day.Date()
	windowStart := interval.StartTime.At(year, month, dayOfMonth, loc)
	windowEnd := interval.EndTime.At(year, month, dayOfMonth, loc)
	dayStart := time.Date(year, month, dayOfMonth, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	booked, err := s.appointments.ListForDay(ctx, doctorID, clinicID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked appointments: %w", err)
	}

	slots := freeSlots(windowStart, windowEnd, booked)
	if len(slots) == 0 {
		return nil, ErrFullyBooked
	}

	if s.slotCache != nil {
		s.slotCache.SetSlots(ctx, doctorID, clinicID, date, slots)
	}
	return slots, nil
}

// WeeklySchedule returns the raw working intervals for one affiliation
// in Monday-first order. It shares the affiliation lookup (and its
// not-found outcome) with the slot computation.
func (s *Service) WeeklySchedule(ctx context.Context, doctorID, clinicID uuid.UUID) ([]model.WorkingInterval, error) {
	aff, err := s.schedules.GetAffiliation(ctx, doctorID, clinicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAffiliationNotFound
		}
		return nil, fmt.Errorf("failed to look up affiliation: %w", err)
	}

	intervals, err := s.schedules.ListWorkingIntervals(ctx, aff.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list working intervals: %w", err)
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].DayOfWeek.Rank() < intervals[j].DayOfWeek.Rank()
	})
	return intervals, nil
}

func (s *Service) clinicZone(name string) (*time.Location, error) {
	if name == "" {
		return s.defaultZone, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load clinic time zone %q: %w", name, err)
	}
	return loc, nil
}

// freeSlots walks candidate start times from windowStart in fixed
// increments, keeping candidates whose full duration fits the window
// and that no booked appointment occupies. Intervals are half-open on
// both sides: an appointment ending exactly at a candidate's start
// does not conflict.
func freeSlots(windowStart, windowEnd time.Time, booked []*model.Appointment) []time.Time {
	type span struct {
		start, end time.Time
	}
	occupied := make([]span, 0, len(booked))
	for _, apt := range booked {
		occupied = append(occupied, span{start: apt.StartTime, end: apt.EndTime()})
	}

	var slots []time.Time
	for candidate := windowStart; !candidate.Add(model.AppointmentDuration).After(windowEnd); candidate = candidate.Add(model.AppointmentDuration) {
		conflict := false
		for _, occ := range occupied {
			if !occ.start.After(candidate) && candidate.Before(occ.end) {
				conflict = true
				break
			}
		}
		if !conflict {
			slots = append(slots, candidate)
		}
	}
	return slots
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, ErrAffiliationNotFound):
		return "affiliation_not_found"
	case errors.Is(err, ErrNoScheduleThatDay):
		return "no_schedule"
	case errors.Is(err, ErrFullyBooked):
		return "fully_booked"
	default:
		return "error"
	}
}
