package appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manavumd/dental-management-system/internal/cache"
	"github.com/manavumd/dental-management-system/internal/model"
	"github.com/manavumd/dental-management-system/internal/repository"
	"github.com/manavumd/dental-management-system/internal/service/availability"
	"github.com/manavumd/dental-management-system/pkg/metrics"
)

type fakeScheduleRepo struct {
	affiliations map[string]*model.Affiliation
	intervals    map[string]*model.WorkingInterval
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		affiliations: make(map[string]*model.Affiliation),
		intervals:    make(map[string]*model.WorkingInterval),
	}
}

func (f *fakeScheduleRepo) addAffiliation(doctorID, clinicID uuid.UUID) *model.Affiliation {
	aff := &model.Affiliation{
		Base:     model.Base{ID: uuid.New()},
		DoctorID: doctorID,
		ClinicID: clinicID,
	}
	f.affiliations[doctorID.String()+"|"+clinicID.String()] = aff
	return aff
}

func (f *fakeScheduleRepo) addInterval(affID uuid.UUID, day model.Weekday, start, end string) {
	startT, err := model.ParseTimeOfDay(start)
	if err != nil {
		panic(err)
	}
	endT, err := model.ParseTimeOfDay(end)
	if err != nil {
		panic(err)
	}
	f.intervals[affID.String()+"|"+string(day)] = &model.WorkingInterval{
		ID:            uuid.New(),
		AffiliationID: affID,
		DayOfWeek:     day,
		StartTime:     startT,
		EndTime:       endT,
	}
}

func (f *fakeScheduleRepo) GetAffiliation(_ context.Context, doctorID, clinicID uuid.UUID) (*model.Affiliation, error) {
	aff, ok := f.affiliations[doctorID.String()+"|"+clinicID.String()]
	if !ok {
		return nil, fmt.Errorf("affiliation: %w", repository.ErrNotFound)
	}
	return aff, nil
}

func (f *fakeScheduleRepo) GetWorkingInterval(_ context.Context, affiliationID uuid.UUID, day model.Weekday) (*model.WorkingInterval, error) {
	interval, ok := f.intervals[affiliationID.String()+"|"+string(day)]
	if !ok {
		return nil, fmt.Errorf("working interval: %w", repository.ErrNotFound)
	}
	return interval, nil
}

func (f *fakeScheduleRepo) CreateAffiliation(context.Context, *model.Affiliation) error { return nil }

func (f *fakeScheduleRepo) GetAffiliationByID(context.Context, uuid.UUID) (*model.Affiliation, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeScheduleRepo) ListAffiliations(context.Context, uuid.UUID) ([]*model.Affiliation, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) DeleteAffiliation(context.Context, uuid.UUID) error { return nil }

func (f *fakeScheduleRepo) ReplaceWorkingIntervals(context.Context, uuid.UUID, []model.WorkingInterval) error {
	return nil
}

func (f *fakeScheduleRepo) ListWorkingIntervals(context.Context, uuid.UUID) ([]model.WorkingInterval, error) {
	return nil, nil
}

// fakeAppointmentRepo enforces the same uniqueness the database's
// (doctor, clinic, start_time) index does.
type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
	failNext     error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, apt *model.Appointment) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	for _, existing := range f.appointments {
		if existing.DoctorID == apt.DoctorID && existing.ClinicID == apt.ClinicID && existing.StartTime.Equal(apt.StartTime) {
			return fmt.Errorf("appointment: %w", repository.ErrDuplicate)
		}
	}
	apt.ID = uuid.New()
	f.appointments[apt.ID] = apt
	return nil
}

func (f *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, fmt.Errorf("appointment: %w", repository.ErrNotFound)
	}
	return apt, nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.appointments[id]; !ok {
		return fmt.Errorf("appointment: %w", repository.ErrNotFound)
	}
	delete(f.appointments, id)
	return nil
}

func (f *fakeAppointmentRepo) ListForDay(_ context.Context, doctorID, clinicID uuid.UUID, dayStart, dayEnd time.Time) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range f.appointments {
		if apt.DoctorID != doctorID || apt.ClinicID != clinicID {
			continue
		}
		if apt.StartTime.Before(dayStart) || !apt.StartTime.Before(dayEnd) {
			continue
		}
		out = append(out, apt)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListForPatient(_ context.Context, patientID uuid.UUID, after time.Time) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range f.appointments {
		if apt.PatientID == patientID && !apt.StartTime.Before(after) {
			out = append(out, apt)
		}
	}
	return out, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*model.Patient)}
}

func (f *fakePatientRepo) add() uuid.UUID {
	id := uuid.New()
	f.patients[id] = &model.Patient{Base: model.Base{ID: id}, Name: "Test Patient"}
	return id
}

func (f *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient: %w", repository.ErrNotFound)
	}
	return p, nil
}

func (f *fakePatientRepo) Create(context.Context, *model.Patient) error { return nil }
func (f *fakePatientRepo) Update(context.Context, *model.Patient) error { return nil }
func (f *fakePatientRepo) Delete(context.Context, uuid.UUID) error      { return nil }
func (f *fakePatientRepo) List(context.Context) ([]*model.Patient, error) {
	return nil, nil
}

type bookingFixture struct {
	svc          *Service
	appointments *fakeAppointmentRepo
	schedules    *fakeScheduleRepo
	patients     *fakePatientRepo
	slotCache    cache.SlotCache
	doctorID     uuid.UUID
	clinicID     uuid.UUID
	patientID    uuid.UUID
	procedureID  uuid.UUID
}

// newBookingFixture wires a doctor working Mondays 09:00-17:00.
func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	doctorID, clinicID := uuid.New(), uuid.New()
	schedules := newFakeScheduleRepo()
	aff := schedules.addAffiliation(doctorID, clinicID)
	schedules.addInterval(aff.ID, model.Monday, "09:00", "17:00")

	appointments := newFakeAppointmentRepo()
	patients := newFakePatientRepo()
	slotCache := cache.NewMemorySlotCache(time.Minute)

	m := metrics.NewMetrics(prometheus.NewRegistry(), "test")
	availabilitySvc := availability.NewService(schedules, appointments, slotCache, m, time.UTC)
	svc := NewService(appointments, schedules, patients, availabilitySvc, slotCache, m, time.UTC)

	return &bookingFixture{
		svc:          svc,
		appointments: appointments,
		schedules:    schedules,
		patients:     patients,
		slotCache:    slotCache,
		doctorID:     doctorID,
		clinicID:     clinicID,
		patientID:    patients.add(),
		procedureID:  uuid.New(),
	}
}

func (fx *bookingFixture) request(start string) *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		PatientID:   fx.patientID.String(),
		DoctorID:    fx.doctorID.String(),
		ClinicID:    fx.clinicID.String(),
		ProcedureID: fx.procedureID.String(),
		StartTime:   start,
	}
}

func TestBook(t *testing.T) {
	fx := newBookingFixture(t)
	now := time.Date(2024, 8, 30, 12, 0, 0, 0, time.UTC)

	apt, err := fx.svc.Book(context.Background(), fx.request("2024-09-02 10:00:00"), now)
	require.NoError(t, err)

	assert.Equal(t, fx.patientID, apt.PatientID)
	assert.Equal(t, fx.doctorID, apt.DoctorID)
	assert.True(t, apt.StartTime.Equal(time.Date(2024, 9, 2, 10, 0, 0, 0, time.UTC)))
	assert.True(t, apt.DateBooked.Equal(now))
	assert.Len(t, fx.appointments.appointments, 1)
}

func TestBookSlotAlreadyTaken(t *testing.T) {
	fx := newBookingFixture(t)
	now := time.Now()

	_, err := fx.svc.Book(context.Background(), fx.request("2024-09-02 10:00:00"), now)
	require.NoError(t, err)

	_, err = fx.svc.Book(context.Background(), fx.request("2024-09-02 10:00:00"), now)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Len(t, fx.appointments.appointments, 1)
}

func TestBookOffGridStart(t *testing.T) {
	fx := newBookingFixture(t)

	// 10:07 falls inside working hours but not on the slot grid.
	_, err := fx.svc.Book(context.Background(), fx.request("2024-09-02 10:07:00"), time.Now())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookOutsideWorkingHours(t *testing.T) {
	fx := newBookingFixture(t)

	_, err := fx.svc.Book(context.Background(), fx.request("2024-09-02 18:00:00"), time.Now())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookDayOff(t *testing.T) {
	fx := newBookingFixture(t)

	// 2024-09-03 is a Tuesday; the doctor only works Mondays.
	_, err := fx.svc.Book(context.Background(), fx.request("2024-09-03 10:00:00"), time.Now())
	assert.ErrorIs(t, err, availability.ErrNoScheduleThatDay)
}

func TestBookInvalidStartTime(t *testing.T) {
	fx := newBookingFixture(t)

	for _, start := range []string{"2024-09-02", "10:00:00", "2024-09-02T10:00:00Z", ""} {
		_, err := fx.svc.Book(context.Background(), fx.request(start), time.Now())
		assert.ErrorIs(t, err, ErrInvalidStartTime, "start %q", start)
	}
}

func TestBookUnknownAffiliation(t *testing.T) {
	fx := newBookingFixture(t)

	req := fx.request("2024-09-02 10:00:00")
	req.ClinicID = uuid.New().String()

	_, err := fx.svc.Book(context.Background(), req, time.Now())
	assert.ErrorIs(t, err, availability.ErrAffiliationNotFound)
}

func TestBookUnknownPatient(t *testing.T) {
	fx := newBookingFixture(t)

	req := fx.request("2024-09-02 10:00:00")
	req.PatientID = uuid.New().String()

	_, err := fx.svc.Book(context.Background(), req, time.Now())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookLosesInsertRace(t *testing.T) {
	fx := newBookingFixture(t)

	// The slot looks free at read time but the insert hits the unique
	// index, as it would when a concurrent booking lands first.
	fx.appointments.failNext = fmt.Errorf("appointment: %w", repository.ErrDuplicate)

	_, err := fx.svc.Book(context.Background(), fx.request("2024-09-02 10:00:00"), time.Now())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookInvalidatesSlotCache(t *testing.T) {
	fx := newBookingFixture(t)
	ctx := context.Background()

	// Warm the cache for the day.
	availabilitySvc := fx.svc.availability
	before, err := availabilitySvc.AvailableSlots(ctx, fx.doctorID, fx.clinicID, "2024-09-02")
	require.NoError(t, err)
	require.Len(t, before, 32)

	_, err = fx.svc.Book(ctx, fx.request("2024-09-02 10:00:00"), time.Now())
	require.NoError(t, err)

	after, err := availabilitySvc.AvailableSlots(ctx, fx.doctorID, fx.clinicID, "2024-09-02")
	require.NoError(t, err)
	assert.Len(t, after, 31)

	formatted := make([]string, len(after))
	for i, slot := range after {
		formatted[i] = slot.Format("15:04:05")
	}
	assert.NotContains(t, formatted, "10:00:00")
}

func TestCancelFreesSlot(t *testing.T) {
	fx := newBookingFixture(t)
	ctx := context.Background()

	apt, err := fx.svc.Book(ctx, fx.request("2024-09-02 10:00:00"), time.Now())
	require.NoError(t, err)

	before, err := fx.svc.availability.AvailableSlots(ctx, fx.doctorID, fx.clinicID, "2024-09-02")
	require.NoError(t, err)
	require.Len(t, before, 31)

	require.NoError(t, fx.svc.Cancel(ctx, apt.ID))

	after, err := fx.svc.availability.AvailableSlots(ctx, fx.doctorID, fx.clinicID, "2024-09-02")
	require.NoError(t, err)
	assert.Len(t, after, 32)
}

func TestCancelUnknownAppointment(t *testing.T) {
	fx := newBookingFixture(t)

	err := fx.svc.Cancel(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListUpcomingFiltersPast(t *testing.T) {
	fx := newBookingFixture(t)
	ctx := context.Background()
	now := time.Date(2024, 9, 2, 9, 30, 0, 0, time.UTC)

	// One slot before the cutoff, one after.
	_, err := fx.svc.Book(ctx, fx.request("2024-09-02 09:00:00"), time.Time{})
	require.NoError(t, err)
	_, err = fx.svc.Book(ctx, fx.request("2024-09-02 10:00:00"), time.Time{})
	require.NoError(t, err)

	upcoming, err := fx.svc.ListUpcoming(ctx, fx.patientID, now)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "10:00:00", upcoming[0].StartTime.Format("15:04:05"))
}
