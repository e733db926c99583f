package schedule

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manavumd/dental-management-system/internal/model"
	"github.com/manavumd/dental-management-system/internal/repository"
)

type fakeScheduleRepo struct {
	affiliations map[uuid.UUID]*model.Affiliation
	pairs        map[string]bool
	intervals    map[uuid.UUID][]model.WorkingInterval
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		affiliations: make(map[uuid.UUID]*model.Affiliation),
		pairs:        make(map[string]bool),
		intervals:    make(map[uuid.UUID][]model.WorkingInterval),
	}
}

func (f *fakeScheduleRepo) CreateAffiliation(_ context.Context, aff *model.Affiliation) error {
	key := aff.DoctorID.String() + "|" + aff.ClinicID.String()
	if f.pairs[key] {
		return fmt.Errorf("affiliation: %w", repository.ErrDuplicate)
	}
	aff.ID = uuid.New()
	f.pairs[key] = true
	f.affiliations[aff.ID] = aff
	return nil
}

func (f *fakeScheduleRepo) GetAffiliationByID(_ context.Context, id uuid.UUID) (*model.Affiliation, error) {
	aff, ok := f.affiliations[id]
	if !ok {
		return nil, fmt.Errorf("affiliation: %w", repository.ErrNotFound)
	}
	return aff, nil
}

func (f *fakeScheduleRepo) GetAffiliation(context.Context, uuid.UUID, uuid.UUID) (*model.Affiliation, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeScheduleRepo) ListAffiliations(_ context.Context, doctorID uuid.UUID) ([]*model.Affiliation, error) {
	var out []*model.Affiliation
	for _, aff := range f.affiliations {
		if aff.DoctorID == doctorID {
			out = append(out, aff)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) DeleteAffiliation(_ context.Context, id uuid.UUID) error {
	aff, ok := f.affiliations[id]
	if !ok {
		return fmt.Errorf("affiliation: %w", repository.ErrNotFound)
	}
	delete(f.pairs, aff.DoctorID.String()+"|"+aff.ClinicID.String())
	delete(f.affiliations, id)
	return nil
}

func (f *fakeScheduleRepo) ReplaceWorkingIntervals(_ context.Context, affiliationID uuid.UUID, intervals []model.WorkingInterval) error {
	f.intervals[affiliationID] = intervals
	return nil
}

func (f *fakeScheduleRepo) ListWorkingIntervals(_ context.Context, affiliationID uuid.UUID) ([]model.WorkingInterval, error) {
	return f.intervals[affiliationID], nil
}

func (f *fakeScheduleRepo) GetWorkingInterval(context.Context, uuid.UUID, model.Weekday) (*model.WorkingInterval, error) {
	return nil, repository.ErrNotFound
}

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]bool
}

func (f *fakeDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	if !f.doctors[id] {
		return nil, fmt.Errorf("doctor: %w", repository.ErrNotFound)
	}
	return &model.Doctor{Base: model.Base{ID: id}}, nil
}

func (f *fakeDoctorRepo) Create(context.Context, *model.Doctor) error        { return nil }
func (f *fakeDoctorRepo) Update(context.Context, *model.Doctor) error        { return nil }
func (f *fakeDoctorRepo) Delete(context.Context, uuid.UUID) error            { return nil }
func (f *fakeDoctorRepo) List(context.Context) ([]*model.Doctor, error)      { return nil, nil }
func (f *fakeDoctorRepo) SetSpecialties(context.Context, uuid.UUID, []uuid.UUID) error {
	return nil
}
func (f *fakeDoctorRepo) ListSpecialties(context.Context, uuid.UUID) ([]model.Specialty, error) {
	return nil, nil
}
func (f *fakeDoctorRepo) ListByClinicAndSpecialty(context.Context, uuid.UUID, uuid.UUID) ([]model.DoctorRef, error) {
	return nil, nil
}

type fakeClinicRepo struct {
	clinics map[uuid.UUID]bool
}

func (f *fakeClinicRepo) Get(_ context.Context, id uuid.UUID) (*model.Clinic, error) {
	if !f.clinics[id] {
		return nil, fmt.Errorf("clinic: %w", repository.ErrNotFound)
	}
	return &model.Clinic{Base: model.Base{ID: id}}, nil
}

func (f *fakeClinicRepo) Create(context.Context, *model.Clinic) error   { return nil }
func (f *fakeClinicRepo) Update(context.Context, *model.Clinic) error   { return nil }
func (f *fakeClinicRepo) Delete(context.Context, uuid.UUID) error       { return nil }
func (f *fakeClinicRepo) List(context.Context) ([]*model.Clinic, error) { return nil, nil }

func newTestService() (*Service, *fakeScheduleRepo, uuid.UUID, uuid.UUID) {
	doctorID, clinicID := uuid.New(), uuid.New()
	repo := newFakeScheduleRepo()
	doctors := &fakeDoctorRepo{doctors: map[uuid.UUID]bool{doctorID: true}}
	clinics := &fakeClinicRepo{clinics: map[uuid.UUID]bool{clinicID: true}}
	return NewService(repo, doctors, clinics), repo, doctorID, clinicID
}

func createTestAffiliation(t *testing.T, svc *Service, doctorID, clinicID uuid.UUID) *model.Affiliation {
	t.Helper()
	aff, err := svc.CreateAffiliation(context.Background(), &model.CreateAffiliationRequest{
		DoctorID:      doctorID.String(),
		ClinicID:      clinicID.String(),
		OfficeAddress: "12 Main St",
	})
	require.NoError(t, err)
	return aff
}

func TestCreateAffiliation(t *testing.T) {
	svc, _, doctorID, clinicID := newTestService()

	aff := createTestAffiliation(t, svc, doctorID, clinicID)
	assert.Equal(t, doctorID, aff.DoctorID)
	assert.Equal(t, clinicID, aff.ClinicID)
	assert.Equal(t, "12 Main St", aff.OfficeAddress)
}

func TestCreateAffiliationDuplicatePair(t *testing.T) {
	svc, _, doctorID, clinicID := newTestService()
	createTestAffiliation(t, svc, doctorID, clinicID)

	_, err := svc.CreateAffiliation(context.Background(), &model.CreateAffiliationRequest{
		DoctorID:      doctorID.String(),
		ClinicID:      clinicID.String(),
		OfficeAddress: "12 Main St",
	})
	assert.ErrorIs(t, err, ErrAlreadyAffiliated)
}

func TestCreateAffiliationUnknownDoctor(t *testing.T) {
	svc, _, _, clinicID := newTestService()

	_, err := svc.CreateAffiliation(context.Background(), &model.CreateAffiliationRequest{
		DoctorID:      uuid.New().String(),
		ClinicID:      clinicID.String(),
		OfficeAddress: "12 Main St",
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSetWeeklyHours(t *testing.T) {
	svc, repo, doctorID, clinicID := newTestService()
	aff := createTestAffiliation(t, svc, doctorID, clinicID)

	intervals, err := svc.SetWeeklyHours(context.Background(), aff.ID, []model.WorkingIntervalInput{
		{DayOfWeek: "Mon", StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: "Wed", StartTime: "08:00:00", EndTime: "12:30:00"},
	})
	require.NoError(t, err)
	require.Len(t, intervals, 2)

	assert.Equal(t, model.Monday, intervals[0].DayOfWeek)
	assert.Equal(t, "09:00:00", intervals[0].StartTime.String())
	assert.Equal(t, model.Wednesday, intervals[1].DayOfWeek)
	assert.Equal(t, "12:30:00", intervals[1].EndTime.String())

	stored, err := repo.ListWorkingIntervals(context.Background(), aff.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestSetWeeklyHoursReplacesExisting(t *testing.T) {
	svc, repo, doctorID, clinicID := newTestService()
	aff := createTestAffiliation(t, svc, doctorID, clinicID)

	_, err := svc.SetWeeklyHours(context.Background(), aff.ID, []model.WorkingIntervalInput{
		{DayOfWeek: "Mon", StartTime: "09:00", EndTime: "17:00"},
	})
	require.NoError(t, err)

	_, err = svc.SetWeeklyHours(context.Background(), aff.ID, []model.WorkingIntervalInput{
		{DayOfWeek: "Fri", StartTime: "10:00", EndTime: "14:00"},
	})
	require.NoError(t, err)

	stored, err := repo.ListWorkingIntervals(context.Background(), aff.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, model.Friday, stored[0].DayOfWeek)
}

func TestSetWeeklyHoursDuplicateDay(t *testing.T) {
	svc, _, doctorID, clinicID := newTestService()
	aff := createTestAffiliation(t, svc, doctorID, clinicID)

	_, err := svc.SetWeeklyHours(context.Background(), aff.ID, []model.WorkingIntervalInput{
		{DayOfWeek: "Mon", StartTime: "09:00", EndTime: "12:00"},
		{DayOfWeek: "Mon", StartTime: "13:00", EndTime: "17:00"},
	})
	assert.ErrorIs(t, err, ErrDuplicateWeekday)
}

func TestSetWeeklyHoursRejectsBadInput(t *testing.T) {
	svc, _, doctorID, clinicID := newTestService()
	aff := createTestAffiliation(t, svc, doctorID, clinicID)

	cases := []struct {
		name  string
		input model.WorkingIntervalInput
	}{
		{"unknown day", model.WorkingIntervalInput{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "17:00"}},
		{"bad start", model.WorkingIntervalInput{DayOfWeek: "Mon", StartTime: "9am", EndTime: "17:00"}},
		{"end before start", model.WorkingIntervalInput{DayOfWeek: "Mon", StartTime: "17:00", EndTime: "09:00"}},
		{"zero length", model.WorkingIntervalInput{DayOfWeek: "Mon", StartTime: "09:00", EndTime: "09:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SetWeeklyHours(context.Background(), aff.ID, []model.WorkingIntervalInput{tc.input})
			assert.Error(t, err)
		})
	}
}

func TestSetWeeklyHoursUnknownAffiliation(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.SetWeeklyHours(context.Background(), uuid.New(), []model.WorkingIntervalInput{
		{DayOfWeek: "Mon", StartTime: "09:00", EndTime: "17:00"},
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteAffiliation(t *testing.T) {
	svc, _, doctorID, clinicID := newTestService()
	aff := createTestAffiliation(t, svc, doctorID, clinicID)

	require.NoError(t, svc.DeleteAffiliation(context.Background(), aff.ID))

	_, err := svc.GetAffiliation(context.Background(), aff.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListAffiliations(t *testing.T) {
	svc, _, doctorID, clinicID := newTestService()
	createTestAffiliation(t, svc, doctorID, clinicID)

	affs, err := svc.ListAffiliations(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Len(t, affs, 1)
}
