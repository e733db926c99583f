package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manavumd/dental-management-system/internal/model"
	availabilityService "github.com/manavumd/dental-management-system/internal/service/availability"
)

type stubService struct {
	slots     []time.Time
	intervals []model.WorkingInterval
	err       error
}

func (s *stubService) AvailableSlots(context.Context, uuid.UUID, uuid.UUID, string) ([]time.Time, error) {
	return s.slots, s.err
}

func (s *stubService) WeeklySchedule(context.Context, uuid.UUID, uuid.UUID) ([]model.WorkingInterval, error) {
	return s.intervals, s.err
}

func newTestRouter(svc AvailabilityServicer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func slotsURL(date string) string {
	return fmt.Sprintf("/api/v1/appointments/slots?doctor_id=%s&clinic_id=%s&date=%s",
		uuid.New(), uuid.New(), date)
}

func TestGetAvailableSlots(t *testing.T) {
	base := time.Date(2024, 9, 2, 9, 0, 0, 0, time.UTC)
	svc := &stubService{
		slots: []time.Time{base, base.Add(15 * time.Minute), base.Add(30 * time.Minute)},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, slotsURL("2024-09-02"), nil)
	newTestRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{
		"2024-09-02 09:00:00",
		"2024-09-02 09:15:00",
		"2024-09-02 09:30:00",
	}, got)
}

func TestGetAvailableSlotsOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid date", availabilityService.ErrInvalidDate, http.StatusBadRequest},
		{"no affiliation", availabilityService.ErrAffiliationNotFound, http.StatusNotFound},
		{"no schedule", availabilityService.ErrNoScheduleThatDay, http.StatusBadRequest},
		{"fully booked", availabilityService.ErrFullyBooked, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, slotsURL("2024-09-02"), nil)
			newTestRouter(&stubService{err: tt.err}).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			// Each outcome keeps its own message so the caller can
			// branch on it.
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}

func TestGetAvailableSlotsBadIDs(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/slots?doctor_id=abc&clinic_id=def&date=2024-09-02", nil)
	newTestRouter(&stubService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDoctorSchedule(t *testing.T) {
	start, _ := model.ParseTimeOfDay("09:00")
	end, _ := model.ParseTimeOfDay("17:00")
	svc := &stubService{
		intervals: []model.WorkingInterval{
			{DayOfWeek: model.Monday, StartTime: start, EndTime: end},
		},
	}

	w := httptest.NewRecorder()
	url := fmt.Sprintf("/api/v1/doctors/schedule?doctor_id=%s&clinic_id=%s", uuid.New(), uuid.New())
	req := httptest.NewRequest(http.MethodGet, url, nil)
	newTestRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Mon", got[0]["day_of_week"])
	assert.Equal(t, "09:00:00", got[0]["start_time"])
	assert.Equal(t, "17:00:00", got[0]["end_time"])
}
