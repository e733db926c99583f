package availability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/manavumd/dental-management-system/internal/model"
	availabilityService "github.com/manavumd/dental-management-system/internal/service/availability"
)

// SlotLayout is the wire format for slot strings.
const SlotLayout = "2006-01-02 15:04:05"

type AvailabilityServicer interface {
	AvailableSlots(ctx context.Context, doctorID, clinicID uuid.UUID, date string) ([]time.Time, error)
	WeeklySchedule(ctx context.Context, doctorID, clinicID uuid.UUID) ([]model.WorkingInterval, error)
}

type Handler struct {
	service AvailabilityServicer
}

func NewHandler(service AvailabilityServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/appointments/slots", h.GetAvailableSlots)
	r.GET("/doctors/schedule", h.GetDoctorSchedule)
}

// GetAvailableSlots returns the open slot start times for one doctor
// at one clinic on one date, as a bare array of "YYYY-MM-DD HH:MM:SS"
// strings in chronological order. The booking form consumes the
// strings verbatim. Zero-slot outcomes are reported as {"error": msg}
// with distinguishable messages so the form can branch between
// "closed that day" and "booked out".
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Query("doctor_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid doctor ID"})
		return
	}
	clinicID, err := uuid.Parse(c.Query("clinic_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid clinic ID"})
		return
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), doctorID, clinicID, c.Query("date"))
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, availabilityService.ErrAffiliationNotFound):
			status = http.StatusNotFound
		case errors.Is(err, availabilityService.ErrInvalidDate),
			errors.Is(err, availabilityService.ErrNoScheduleThatDay),
			errors.Is(err, availabilityService.ErrFullyBooked):
		default:
			log.Error().Err(err).Msg("slot computation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	formatted := make([]string, len(slots))
	for i, slot := range slots {
		formatted[i] = slot.Format(SlotLayout)
	}
	c.JSON(http.StatusOK, formatted)
}

// GetDoctorSchedule returns the raw weekly working hours for a
// doctor-clinic pair, one record per configured weekday.
func (h *Handler) GetDoctorSchedule(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Query("doctor_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid doctor ID"})
		return
	}
	clinicID, err := uuid.Parse(c.Query("clinic_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid clinic ID"})
		return
	}

	intervals, err := h.service.WeeklySchedule(c.Request.Context(), doctorID, clinicID)
	if err != nil {
		if errors.Is(err, availabilityService.ErrAffiliationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("schedule lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, intervals)
}
