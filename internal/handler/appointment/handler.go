package appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/manavumd/dental-management-system/internal/handler"
	"github.com/manavumd/dental-management-system/internal/model"
	"github.com/manavumd/dental-management-system/internal/repository"
	appointmentService "github.com/manavumd/dental-management-system/internal/service/appointment"
	"github.com/manavumd/dental-management-system/internal/service/availability"
)

type Handler struct {
	service *appointmentService.Service
}

func NewHandler(service *appointmentService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.BookAppointment)
		appointments.GET("", h.ListUpcoming)
		appointments.GET("/:id", h.GetAppointment)
		appointments.DELETE("/:id", h.CancelAppointment)
	}
}

func (h *Handler) BookAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	apt, err := h.service.Book(c.Request.Context(), &req, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, appointmentService.ErrSlotUnavailable):
			c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
		case errors.Is(err, appointmentService.ErrInvalidStartTime),
			errors.Is(err, availability.ErrNoScheduleThatDay):
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		case errors.Is(err, availability.ErrAffiliationNotFound):
			c.JSON(http.StatusNotFound, handler.NewErrorResponse(err.Error()))
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(apt))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	apt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("appointment not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

// ListUpcoming returns a patient's appointments from now onward.
func (h *Handler) ListUpcoming(c *gin.Context) {
	patientID, err := uuid.Parse(c.Query("patient_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient_id"))
		return
	}

	appointments, err := h.service.ListUpcoming(c.Request.Context(), patientID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("appointment not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
