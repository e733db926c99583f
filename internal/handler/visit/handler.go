package visit

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/manavumd/dental-management-system/internal/handler"
	"github.com/manavumd/dental-management-system/internal/model"
	"github.com/manavumd/dental-management-system/internal/repository"
	visitService "github.com/manavumd/dental-management-system/internal/service/visit"
)

type Handler struct {
	service *visitService.Service
}

func NewHandler(service *visitService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	visits := r.Group("/visits")
	{
		visits.POST("", h.RecordVisit)
		visits.GET("", h.ListPastVisits)
		visits.GET("/:id", h.GetVisit)
	}
}

func (h *Handler) RecordVisit(c *gin.Context) {
	var req model.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	visit, err := h.service.RecordVisit(c.Request.Context(), &req, time.Now())
	if err != nil {
		if errors.Is(err, visitService.ErrVisitInFuture) {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(visit))
}

func (h *Handler) GetVisit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid visit ID"))
		return
	}

	visit, err := h.service.GetVisit(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("visit not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(visit))
}

// ListPastVisits returns a patient's visit history, newest first.
func (h *Handler) ListPastVisits(c *gin.Context) {
	patientID, err := uuid.Parse(c.Query("patient_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient_id"))
		return
	}

	visits, err := h.service.ListPastVisits(c.Request.Context(), patientID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(visits))
}
