package schedule

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/manavumd/dental-management-system/internal/handler"
	"github.com/manavumd/dental-management-system/internal/model"
	"github.com/manavumd/dental-management-system/internal/repository"
	scheduleService "github.com/manavumd/dental-management-system/internal/service/schedule"
)

type Handler struct {
	service *scheduleService.Service
}

func NewHandler(service *scheduleService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	affiliations := r.Group("/affiliations")
	{
		affiliations.POST("", h.CreateAffiliation)
		affiliations.GET("", h.ListAffiliations)
		affiliations.GET("/:id", h.GetAffiliation)
		affiliations.DELETE("/:id", h.DeleteAffiliation)
		affiliations.PUT("/:id/schedule", h.SetWeeklyHours)
		affiliations.GET("/:id/schedule", h.WeeklyHours)
	}
}

func (h *Handler) CreateAffiliation(c *gin.Context) {
	var req model.CreateAffiliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	aff, err := h.service.CreateAffiliation(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, scheduleService.ErrAlreadyAffiliated) {
			c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(aff))
}

func (h *Handler) GetAffiliation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid affiliation ID"))
		return
	}

	aff, err := h.service.GetAffiliation(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("affiliation not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(aff))
}

func (h *Handler) ListAffiliations(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Query("doctor_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor_id"))
		return
	}

	affs, err := h.service.ListAffiliations(c.Request.Context(), doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(affs))
}

func (h *Handler) DeleteAffiliation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid affiliation ID"))
		return
	}

	if err := h.service.DeleteAffiliation(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("affiliation not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

// SetWeeklyHours replaces the affiliation's whole weekly schedule with
// the posted intervals.
func (h *Handler) SetWeeklyHours(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid affiliation ID"))
		return
	}

	var req struct {
		Intervals []model.WorkingIntervalInput `json:"intervals" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	intervals, err := h.service.SetWeeklyHours(c.Request.Context(), id, req.Intervals)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("affiliation not found"))
			return
		}
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(intervals))
}

func (h *Handler) WeeklyHours(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid affiliation ID"))
		return
	}

	intervals, err := h.service.WeeklyHours(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(intervals))
}
