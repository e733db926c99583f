package specialty

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manavumd/dental-management-system/internal/handler"
	"github.com/manavumd/dental-management-system/internal/model"
	specialtyService "github.com/manavumd/dental-management-system/internal/service/specialty"
)

type Handler struct {
	service *specialtyService.Service
}

func NewHandler(service *specialtyService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	specialties := r.Group("/specialties")
	{
		specialties.POST("", h.CreateSpecialty)
		specialties.GET("", h.ListSpecialties)
	}
}

func (h *Handler) CreateSpecialty(c *gin.Context) {
	var req model.CreateSpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	specialty, err := h.service.CreateSpecialty(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(specialty))
}

func (h *Handler) ListSpecialties(c *gin.Context) {
	specialties, err := h.service.ListSpecialties(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(specialties))
}
