package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edhub-platform/school-service/internal/services"
	"github.com/edhub-platform/school-service/internal/utils"
)

type AcademicYearHandler struct {
	BaseHandler
	yearService services.AcademicYearService
}

func NewAcademicYearHandler(yearService services.AcademicYearService, logger utils.Logger) *AcademicYearHandler {
	return &AcademicYearHandler{
		BaseHandler: NewBaseHandler(logger),
		yearService: yearService,
	}
}

func (h *AcademicYearHandler) CreateAcademicYear(c *gin.Context) {
	var req services.AcademicYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	year, err := h.yearService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, year)
}

func (h *AcademicYearHandler) GetAcademicYear(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	year, err := h.yearService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, year)
}

func (h *AcademicYearHandler) UpdateAcademicYear(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.AcademicYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	year, err := h.yearService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, year)
}

func (h *AcademicYearHandler) DeleteAcademicYear(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.yearService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Academic year deleted"})
}

func (h *AcademicYearHandler) ListAcademicYears(c *gin.Context) {
	years, err := h.yearService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, years)
}
