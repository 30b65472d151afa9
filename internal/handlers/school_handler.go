package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edhub-platform/school-service/internal/models"
	"github.com/edhub-platform/school-service/internal/services"
	"github.com/edhub-platform/school-service/internal/utils"
)

type SchoolHandler struct {
	BaseHandler
	schoolService services.SchoolService
}

func NewSchoolHandler(schoolService services.SchoolService, logger utils.Logger) *SchoolHandler {
	return &SchoolHandler{
		BaseHandler:   NewBaseHandler(logger),
		schoolService: schoolService,
	}
}

// CreateSchool registers a new school
func (h *SchoolHandler) CreateSchool(c *gin.Context) {
	var req services.CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	school, err := h.schoolService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, school)
}

// GetSchool returns the school record
func (h *SchoolHandler) GetSchool(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	school, err := h.schoolService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, school)
}

// GetSchoolDetails returns the school with its sections and classes
func (h *SchoolHandler) GetSchoolDetails(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	school, err := h.schoolService.GetDetails(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, school)
}

// UpdateSchool applies partial updates to a school
func (h *SchoolHandler) UpdateSchool(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	school, err := h.schoolService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, school)
}

// DeleteSchool removes a school
func (h *SchoolHandler) DeleteSchool(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.schoolService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "School deleted"})
}

// ListSchools lists all schools
func (h *SchoolHandler) ListSchools(c *gin.Context) {
	schools, err := h.schoolService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, schools)
}

// ===== SECTIONS AND CLASSES =====

// AddSection creates a section within a school
func (h *SchoolHandler) AddSection(c *gin.Context) {
	var req services.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	section, err := h.schoolService.AddSection(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, section)
}

// ListSections lists sections, optionally for one school
func (h *SchoolHandler) ListSections(c *gin.Context) {
	sections, err := h.schoolService.ListSections(c.Request.Context(), c.Query("school_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sections)
}

// AddClass creates a class within a school
func (h *SchoolHandler) AddClass(c *gin.Context) {
	var req services.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	class, err := h.schoolService.AddClass(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, class)
}

// ListClasses lists classes, optionally for one school
func (h *SchoolHandler) ListClasses(c *gin.Context) {
	classes, err := h.schoolService.ListClasses(c.Request.Context(), c.Query("school_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, classes)
}

// ===== SCHOOL ADMINS =====

// ListSchoolAdmins lists the administrators of a school
func (h *SchoolHandler) ListSchoolAdmins(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	admins, err := h.schoolService.ListAdmins(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, admins)
}

// AddSchoolAdmin promotes an existing account to school administrator
func (h *SchoolHandler) AddSchoolAdmin(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	admin, err := h.schoolService.AddAdmin(c.Request.Context(), id, req.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Administrator access granted",
		Data:    admin,
	})
}

// RevokeSchoolAdmin demotes a school administrator
func (h *SchoolHandler) RevokeSchoolAdmin(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	userID := ParseStringIDParam(c, "user_id")
	if userID == "" {
		return
	}

	if err := h.schoolService.RevokeAdmin(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Administrator access revoked"})
}

// ===== SCHOOL REQUESTS =====

// SubmitSchoolRequest records a public application to open a school
func (h *SchoolHandler) SubmitSchoolRequest(c *gin.Context) {
	var req services.CreateSchoolRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	request, err := h.schoolService.SubmitRequest(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// ListSchoolRequests lists pending and settled school applications
func (h *SchoolHandler) ListSchoolRequests(c *gin.Context) {
	requests, err := h.schoolService.ListRequests(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

// ReviewSchoolRequest moves an application through triage
func (h *SchoolHandler) ReviewSchoolRequest(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req struct {
		Status models.SchoolRequestStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	request, err := h.schoolService.ReviewRequest(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}
