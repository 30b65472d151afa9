package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edhub-platform/school-service/internal/services"
	"github.com/edhub-platform/school-service/internal/utils"
)

type EnrollmentHandler struct {
	BaseHandler
	enrollmentService services.EnrollmentService
	progressService   services.LessonProgressService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService, progressService services.LessonProgressService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		enrollmentService: enrollmentService,
		progressService:   progressService,
	}
}

// Enroll enrolls a user into a course
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req services.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

// GetEnrollment returns one enrollment
func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	enrollment, err := h.enrollmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

// ListUserEnrollments lists a user's enrollments
func (h *EnrollmentHandler) ListUserEnrollments(c *gin.Context) {
	userID := ParseStringIDParam(c, "id")
	if userID == "" {
		return
	}

	enrollments, err := h.enrollmentService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

// ListCourseEnrollments lists everyone enrolled in a course
func (h *EnrollmentHandler) ListCourseEnrollments(c *gin.Context) {
	courseID := ParseStringIDParam(c, "id")
	if courseID == "" {
		return
	}

	enrollments, err := h.enrollmentService.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

// Unenroll removes an enrollment
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.enrollmentService.Unenroll(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Enrollment removed"})
}

// ListEnrollments lists every enrollment on the platform
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	enrollments, err := h.enrollmentService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

// UpdateEnrollment applies new course-level progress
func (h *EnrollmentHandler) UpdateEnrollment(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	enrollment, err := h.enrollmentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

// ===== LESSON PROGRESS =====

// StartProgress creates the progress record for a lesson
func (h *EnrollmentHandler) StartProgress(c *gin.Context) {
	var req services.StartProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	progress, err := h.progressService.Start(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, progress)
}

// UpdateProgress applies new watch time or completion state
func (h *EnrollmentHandler) UpdateProgress(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	progress, err := h.progressService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// GetProgress returns one user's progress on one lesson
func (h *EnrollmentHandler) GetProgress(c *gin.Context) {
	userID := ParseStringIDParam(c, "user_id")
	if userID == "" {
		return
	}
	lessonID := ParseStringIDParam(c, "lesson_id")
	if lessonID == "" {
		return
	}

	progress, err := h.progressService.Get(c.Request.Context(), userID, lessonID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// ListLessonProgress lists every learner's progress on one lesson
func (h *EnrollmentHandler) ListLessonProgress(c *gin.Context) {
	lessonID := ParseStringIDParam(c, "id")
	if lessonID == "" {
		return
	}

	progress, err := h.progressService.ListByLesson(c.Request.Context(), lessonID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// ListUserProgress lists a user's progress across lessons
func (h *EnrollmentHandler) ListUserProgress(c *gin.Context) {
	userID := ParseStringIDParam(c, "id")
	if userID == "" {
		return
	}

	progress, err := h.progressService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
