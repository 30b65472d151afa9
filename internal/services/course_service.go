package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/edhub-platform/school-service/internal/events"
	"github.com/edhub-platform/school-service/internal/models"
	"github.com/edhub-platform/school-service/internal/repositories"
	"github.com/edhub-platform/school-service/internal/utils"
)

type CourseService interface {
	Create(ctx context.Context, req *CreateCourseRequest, creatorID string) (*models.Course, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	GetDetails(ctx context.Context, id string) (*models.Course, error)
	Update(ctx context.Context, id string, req *UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters repositories.CourseFilters) (*CourseListResponse, error)

	AddModule(ctx context.Context, req *CreateModuleRequest) (*models.Module, error)
	UpdateModule(ctx context.Context, id string, req *UpdateModuleRequest) (*models.Module, error)
	DeleteModule(ctx context.Context, id string) error

	AddLesson(ctx context.Context, req *CreateLessonRequest, creatorID string) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, id string, req *UpdateLessonRequest) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, id string) error

	AssignInstructor(ctx context.Context, courseID, instructorID, assignedByID string) (*models.CourseAssignment, error)
	ReplaceInstructors(ctx context.Context, courseID string, instructorIDs []string, assignedByID string) ([]*models.CourseAssignment, error)
	UnassignInstructor(ctx context.Context, courseID, instructorID string) error
	ListAssignments(ctx context.Context, courseID string) ([]*models.CourseAssignment, error)
	ListInstructorAssignments(ctx context.Context, instructorID string) ([]*models.CourseAssignment, error)

	SetPublished(ctx context.Context, id string, published bool) (*models.Course, error)

	ExportRoster(ctx context.Context, courseID string) ([]byte, string, error)
}

// ===== REQUEST / RESPONSE TYPES =====

type CreateCourseRequest struct {
	SchoolID      string  `json:"school_id" validate:"required,uuid"`
	Title         string  `json:"title" validate:"required,max=200"`
	Slug          string  `json:"slug" validate:"required,max=200"`
	Description   *string `json:"description"`
	DurationWeeks *int    `json:"duration_weeks" validate:"omitempty,min=1"`
}

type UpdateCourseRequest struct {
	Title         *string `json:"title" validate:"omitempty,max=200"`
	Description   *string `json:"description"`
	DurationWeeks *int    `json:"duration_weeks" validate:"omitempty,min=1"`
}

type CreateModuleRequest struct {
	CourseID   string `json:"course_id" validate:"required,uuid"`
	Title      string `json:"title" validate:"required,max=200"`
	OrderIndex int    `json:"order_index" validate:"min=0"`
}

type UpdateModuleRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	OrderIndex  *int    `json:"order_index" validate:"omitempty,min=0"`
	IsPublished *bool   `json:"is_published"`
}

type CreateLessonRequest struct {
	ModuleID        string             `json:"module_id" validate:"required,uuid"`
	Title           string             `json:"title" validate:"required,max=200"`
	ContentType     models.ContentType `json:"content_type" validate:"required,oneof=video text quiz assignment"`
	DurationMinutes *int               `json:"duration_minutes" validate:"omitempty,min=0"`
	ContentURL      *string            `json:"content_url"`
	OrderIndex      int                `json:"order_index" validate:"min=0"`
}

type UpdateLessonRequest struct {
	Title           *string `json:"title" validate:"omitempty,max=200"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,min=0"`
	ContentURL      *string `json:"content_url"`
	IsPublished     *bool   `json:"is_published"`
	OrderIndex      *int    `json:"order_index" validate:"omitempty,min=0"`
}

type CourseListResponse struct {
	Courses []*models.Course `json:"courses"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// ===== SERVICE IMPLEMENTATION =====

type courseService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *utils.Validator
	publisher events.EventPublisher
}

func NewCourseService(repo repositories.Repository, logger utils.Logger, validator *utils.Validator, publisher events.EventPublisher) CourseService {
	return &courseService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *courseService) Create(ctx context.Context, req *CreateCourseRequest, creatorID string) (*models.Course, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Schools().ExistsByID(ctx, req.SchoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to check school: %w", err)
	}
	if !exists {
		return nil, ErrSchoolNotFound
	}

	course := &models.Course{
		SchoolID:      req.SchoolID,
		Title:         req.Title,
		Slug:          req.Slug,
		Description:   req.Description,
		DurationWeeks: req.DurationWeeks,
		Status:        models.CourseDraft,
		CreatedByID:   creatorID,
	}

	if err := s.repo.Courses().Create(ctx, course); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrCourseSlugTaken
		}
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("Course created", "course_id", course.ID, "school_id", course.SchoolID, "slug", course.Slug)
	return course, nil
}

func (s *courseService) GetByID(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.Courses().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

func (s *courseService) GetDetails(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.Courses().GetByIDWithDetails(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course details: %w", err)
	}
	return course, nil
}

func (s *courseService) Update(ctx context.Context, id string, req *UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	course, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.DurationWeeks != nil {
		course.DurationWeeks = req.DurationWeeks
	}

	if err := s.repo.Courses().Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id string) error {
	exists, err := s.repo.Courses().ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return ErrCourseNotFound
	}
	if err := s.repo.Courses().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	s.logger.Info("Course deleted", "course_id", id)
	return nil
}

func (s *courseService) List(ctx context.Context, filters repositories.CourseFilters) (*CourseListResponse, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 20
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	courses, total, err := s.repo.Courses().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return &CourseListResponse{
		Courses: courses,
		Total:   total,
		Limit:   filters.Limit,
		Offset:  filters.Offset,
	}, nil
}

// ===== MODULES =====

func (s *courseService) AddModule(ctx context.Context, req *CreateModuleRequest) (*models.Module, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Courses().ExistsByID(ctx, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	module := &models.Module{
		CourseID:   req.CourseID,
		Title:      req.Title,
		OrderIndex: req.OrderIndex,
	}
	if err := s.repo.Modules().Create(ctx, module); err != nil {
		return nil, fmt.Errorf("failed to create module: %w", err)
	}
	return module, nil
}

func (s *courseService) UpdateModule(ctx context.Context, id string, req *UpdateModuleRequest) (*models.Module, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	module, err := s.repo.Modules().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	if req.Title != nil {
		module.Title = *req.Title
	}
	if req.OrderIndex != nil {
		module.OrderIndex = *req.OrderIndex
	}
	if req.IsPublished != nil {
		module.IsPublished = *req.IsPublished
	}

	if err := s.repo.Modules().Update(ctx, module); err != nil {
		return nil, fmt.Errorf("failed to update module: %w", err)
	}
	return module, nil
}

func (s *courseService) DeleteModule(ctx context.Context, id string) error {
	if _, err := s.repo.Modules().GetByID(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrModuleNotFound
		}
		return fmt.Errorf("failed to get module: %w", err)
	}
	if err := s.repo.Modules().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete module: %w", err)
	}
	return nil
}

// ===== LESSONS =====

func (s *courseService) AddLesson(ctx context.Context, req *CreateLessonRequest, creatorID string) (*models.Lesson, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	module, err := s.repo.Modules().GetByID(ctx, req.ModuleID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	lesson := &models.Lesson{
		ModuleID:        req.ModuleID,
		Title:           req.Title,
		ContentType:     req.ContentType,
		DurationMinutes: req.DurationMinutes,
		ContentURL:      req.ContentURL,
		OrderIndex:      req.OrderIndex,
	}
	if creatorID != "" {
		lesson.CreatedByID = &creatorID
	}

	// The lesson insert and the course counter move together.
	err = s.repo.Transaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Lessons().Create(ctx, lesson); err != nil {
			return fmt.Errorf("failed to create lesson: %w", err)
		}
		course, err := tx.Courses().GetByID(ctx, module.CourseID)
		if err != nil {
			return fmt.Errorf("failed to get course: %w", err)
		}
		course.TotalLessons++
		if err := tx.Courses().Update(ctx, course); err != nil {
			return fmt.Errorf("failed to update lesson count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *courseService) UpdateLesson(ctx context.Context, id string, req *UpdateLessonRequest) (*models.Lesson, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	lesson, err := s.repo.Lessons().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.DurationMinutes != nil {
		lesson.DurationMinutes = req.DurationMinutes
	}
	if req.ContentURL != nil {
		lesson.ContentURL = req.ContentURL
	}
	if req.IsPublished != nil {
		lesson.IsPublished = *req.IsPublished
	}
	if req.OrderIndex != nil {
		lesson.OrderIndex = *req.OrderIndex
	}

	if err := s.repo.Lessons().Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}
	return lesson, nil
}

func (s *courseService) DeleteLesson(ctx context.Context, id string) error {
	lesson, err := s.repo.Lessons().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrLessonNotFound
		}
		return fmt.Errorf("failed to get lesson: %w", err)
	}

	module, err := s.repo.Modules().GetByID(ctx, lesson.ModuleID)
	if err != nil {
		return fmt.Errorf("failed to get module: %w", err)
	}

	return s.repo.Transaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Lessons().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete lesson: %w", err)
		}
		course, err := tx.Courses().GetByID(ctx, module.CourseID)
		if err != nil {
			return fmt.Errorf("failed to get course: %w", err)
		}
		if course.TotalLessons > 0 {
			course.TotalLessons--
		}
		if err := tx.Courses().Update(ctx, course); err != nil {
			return fmt.Errorf("failed to update lesson count: %w", err)
		}
		return nil
	})
}

// ===== INSTRUCTOR ASSIGNMENTS =====

// AssignInstructor adds one instructor to the course. The first assignment
// on a course with no primary instructor promotes that instructor to
// primary; later assignments leave the primary untouched.
func (s *courseService) AssignInstructor(ctx context.Context, courseID, instructorID, assignedByID string) (*models.CourseAssignment, error) {
	if _, err := s.requireInstructor(ctx, instructorID); err != nil {
		return nil, err
	}

	var assignment *models.CourseAssignment
	err := s.repo.Transaction(ctx, func(tx repositories.Repository) error {
		course, err := tx.Courses().GetByID(ctx, courseID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrCourseNotFound
			}
			return fmt.Errorf("failed to get course: %w", err)
		}

		assignment = &models.CourseAssignment{
			CourseID:     courseID,
			InstructorID: instructorID,
			AssignedByID: assignedByID,
		}
		if err := tx.CourseAssignments().Create(ctx, assignment); err != nil {
			if repositories.IsDuplicateError(err) {
				return ErrAlreadyAssigned
			}
			return fmt.Errorf("failed to create assignment: %w", err)
		}

		if course.InstructorID == nil {
			course.InstructorID = &instructorID
			if err := tx.Courses().Update(ctx, course); err != nil {
				return fmt.Errorf("failed to set primary instructor: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Instructor assigned", "course_id", courseID, "instructor_id", instructorID)
	return assignment, nil
}

// ReplaceInstructors swaps the full assignment set for the course. Every
// prior row is removed and the new set inserted, so surviving instructors
// get fresh assignment timestamps. The course's primary instructor is not
// touched.
func (s *courseService) ReplaceInstructors(ctx context.Context, courseID string, instructorIDs []string, assignedByID string) ([]*models.CourseAssignment, error) {
	seen := make(map[string]struct{}, len(instructorIDs))
	for _, id := range instructorIDs {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate instructor id %s", ErrValidationFailed, id)
		}
		seen[id] = struct{}{}
		if _, err := s.requireInstructor(ctx, id); err != nil {
			return nil, err
		}
	}

	assignments := make([]*models.CourseAssignment, 0, len(instructorIDs))
	err := s.repo.Transaction(ctx, func(tx repositories.Repository) error {
		exists, err := tx.Courses().ExistsByID(ctx, courseID)
		if err != nil {
			return fmt.Errorf("failed to check course: %w", err)
		}
		if !exists {
			return ErrCourseNotFound
		}

		if err := tx.CourseAssignments().DeleteByCourse(ctx, courseID); err != nil {
			return fmt.Errorf("failed to clear assignments: %w", err)
		}

		for _, id := range instructorIDs {
			assignments = append(assignments, &models.CourseAssignment{
				CourseID:     courseID,
				InstructorID: id,
				AssignedByID: assignedByID,
			})
		}
		if len(assignments) == 0 {
			return nil
		}
		if err := tx.CourseAssignments().CreateBatch(ctx, assignments); err != nil {
			return fmt.Errorf("failed to create assignments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Instructor set replaced", "course_id", courseID, "count", len(assignments))
	return assignments, nil
}

func (s *courseService) UnassignInstructor(ctx context.Context, courseID, instructorID string) error {
	assignment, err := s.repo.CourseAssignments().GetByCourseAndInstructor(ctx, courseID, instructorID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to get assignment: %w", err)
	}
	if err := s.repo.CourseAssignments().Delete(ctx, assignment.ID); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}

func (s *courseService) ListAssignments(ctx context.Context, courseID string) ([]*models.CourseAssignment, error) {
	exists, err := s.repo.Courses().ExistsByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return nil, ErrCourseNotFound
	}
	return s.repo.CourseAssignments().ListByCourse(ctx, courseID)
}

func (s *courseService) ListInstructorAssignments(ctx context.Context, instructorID string) ([]*models.CourseAssignment, error) {
	exists, err := s.repo.Users().ExistsByID(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check instructor: %w", err)
	}
	if !exists {
		return nil, ErrInstructorNotFound
	}
	return s.repo.CourseAssignments().ListByInstructor(ctx, instructorID)
}

// ===== PUBLISHING =====

// SetPublished flips the publish flag. Status, Published and PublishedAt
// always move together: published stamps the timestamp, unpublishing
// clears it and drops the course back to draft. Idempotent.
func (s *courseService) SetPublished(ctx context.Context, id string, published bool) (*models.Course, error) {
	course, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if course.Published == published {
		return course, nil
	}

	if published {
		now := time.Now()
		course.Published = true
		course.PublishedAt = &now
		course.Status = models.CoursePublished
	} else {
		course.Published = false
		course.PublishedAt = nil
		course.Status = models.CourseDraft
	}

	if err := s.repo.Courses().Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	eventType := events.EventCoursePublished
	if !published {
		eventType = events.EventCourseUnpublished
	}
	s.publishEvent(ctx, eventType, events.CoursePublishedEvent{
		CourseID:    course.ID,
		CourseTitle: course.Title,
		SchoolID:    course.SchoolID,
		Published:   course.Published,
		PublishedAt: course.PublishedAt,
	})

	s.logger.Info("Course publish state changed", "course_id", course.ID, "published", course.Published)
	return course, nil
}

// ===== ROSTER EXPORT =====

// ExportRoster writes the course's enrollment roster as an xlsx workbook
// and returns the file contents with a suggested filename.
func (s *courseService) ExportRoster(ctx context.Context, courseID string) ([]byte, string, error) {
	course, err := s.GetByID(ctx, courseID)
	if err != nil {
		return nil, "", err
	}

	enrollments, err := s.repo.Enrollments().ListByCourse(ctx, courseID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list enrollments: %w", err)
	}

	userIDs := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		userIDs = append(userIDs, e.UserID)
	}
	users, err := s.repo.Users().GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load enrolled users: %w", err)
	}
	usersByID := make(map[string]*models.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Roster"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Firstname", "Lastname", "Email", "Enrolled At", "Progress %", "Completed At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, e := range enrollments {
		values := make([]interface{}, len(headers))
		if u, ok := usersByID[e.UserID]; ok {
			values[0] = u.Firstname
			values[1] = u.Lastname
			if u.Email != nil {
				values[2] = *u.Email
			}
		}
		values[3] = e.EnrolledAt.Format(time.RFC3339)
		values[4] = e.ProgressPercentage
		if e.CompletedAt != nil {
			values[5] = e.CompletedAt.Format(time.RFC3339)
		}

		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("failed to write roster row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("roster-%s.xlsx", course.Slug)
	return buf.Bytes(), filename, nil
}

// ===== HELPERS =====

func (s *courseService) requireInstructor(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.Users().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInstructorNotFound
		}
		return nil, fmt.Errorf("failed to get instructor: %w", err)
	}
	if user.Role != models.RoleInstructor {
		return nil, fmt.Errorf("%w: user %s has role %s", ErrInstructorNotFound, id, user.Role)
	}
	return user, nil
}

func (s *courseService) publishEvent(ctx context.Context, eventType events.EventType, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Error("Failed to publish event", "event_type", eventType, "error", err)
	}
}
