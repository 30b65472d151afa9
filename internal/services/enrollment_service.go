package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edhub-platform/school-service/internal/events"
	"github.com/edhub-platform/school-service/internal/mailer"
	"github.com/edhub-platform/school-service/internal/models"
	"github.com/edhub-platform/school-service/internal/repositories"
	"github.com/edhub-platform/school-service/internal/utils"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, req *EnrollRequest) (*models.Enrollment, error)
	GetByID(ctx context.Context, id string) (*models.Enrollment, error)
	Update(ctx context.Context, id string, req *UpdateEnrollmentRequest) (*models.Enrollment, error)
	List(ctx context.Context) ([]*models.Enrollment, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]*models.Enrollment, error)
	Unenroll(ctx context.Context, id string) error
}

type EnrollRequest struct {
	UserID   string `json:"user_id" validate:"required,uuid"`
	CourseID string `json:"course_id" validate:"required,uuid"`
}

type UpdateEnrollmentRequest struct {
	ProgressPercentage *float64 `json:"progress_percentage" validate:"omitempty,min=0,max=100"`
}

type enrollmentService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *utils.Validator
	mailer    mailer.Mailer
	publisher events.EventPublisher
}

func NewEnrollmentService(repo repositories.Repository, logger utils.Logger, validator *utils.Validator, m mailer.Mailer, publisher events.EventPublisher) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		mailer:    m,
		publisher: publisher,
	}
}

// Enroll creates the (user, course) enrollment row. A second attempt for
// the same pair is a conflict, never a silent upsert; the unique index
// decides under concurrency.
func (s *enrollmentService) Enroll(ctx context.Context, req *EnrollRequest) (*models.Enrollment, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.Users().GetByID(ctx, req.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	course, err := s.repo.Courses().GetByID(ctx, req.CourseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	enrollment := &models.Enrollment{
		UserID:   req.UserID,
		CourseID: req.CourseID,
	}
	if err := s.repo.Enrollments().Create(ctx, enrollment); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	s.logger.Info("Enrollment created",
		"enrollment_id", enrollment.ID,
		"user_id", enrollment.UserID,
		"course_id", enrollment.CourseID)

	s.publishEvent(ctx, events.EventEnrollmentCreated, events.EnrollmentCreatedEvent{
		EnrollmentID: enrollment.ID,
		UserID:       enrollment.UserID,
		CourseID:     enrollment.CourseID,
		CourseTitle:  course.Title,
		EnrolledAt:   enrollment.EnrolledAt,
	})

	if user.Email != nil {
		s.sendMail(mailer.NewEnrollmentConfirmation(*user.Email, user.Firstname, course.Title))
	}

	return enrollment, nil
}

func (s *enrollmentService) GetByID(ctx context.Context, id string) (*models.Enrollment, error) {
	enrollment, err := s.repo.Enrollments().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return enrollment, nil
}

// Update applies new course-level progress. Reaching 100 percent stamps
// CompletedAt once; the stamp is never cleared by a later regression.
func (s *enrollmentService) Update(ctx context.Context, id string, req *UpdateEnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	enrollment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ProgressPercentage != nil {
		enrollment.ProgressPercentage = *req.ProgressPercentage
		if enrollment.ProgressPercentage >= 100 && enrollment.CompletedAt == nil {
			now := time.Now()
			enrollment.CompletedAt = &now
		}
	}

	if err := s.repo.Enrollments().Update(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("failed to update enrollment: %w", err)
	}
	return enrollment, nil
}

func (s *enrollmentService) List(ctx context.Context) ([]*models.Enrollment, error) {
	enrollments, err := s.repo.Enrollments().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

func (s *enrollmentService) ListByUser(ctx context.Context, userID string) ([]*models.Enrollment, error) {
	enrollments, err := s.repo.Enrollments().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

func (s *enrollmentService) ListByCourse(ctx context.Context, courseID string) ([]*models.Enrollment, error) {
	exists, err := s.repo.Courses().ExistsByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return nil, ErrCourseNotFound
	}
	return s.repo.Enrollments().ListByCourse(ctx, courseID)
}

func (s *enrollmentService) Unenroll(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Enrollments().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}
	s.logger.Info("Enrollment removed", "enrollment_id", id)
	return nil
}

func (s *enrollmentService) publishEvent(ctx context.Context, eventType events.EventType, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Error("Failed to publish event", "event_type", eventType, "error", err)
	}
}

func (s *enrollmentService) sendMail(msg *mailer.Message) {
	if s.mailer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), emailSendTimeout)
		defer cancel()
		if err := s.mailer.Send(ctx, msg); err != nil {
			s.logger.Error("Failed to send email", "to", msg.To, "subject", msg.Subject, "error", err)
		}
	}()
}
