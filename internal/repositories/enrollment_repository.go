package repositories

import (
	"context"

	"github.com/edhub-platform/school-service/internal/models"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id string) (*models.Enrollment, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (*models.Enrollment, error)
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Enrollment, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]*models.Enrollment, error)
}

type LessonProgressRepository interface {
	Create(ctx context.Context, progress *models.LessonProgress) error
	GetByID(ctx context.Context, id string) (*models.LessonProgress, error)
	GetByUserAndLesson(ctx context.Context, userID, lessonID string) (*models.LessonProgress, error)
	Update(ctx context.Context, progress *models.LessonProgress) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*models.LessonProgress, error)
	ListByLesson(ctx context.Context, lessonID string) ([]*models.LessonProgress, error)
}
