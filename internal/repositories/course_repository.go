package repositories

import (
	"context"

	"github.com/edhub-platform/school-service/internal/models"
)

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id string) (*models.Course, error)

	// GetByIDWithDetails preloads modules (ordered) and their lessons.
	GetByIDWithDetails(ctx context.Context, id string) (*models.Course, error)

	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
}

type CourseAssignmentRepository interface {
	Create(ctx context.Context, assignment *models.CourseAssignment) error
	CreateBatch(ctx context.Context, assignments []*models.CourseAssignment) error
	GetByID(ctx context.Context, id string) (*models.CourseAssignment, error)
	GetByCourseAndInstructor(ctx context.Context, courseID, instructorID string) (*models.CourseAssignment, error)
	Delete(ctx context.Context, id string) error

	// DeleteByCourse removes every assignment row for the course; the bulk
	// replace path deletes first, then inserts the new set.
	DeleteByCourse(ctx context.Context, courseID string) error

	ListByCourse(ctx context.Context, courseID string) ([]*models.CourseAssignment, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]*models.CourseAssignment, error)
}

type ModuleRepository interface {
	Create(ctx context.Context, module *models.Module) error
	GetByID(ctx context.Context, id string) (*models.Module, error)
	Update(ctx context.Context, module *models.Module) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Module, error)
	ListByCourse(ctx context.Context, courseID string) ([]*models.Module, error)
}

type LessonRepository interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	GetByID(ctx context.Context, id string) (*models.Lesson, error)
	Update(ctx context.Context, lesson *models.Lesson) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Lesson, error)
	ListByModule(ctx context.Context, moduleID string) ([]*models.Lesson, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
}
