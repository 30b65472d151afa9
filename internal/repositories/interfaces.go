package repositories

import (
	"context"
	"errors"

	"github.com/edhub-platform/school-service/internal/models"
	"gorm.io/gorm"
)

// Repository is the aggregate data-access entry point. Transaction runs fn
// against a Repository bound to one database transaction; unique-constraint
// enforcement inside that transaction is the source of truth for all
// duplicate checks.
type Repository interface {
	Users() UserRepository
	Schools() SchoolRepository
	Sections() SectionRepository
	Classes() ClassRepository
	SchoolRequests() SchoolRequestRepository
	Invitations() InvitationRepository
	Courses() CourseRepository
	CourseAssignments() CourseAssignmentRepository
	Modules() ModuleRepository
	Lessons() LessonRepository
	Enrollments() EnrollmentRepository
	LessonProgress() LessonProgressRepository
	AcademicYears() AcademicYearRepository

	Transaction(ctx context.Context, fn func(Repository) error) error
}

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role     *models.UserRole `json:"role"`
	SchoolID *string          `json:"school_id"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

type CourseFilters struct {
	SchoolID     *string              `json:"school_id"`
	InstructorID *string              `json:"instructor_id"`
	Status       *models.CourseStatus `json:"status"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}

// ===== ERROR CLASSIFICATION =====

// IsNotFoundError reports whether err is the store's "no rows" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err is a translated unique-constraint
// violation. The in-memory fake used in tests returns the same sentinel.
func IsDuplicateError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
