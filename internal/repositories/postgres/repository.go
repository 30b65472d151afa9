package postgres

import (
	"context"

	"github.com/edhub-platform/school-service/internal/repositories"
	"gorm.io/gorm"
)

// gormRepository binds every entity repository to one *gorm.DB handle.
// Transaction rebinds the whole set to the transaction handle so services
// can run multi-entity workflows atomically.
type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Users() repositories.UserRepository {
	return &UserPostgreSQL{db: r.db}
}

func (r *gormRepository) Schools() repositories.SchoolRepository {
	return &SchoolPostgreSQL{db: r.db}
}

func (r *gormRepository) Sections() repositories.SectionRepository {
	return &SectionPostgreSQL{db: r.db}
}

func (r *gormRepository) Classes() repositories.ClassRepository {
	return &ClassPostgreSQL{db: r.db}
}

func (r *gormRepository) SchoolRequests() repositories.SchoolRequestRepository {
	return &SchoolRequestPostgreSQL{db: r.db}
}

func (r *gormRepository) Invitations() repositories.InvitationRepository {
	return &InvitationPostgreSQL{db: r.db}
}

func (r *gormRepository) Courses() repositories.CourseRepository {
	return &CoursePostgreSQL{db: r.db}
}

func (r *gormRepository) CourseAssignments() repositories.CourseAssignmentRepository {
	return &CourseAssignmentPostgreSQL{db: r.db}
}

func (r *gormRepository) Modules() repositories.ModuleRepository {
	return &ModulePostgreSQL{db: r.db}
}

func (r *gormRepository) Lessons() repositories.LessonRepository {
	return &LessonPostgreSQL{db: r.db}
}

func (r *gormRepository) Enrollments() repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{db: r.db}
}

func (r *gormRepository) LessonProgress() repositories.LessonProgressRepository {
	return &LessonProgressPostgreSQL{db: r.db}
}

func (r *gormRepository) AcademicYears() repositories.AcademicYearRepository {
	return &AcademicYearPostgreSQL{db: r.db}
}

func (r *gormRepository) Transaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}
