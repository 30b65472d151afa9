package repositories

import (
	"context"

	"github.com/edhub-platform/school-service/internal/models"
)

type SchoolRepository interface {
	Create(ctx context.Context, school *models.School) error
	GetByID(ctx context.Context, id string) (*models.School, error)

	// GetByIDWithDetails preloads sections and classes for the nested
	// detail view.
	GetByIDWithDetails(ctx context.Context, id string) (*models.School, error)

	Update(ctx context.Context, school *models.School) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.School, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
}

type SectionRepository interface {
	Create(ctx context.Context, section *models.Section) error
	List(ctx context.Context) ([]*models.Section, error)
	ListBySchool(ctx context.Context, schoolID string) ([]*models.Section, error)
}

type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	List(ctx context.Context) ([]*models.Class, error)
	ListBySchool(ctx context.Context, schoolID string) ([]*models.Class, error)
}

type SchoolRequestRepository interface {
	Create(ctx context.Context, request *models.SchoolRequest) error
	GetByID(ctx context.Context, id string) (*models.SchoolRequest, error)
	Update(ctx context.Context, request *models.SchoolRequest) error
	List(ctx context.Context) ([]*models.SchoolRequest, error)
}

type AcademicYearRepository interface {
	Create(ctx context.Context, year *models.AcademicYear) error
	GetByID(ctx context.Context, id string) (*models.AcademicYear, error)
	Update(ctx context.Context, year *models.AcademicYear) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.AcademicYear, error)
}
