package repositories

import (
	"context"

	"github.com/edhub-platform/school-service/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	GetBySchoolAndRole(ctx context.Context, schoolID string, role models.UserRole) ([]*models.User, error)

	ExistsByID(ctx context.Context, id string) (bool, error)
}
