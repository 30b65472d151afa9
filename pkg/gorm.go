package pkg

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edhub-platform/school-service/internal/config"
	"github.com/edhub-platform/school-service/internal/models"
)

func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// TranslateError maps driver unique-violation errors to
		// gorm.ErrDuplicatedKey, which the repositories classify.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema, including the partial unique
// index on pending invitations.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.School{},
		&models.Section{},
		&models.Class{},
		&models.SchoolRequest{},
		&models.AcademicYear{},
		&models.User{},
		&models.Invitation{},
		&models.Course{},
		&models.Module{},
		&models.Lesson{},
		&models.CourseAssignment{},
		&models.Enrollment{},
		&models.LessonProgress{},
	)
}
