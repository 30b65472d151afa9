package utils

import (
	"reflect"
	"strings"

	apperrors "github.com/edhub-platform/school-service/internal/errors"
	"github.com/edhub-platform/school-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the platform's custom rules.
type Validator struct {
	structValidator *validator.Validate
}

func NewValidator() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{structValidator: structValidator}
}

// ValidateStruct validates struct tags and returns the shared
// ValidationErrors type on failure.
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
			return ve
		}
		return err
	}
	return nil
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("education_level", validateEducationLevel)
	validate.RegisterValidation("course_status", validateCourseStatus)

	// JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateUserRole(fl validator.FieldLevel) bool {
	validRoles := []models.UserRole{
		models.RoleStudent,
		models.RoleInstructor,
		models.RoleAdmin,
		models.RoleInspector,
		models.RoleSchoolAdmin,
	}

	value := fl.Field().String()
	for _, validRole := range validRoles {
		if string(validRole) == value {
			return true
		}
	}
	return false
}

func validateEducationLevel(fl validator.FieldLevel) bool {
	validLevels := []models.EducationLevel{
		models.LevelNursery,
		models.LevelPrimary,
		models.LevelSecondary,
		models.LevelUniversity,
		models.LevelMaster,
	}

	value := fl.Field().String()
	for _, validLevel := range validLevels {
		if string(validLevel) == value {
			return true
		}
	}
	return false
}

func validateCourseStatus(fl validator.FieldLevel) bool {
	validStatuses := []models.CourseStatus{
		models.CourseDraft,
		models.CoursePendingReview,
		models.CoursePublished,
		models.CourseArchived,
	}

	value := fl.Field().String()
	for _, validStatus := range validStatuses {
		if string(validStatus) == value {
			return true
		}
	}
	return false
}
