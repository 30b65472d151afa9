package services

import (
	"errors"

	apperrors "github.com/edhub-platform/school-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	// School specific errors
	ErrSchoolNotFound        = errors.New("school not found")
	ErrSchoolRequestNotFound = errors.New("school request not found")
	ErrSchoolSlugTaken       = errors.New("school slug already exists")

	// Invitation specific errors
	ErrInvitationNotFound      = errors.New("invitation not found")
	ErrInvitationAlreadySent   = errors.New("a pending invitation already exists for this email and school")
	ErrInvitationExpired       = errors.New("invitation has expired")
	ErrInvitationAlreadyUsed   = errors.New("invitation has already been accepted")
	ErrInvitationRejected      = errors.New("invitation has been rejected")
	ErrInvitationNotAcceptable = errors.New("invitation is not in an acceptable state")

	// User specific errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserNotSchoolAdmin = errors.New("user is not a school administrator")
	ErrInvalidRole        = errors.New("invalid user role")

	// Course specific errors
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseSlugTaken    = errors.New("course slug already exists")
	ErrModuleNotFound     = errors.New("module not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrInstructorNotFound = errors.New("instructor not found")
	ErrAlreadyAssigned    = errors.New("instructor is already assigned to this course")
	ErrAssignmentNotFound = errors.New("course assignment not found")

	// Enrollment specific errors
	ErrAlreadyEnrolled    = errors.New("user is already enrolled in this course")
	ErrEnrollmentNotFound = errors.New("enrollment not found")

	// Lesson progress specific errors
	ErrProgressExists   = errors.New("progress record already exists for this user and lesson")
	ErrProgressNotFound = errors.New("lesson progress not found")

	// Academic year specific errors
	ErrAcademicYearNotFound = errors.New("academic year not found")
)

// Use shared validation errors from the errors package.
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// IsNotFound checks if err represents a "not found" condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSchoolNotFound) ||
		errors.Is(err, ErrSchoolRequestNotFound) ||
		errors.Is(err, ErrInvitationNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrModuleNotFound) ||
		errors.Is(err, ErrLessonNotFound) ||
		errors.Is(err, ErrInstructorNotFound) ||
		errors.Is(err, ErrAssignmentNotFound) ||
		errors.Is(err, ErrEnrollmentNotFound) ||
		errors.Is(err, ErrProgressNotFound) ||
		errors.Is(err, ErrAcademicYearNotFound)
}

// IsConflict checks if err represents a uniqueness or state-transition
// violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrInvitationAlreadySent) ||
		errors.Is(err, ErrInvitationExpired) ||
		errors.Is(err, ErrInvitationAlreadyUsed) ||
		errors.Is(err, ErrInvitationRejected) ||
		errors.Is(err, ErrInvitationNotAcceptable) ||
		errors.Is(err, ErrSchoolSlugTaken) ||
		errors.Is(err, ErrCourseSlugTaken) ||
		errors.Is(err, ErrAlreadyAssigned) ||
		errors.Is(err, ErrAlreadyEnrolled) ||
		errors.Is(err, ErrProgressExists)
}

// IsValidation checks if err represents a validation failure.
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}
