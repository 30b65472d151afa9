package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edhub-platform/school-service/internal/events"
	"github.com/edhub-platform/school-service/internal/mailer"
	"github.com/edhub-platform/school-service/internal/models"
	"github.com/edhub-platform/school-service/internal/utils"
)

func newEnrollmentFixture(t *testing.T) (*fakeRepo, *events.MockEventPublisher, EnrollmentService) {
	t.Helper()
	repo := newFakeRepo()
	publisher := events.NewMockEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := NewEnrollmentService(repo, testLogger(), utils.NewValidator(), mailer.NewConsoleMailer(testLogger()), publisher)
	return repo, publisher, svc
}

func TestEnrollmentService_Enroll(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the enrollment and publishes event", func(t *testing.T) {
		repo, publisher, svc := newEnrollmentFixture(t)
		school := repo.addSchool("Greenfield")
		course := repo.addCourse(school.ID, "algebra-1")
		student := repo.addUser(models.RoleStudent, "kid@example.com")

		enrollment, err := svc.Enroll(ctx, &EnrollRequest{UserID: student.ID, CourseID: course.ID})
		require.NoError(t, err)

		assert.False(t, enrollment.EnrolledAt.IsZero())
		assert.Zero(t, enrollment.ProgressPercentage)

		published := publisher.PublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventEnrollmentCreated, published[0].Type)
	})

	t.Run("re-enrollment conflicts and keeps a single row", func(t *testing.T) {
		repo, _, svc := newEnrollmentFixture(t)
		school := repo.addSchool("Greenfield")
		course := repo.addCourse(school.ID, "algebra-1")
		student := repo.addUser(models.RoleStudent, "kid@example.com")

		_, err := svc.Enroll(ctx, &EnrollRequest{UserID: student.ID, CourseID: course.ID})
		require.NoError(t, err)

		_, err = svc.Enroll(ctx, &EnrollRequest{UserID: student.ID, CourseID: course.ID})
		assert.ErrorIs(t, err, ErrAlreadyEnrolled)

		rows, err := repo.Enrollments().ListByCourse(ctx, course.ID)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("unknown user or course", func(t *testing.T) {
		repo, _, svc := newEnrollmentFixture(t)
		school := repo.addSchool("Greenfield")
		course := repo.addCourse(school.ID, "algebra-1")
		student := repo.addUser(models.RoleStudent, "kid@example.com")

		_, err := svc.Enroll(ctx, &EnrollRequest{UserID: "11111111-1111-4111-8111-111111111111", CourseID: course.ID})
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = svc.Enroll(ctx, &EnrollRequest{UserID: student.ID, CourseID: "22222222-2222-4222-8222-222222222222"})
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func TestEnrollmentService_Update(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newEnrollmentFixture(t)
	school := repo.addSchool("Greenfield")
	course := repo.addCourse(school.ID, "algebra-1")
	student := repo.addUser(models.RoleStudent, "kid@example.com")

	enrollment, err := svc.Enroll(ctx, &EnrollRequest{UserID: student.ID, CourseID: course.ID})
	require.NoError(t, err)

	halfway := 50.0
	updated, err := svc.Update(ctx, enrollment.ID, &UpdateEnrollmentRequest{ProgressPercentage: &halfway})
	require.NoError(t, err)
	assert.Equal(t, 50.0, updated.ProgressPercentage)
	assert.Nil(t, updated.CompletedAt)

	full := 100.0
	done, err := svc.Update(ctx, enrollment.ID, &UpdateEnrollmentRequest{ProgressPercentage: &full})
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	stamp := *done.CompletedAt

	// Dropping below 100 never clears the completion stamp.
	back, err := svc.Update(ctx, enrollment.ID, &UpdateEnrollmentRequest{ProgressPercentage: &halfway})
	require.NoError(t, err)
	require.NotNil(t, back.CompletedAt)
	assert.Equal(t, stamp, *back.CompletedAt)

	_, err = svc.Update(ctx, "44444444-4444-4444-8444-444444444444", &UpdateEnrollmentRequest{ProgressPercentage: &full})
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}
