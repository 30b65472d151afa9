package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edhub-platform/school-service/internal/cache"
	"github.com/edhub-platform/school-service/internal/mailer"
	"github.com/edhub-platform/school-service/internal/models"
	"github.com/edhub-platform/school-service/internal/utils"
)

func newSchoolFixture(t *testing.T) (*fakeRepo, *mailer.ConsoleMailer, SchoolService) {
	t.Helper()
	repo := newFakeRepo()
	m := mailer.NewConsoleMailer(testLogger())
	svc := NewSchoolService(repo, testLogger(), utils.NewValidator(), cache.NoopCache{}, m)
	return repo, m, svc
}

func TestSchoolService_Create(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newSchoolFixture(t)

	school, err := svc.Create(ctx, &CreateSchoolRequest{Name: "Greenfield Academy", Slug: "greenfield"})
	require.NoError(t, err)
	assert.True(t, school.IsActive)

	_, err = svc.Create(ctx, &CreateSchoolRequest{Name: "Other", Slug: "greenfield"})
	assert.ErrorIs(t, err, ErrSchoolSlugTaken)
}

func TestSchoolService_AddAdmin(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newSchoolFixture(t)
	school := repo.addSchool("Greenfield")
	user := repo.addUser(models.RoleInstructor, "teach@example.com")

	admin, err := svc.AddAdmin(ctx, school.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSchoolAdmin, admin.Role)
	require.NotNil(t, user.SchoolID)
	assert.Equal(t, school.ID, *user.SchoolID)

	_, err = svc.AddAdmin(ctx, school.ID, "00000000-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSchoolService_RevokeAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("demotes the school admin to student", func(t *testing.T) {
		repo, _, svc := newSchoolFixture(t)
		school := repo.addSchool("Greenfield")
		admin := repo.addUser(models.RoleSchoolAdmin, "admin@example.com")
		admin.SchoolID = &school.ID

		require.NoError(t, svc.RevokeAdmin(ctx, school.ID, admin.ID))
		assert.Equal(t, models.RoleStudent, admin.Role)
		require.NotNil(t, admin.SchoolID)
		assert.Equal(t, school.ID, *admin.SchoolID)
	})

	t.Run("rejects users who do not administer the school", func(t *testing.T) {
		repo, _, svc := newSchoolFixture(t)
		school := repo.addSchool("Greenfield")
		other := repo.addSchool("Riverside")

		student := repo.addUser(models.RoleStudent, "kid@example.com")
		student.SchoolID = &school.ID
		assert.ErrorIs(t, svc.RevokeAdmin(ctx, school.ID, student.ID), ErrUserNotSchoolAdmin)

		foreignAdmin := repo.addUser(models.RoleSchoolAdmin, "admin@example.com")
		foreignAdmin.SchoolID = &other.ID
		assert.ErrorIs(t, svc.RevokeAdmin(ctx, school.ID, foreignAdmin.ID), ErrUserNotSchoolAdmin)
	})
}

func TestSchoolService_ReviewRequest(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newSchoolFixture(t)

	request, err := svc.SubmitRequest(ctx, &CreateSchoolRequestRequest{
		School: "Greenfield Academy",
		Email:  "head@example.com",
		Phone:  "+237-600-000-000",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, request.Status)

	reviewed, err := svc.ReviewRequest(ctx, request.ID, models.RequestInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.RequestInProgress, reviewed.Status)

	accepted, err := svc.ReviewRequest(ctx, request.ID, models.RequestAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, accepted.Status)

	_, err = svc.ReviewRequest(ctx, request.ID, models.SchoolRequestStatus("bogus"))
	assert.ErrorIs(t, err, ErrValidationFailed)

	stored, err := repo.SchoolRequests().GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, stored.Status)
}
