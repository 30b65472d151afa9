package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edhub-platform/school-service/internal/models"
	"github.com/edhub-platform/school-service/internal/utils"
)

func newProgressFixture(t *testing.T) (*fakeRepo, LessonProgressService) {
	t.Helper()
	repo := newFakeRepo()
	svc := NewLessonProgressService(repo, testLogger(), utils.NewValidator())
	return repo, svc
}

func TestLessonProgressService_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the progress row once", func(t *testing.T) {
		repo, svc := newProgressFixture(t)
		user := repo.addUser(models.RoleStudent, "kid@example.com")
		lesson := repo.addLesson()

		progress, err := svc.Start(ctx, &StartProgressRequest{
			UserID:         user.ID,
			LessonID:       lesson.ID,
			WatchedSeconds: 30,
		})
		require.NoError(t, err)
		assert.False(t, progress.Completed)
		assert.Nil(t, progress.CompletedAt)

		_, err = svc.Start(ctx, &StartProgressRequest{UserID: user.ID, LessonID: lesson.ID})
		assert.ErrorIs(t, err, ErrProgressExists)
	})

	t.Run("starting completed stamps the timestamp", func(t *testing.T) {
		repo, svc := newProgressFixture(t)
		user := repo.addUser(models.RoleStudent, "kid@example.com")
		lesson := repo.addLesson()

		progress, err := svc.Start(ctx, &StartProgressRequest{
			UserID:    user.ID,
			LessonID:  lesson.ID,
			Completed: true,
		})
		require.NoError(t, err)
		assert.NotNil(t, progress.CompletedAt)
	})
}

func TestLessonProgressService_Update_CompletedAtRatchet(t *testing.T) {
	ctx := context.Background()
	repo, svc := newProgressFixture(t)
	user := repo.addUser(models.RoleStudent, "kid@example.com")
	lesson := repo.addLesson()

	created, err := svc.Start(ctx, &StartProgressRequest{UserID: user.ID, LessonID: lesson.ID})
	require.NoError(t, err)

	completed := true
	first, err := svc.Update(ctx, created.ID, &UpdateProgressRequest{Completed: &completed})
	require.NoError(t, err)
	require.NotNil(t, first.CompletedAt)
	stamp := *first.CompletedAt

	// Flipping back to incomplete keeps the original completion time.
	notCompleted := false
	second, err := svc.Update(ctx, created.ID, &UpdateProgressRequest{Completed: &notCompleted})
	require.NoError(t, err)
	assert.False(t, second.Completed)
	require.NotNil(t, second.CompletedAt)
	assert.Equal(t, stamp, *second.CompletedAt)

	time.Sleep(10 * time.Millisecond)

	// Completing again does not move the stamp.
	third, err := svc.Update(ctx, created.ID, &UpdateProgressRequest{Completed: &completed})
	require.NoError(t, err)
	assert.Equal(t, stamp, *third.CompletedAt)
}

func TestLessonProgressService_Update_WatchedSeconds(t *testing.T) {
	ctx := context.Background()
	repo, svc := newProgressFixture(t)
	user := repo.addUser(models.RoleStudent, "kid@example.com")
	lesson := repo.addLesson()

	created, err := svc.Start(ctx, &StartProgressRequest{UserID: user.ID, LessonID: lesson.ID, WatchedSeconds: 10})
	require.NoError(t, err)

	seconds := 120
	updated, err := svc.Update(ctx, created.ID, &UpdateProgressRequest{WatchedSeconds: &seconds})
	require.NoError(t, err)
	assert.Equal(t, 120, updated.WatchedSeconds)
	assert.False(t, updated.Completed)

	_, err = svc.Update(ctx, "33333333-3333-4333-8333-333333333333", &UpdateProgressRequest{WatchedSeconds: &seconds})
	assert.ErrorIs(t, err, ErrProgressNotFound)
}
