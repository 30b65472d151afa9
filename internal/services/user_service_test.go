package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edhub-platform/school-service/internal/auth"
	"github.com/edhub-platform/school-service/internal/models"
	"github.com/edhub-platform/school-service/internal/utils"
)

func newUserFixture(t *testing.T) (*fakeRepo, UserService) {
	t.Helper()
	repo := newFakeRepo()
	tokens := auth.NewJWTManager("test-secret", time.Hour)
	svc := NewUserService(repo, testLogger(), utils.NewValidator(), tokens)
	return repo, svc
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	_, svc := newUserFixture(t)

	_, err := svc.Create(ctx, &CreateUserRequest{
		Firstname: "Ada",
		Lastname:  "Okoro",
		Email:     "ada@example.com",
		Password:  "correct-horse",
	})
	require.NoError(t, err)

	t.Run("valid credentials issue a verifiable token", func(t *testing.T) {
		result, err := svc.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		require.NotEmpty(t, result.Token)

		claims, err := auth.NewJWTManager("test-secret", time.Hour).Verify(result.Token)
		require.NoError(t, err)
		assert.Equal(t, result.User.ID, claims.UserID)
		assert.Equal(t, models.RoleStudent, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "whatever"})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, &CreateUserRequest{
			Firstname: "Ada",
			Lastname:  "Okoro",
			Email:     "ada@example.com",
			Password:  "another-pass",
		})
		assert.True(t, IsConflict(err))
	})
}

func TestUserService_LoginWithGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a student account on first sign-in", func(t *testing.T) {
		repo, svc := newUserFixture(t)

		avatar := "https://lh3.example/photo.jpg"
		result, err := svc.LoginWithGoogle(ctx, &GoogleLoginRequest{
			GoogleID:  "g-123",
			Email:     "ada@example.com",
			Firstname: "Ada",
			Lastname:  "Okoro",
			Avatar:    &avatar,
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleStudent, result.User.Role)

		user, err := repo.Users().GetByGoogleID(ctx, "g-123")
		require.NoError(t, err)
		require.NotNil(t, user.Avatar)
		assert.Equal(t, avatar, *user.Avatar)
	})

	t.Run("links an existing email account and backfills avatar", func(t *testing.T) {
		repo, svc := newUserFixture(t)
		existing := repo.addUser(models.RoleInstructor, "ada@example.com")

		avatar := "https://lh3.example/photo.jpg"
		result, err := svc.LoginWithGoogle(ctx, &GoogleLoginRequest{
			GoogleID:  "g-123",
			Email:     "ada@example.com",
			Firstname: "Ada",
			Lastname:  "Okoro",
			Avatar:    &avatar,
		})
		require.NoError(t, err)

		assert.Equal(t, existing.ID, result.User.ID)
		// Linking never downgrades the existing role.
		assert.Equal(t, models.RoleInstructor, result.User.Role)
		require.NotNil(t, existing.GoogleID)
		assert.Equal(t, "g-123", *existing.GoogleID)
	})

	t.Run("second sign-in reuses the account", func(t *testing.T) {
		repo, svc := newUserFixture(t)

		req := &GoogleLoginRequest{
			GoogleID:  "g-123",
			Email:     "ada@example.com",
			Firstname: "Ada",
			Lastname:  "Okoro",
		}
		first, err := svc.LoginWithGoogle(ctx, req)
		require.NoError(t, err)
		second, err := svc.LoginWithGoogle(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, first.User.ID, second.User.ID)

		users, total, err := repo.Users().List(ctx, listAllUsers())
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, users, 1)
	})
}
