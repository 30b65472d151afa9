package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edhub-platform/school-service/internal/events"
	"github.com/edhub-platform/school-service/internal/mailer"
	"github.com/edhub-platform/school-service/internal/models"
	"github.com/edhub-platform/school-service/internal/utils"
)

func newInvitationFixture(t *testing.T) (*fakeRepo, *events.MockEventPublisher, *mailer.ConsoleMailer, InvitationService) {
	t.Helper()
	repo := newFakeRepo()
	publisher := events.NewMockEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m := mailer.NewConsoleMailer(testLogger())
	svc := NewInvitationService(repo, testLogger(), utils.NewValidator(), m, publisher, "https://app.example.com")
	return repo, publisher, m, svc
}

func TestInvitationService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending invitation and publishes event", func(t *testing.T) {
		repo, publisher, _, svc := newInvitationFixture(t)
		school := repo.addSchool("Greenfield")

		resp, err := svc.Send(ctx, &SendInvitationRequest{
			Email:    "admin@example.com",
			SchoolID: school.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, models.InvitationPending, resp.Status)
		assert.Equal(t, "admin@example.com", resp.Email)
		assert.Equal(t, school.Name, resp.SchoolName)
		assert.WithinDuration(t, time.Now().Add(InvitationTTL), resp.ExpiresAt, time.Minute)

		published := publisher.PublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventInvitationSent, published[0].Type)

		stored, err := repo.Invitations().GetByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Token, 64)
	})

	t.Run("rejects unknown school", func(t *testing.T) {
		_, _, _, svc := newInvitationFixture(t)

		_, err := svc.Send(ctx, &SendInvitationRequest{
			Email:    "admin@example.com",
			SchoolID: "3b9b6313-33f1-4bb5-bbcb-16b262ce9a4f",
		})
		assert.ErrorIs(t, err, ErrSchoolNotFound)
	})

	t.Run("second pending invitation for same pair conflicts", func(t *testing.T) {
		repo, _, _, svc := newInvitationFixture(t)
		school := repo.addSchool("Greenfield")

		_, err := svc.Send(ctx, &SendInvitationRequest{Email: "admin@example.com", SchoolID: school.ID})
		require.NoError(t, err)

		_, err = svc.Send(ctx, &SendInvitationRequest{Email: "admin@example.com", SchoolID: school.ID})
		assert.ErrorIs(t, err, ErrInvitationAlreadySent)
		assert.True(t, IsConflict(err))
	})

	t.Run("re-invite succeeds after the previous invitation lapses", func(t *testing.T) {
		repo, _, _, svc := newInvitationFixture(t)
		school := repo.addSchool("Greenfield")

		first, err := svc.Send(ctx, &SendInvitationRequest{Email: "admin@example.com", SchoolID: school.ID})
		require.NoError(t, err)
		stale, err := repo.Invitations().GetByID(ctx, first.ID)
		require.NoError(t, err)
		stale.ExpiresAt = time.Now().Add(-time.Minute)

		second, err := svc.Send(ctx, &SendInvitationRequest{Email: "admin@example.com", SchoolID: school.ID})
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, models.InvitationPending, second.Status)

		// The lapsed row gives up the pending slot and keeps its
		// terminal status.
		expired, err := repo.Invitations().GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, models.InvitationExpired, expired.Status)
	})

	t.Run("same email may be invited to another school", func(t *testing.T) {
		repo, _, _, svc := newInvitationFixture(t)
		first := repo.addSchool("Greenfield")
		second := repo.addSchool("Riverside")

		_, err := svc.Send(ctx, &SendInvitationRequest{Email: "admin@example.com", SchoolID: first.ID})
		require.NoError(t, err)
		_, err = svc.Send(ctx, &SendInvitationRequest{Email: "admin@example.com", SchoolID: second.ID})
		assert.NoError(t, err)
	})
}

func TestInvitationService_Accept(t *testing.T) {
	ctx := context.Background()

	sendInvitation := func(t *testing.T, repo *fakeRepo, svc InvitationService) *models.Invitation {
		t.Helper()
		school := repo.addSchool("Greenfield")
		resp, err := svc.Send(ctx, &SendInvitationRequest{Email: "admin@example.com", SchoolID: school.ID})
		require.NoError(t, err)
		inv, err := repo.Invitations().GetByID(ctx, resp.ID)
		require.NoError(t, err)
		return inv
	}

	t.Run("provisions school admin and settles invitation", func(t *testing.T) {
		repo, publisher, _, svc := newInvitationFixture(t)
		inv := sendInvitation(t, repo, svc)
		publisher.ClearEvents()

		result, err := svc.Accept(ctx, &AcceptInvitationRequest{
			Token:     inv.Token,
			Firstname: "Ada",
			Lastname:  "Okoro",
			Password:  "correct-horse",
		})
		require.NoError(t, err)

		assert.Equal(t, models.InvitationAccepted, result.Invitation.Status)
		assert.Equal(t, models.RoleSchoolAdmin, result.User.Role)
		require.NotNil(t, result.User.SchoolID)
		assert.Equal(t, inv.SchoolID, *result.User.SchoolID)

		user, err := repo.Users().GetByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		require.NotNil(t, user.PasswordHash)
		assert.NotEqual(t, "correct-horse", *user.PasswordHash)

		published := publisher.PublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventInvitationAccepted, published[0].Type)
	})

	t.Run("promotes an existing account instead of duplicating it", func(t *testing.T) {
		repo, _, _, svc := newInvitationFixture(t)
		existing := repo.addUser(models.RoleStudent, "admin@example.com")
		inv := sendInvitation(t, repo, svc)

		result, err := svc.Accept(ctx, &AcceptInvitationRequest{
			Token:     inv.Token,
			Firstname: "Ada",
			Lastname:  "Okoro",
			Password:  "correct-horse",
		})
		require.NoError(t, err)

		assert.Equal(t, existing.ID, result.User.ID)
		assert.Equal(t, models.RoleSchoolAdmin, result.User.Role)
	})

	t.Run("second accept conflicts", func(t *testing.T) {
		repo, _, _, svc := newInvitationFixture(t)
		inv := sendInvitation(t, repo, svc)

		req := &AcceptInvitationRequest{
			Token:     inv.Token,
			Firstname: "Ada",
			Lastname:  "Okoro",
			Password:  "correct-horse",
		}
		_, err := svc.Accept(ctx, req)
		require.NoError(t, err)

		_, err = svc.Accept(ctx, req)
		assert.ErrorIs(t, err, ErrInvitationAlreadyUsed)
	})

	t.Run("expired invitation fails and the flip is persisted", func(t *testing.T) {
		repo, _, _, svc := newInvitationFixture(t)
		inv := sendInvitation(t, repo, svc)
		inv.ExpiresAt = time.Now().Add(-time.Hour)

		_, err := svc.Accept(ctx, &AcceptInvitationRequest{
			Token:     inv.Token,
			Firstname: "Ada",
			Lastname:  "Okoro",
			Password:  "correct-horse",
		})
		assert.ErrorIs(t, err, ErrInvitationExpired)

		stored, err := repo.Invitations().GetByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, models.InvitationExpired, stored.Status)

		// No account was provisioned.
		_, err = repo.Users().GetByEmail(ctx, "admin@example.com")
		assert.Error(t, err)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, _, _, svc := newInvitationFixture(t)

		_, err := svc.Accept(ctx, &AcceptInvitationRequest{
			Token:     "deadbeef",
			Firstname: "Ada",
			Lastname:  "Okoro",
			Password:  "correct-horse",
		})
		assert.ErrorIs(t, err, ErrInvitationNotFound)
	})
}

func TestInvitationService_GetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("pending invitation is valid", func(t *testing.T) {
		repo, _, _, svc := newInvitationFixture(t)
		school := repo.addSchool("Greenfield")
		resp, err := svc.Send(ctx, &SendInvitationRequest{Email: "admin@example.com", SchoolID: school.ID})
		require.NoError(t, err)
		inv, _ := repo.Invitations().GetByID(ctx, resp.ID)

		status, err := svc.GetStatus(ctx, inv.Token)
		require.NoError(t, err)
		assert.True(t, status.Valid)
		assert.Equal(t, "admin@example.com", status.Email)
		assert.Equal(t, school.Name, status.SchoolName)
		require.NotNil(t, status.ExpiresAt)
		assert.WithinDuration(t, inv.ExpiresAt, *status.ExpiresAt, time.Second)
	})

	t.Run("expiry is applied lazily on read", func(t *testing.T) {
		repo, _, _, svc := newInvitationFixture(t)
		school := repo.addSchool("Greenfield")
		resp, err := svc.Send(ctx, &SendInvitationRequest{Email: "admin@example.com", SchoolID: school.ID})
		require.NoError(t, err)
		inv, _ := repo.Invitations().GetByID(ctx, resp.ID)
		inv.ExpiresAt = time.Now().Add(-time.Minute)

		status, err := svc.GetStatus(ctx, inv.Token)
		require.NoError(t, err)
		assert.False(t, status.Valid)
		assert.Empty(t, status.Email)

		stored, _ := repo.Invitations().GetByID(ctx, inv.ID)
		assert.Equal(t, models.InvitationExpired, stored.Status)
	})

	t.Run("missing and settled tokens probe identically", func(t *testing.T) {
		repo, _, _, svc := newInvitationFixture(t)
		school := repo.addSchool("Greenfield")
		resp, err := svc.Send(ctx, &SendInvitationRequest{Email: "admin@example.com", SchoolID: school.ID})
		require.NoError(t, err)
		inv, _ := repo.Invitations().GetByID(ctx, resp.ID)
		_, err = svc.Reject(ctx, inv.Token)
		require.NoError(t, err)

		forSettled, err := svc.GetStatus(ctx, inv.Token)
		require.NoError(t, err)
		forMissing, err := svc.GetStatus(ctx, "no-such-token")
		require.NoError(t, err)
		assert.Equal(t, forMissing, forSettled)
		assert.False(t, forMissing.Valid)
	})
}

func TestInvitationService_Reject(t *testing.T) {
	ctx := context.Background()
	repo, _, _, svc := newInvitationFixture(t)
	school := repo.addSchool("Greenfield")

	resp, err := svc.Send(ctx, &SendInvitationRequest{Email: "admin@example.com", SchoolID: school.ID})
	require.NoError(t, err)
	inv, _ := repo.Invitations().GetByID(ctx, resp.ID)

	rejected, err := svc.Reject(ctx, inv.Token)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationRejected, rejected.Status)

	// A settled invitation cannot be accepted.
	_, err = svc.Accept(ctx, &AcceptInvitationRequest{
		Token:     inv.Token,
		Firstname: "Ada",
		Lastname:  "Okoro",
		Password:  "correct-horse",
	})
	assert.ErrorIs(t, err, ErrInvitationRejected)

	// A fresh invitation for the pair is allowed again.
	_, err = svc.Send(ctx, &SendInvitationRequest{Email: "admin@example.com", SchoolID: school.ID})
	assert.NoError(t, err)
}
