package repositories

import (
	"context"

	"github.com/edhub-platform/school-service/internal/models"
)

// InvitationRepository persists school-admin invitations. The token is the
// sole lookup key for redemption.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	GetByID(ctx context.Context, id string) (*models.Invitation, error)
	GetByToken(ctx context.Context, token string) (*models.Invitation, error)

	// GetByTokenLocked fetches the row with a FOR UPDATE lock so that the
	// accept-vs-expiry decision is made on transaction-time state. Only
	// meaningful inside Repository.Transaction.
	GetByTokenLocked(ctx context.Context, token string) (*models.Invitation, error)

	// GetPending returns the pending invitation for (email, schoolID),
	// or a not-found error. Fast-path duplicate check; the partial unique
	// index is authoritative.
	GetPending(ctx context.Context, email, schoolID string) (*models.Invitation, error)

	Update(ctx context.Context, invitation *models.Invitation) error
	ListBySchool(ctx context.Context, schoolID string) ([]*models.Invitation, error)
}
